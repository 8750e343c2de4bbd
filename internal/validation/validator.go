// Package validation wraps a shared go-playground validator and turns its
// field errors into short messages fit for an API response.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single failed rule.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Message string
}

// Error collects every failed rule of one Struct call.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		messages = append(messages, f.Message)
	}
	return strings.Join(messages, "; ")
}

// Validator returns the process-wide validator. Field names are reported by
// their json tag so messages match the wire names.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Struct validates s and returns *Error on failure.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &Error{Fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		field := fieldPath(fe)
		out.Fields = append(out.Fields, FieldError{
			Field:   field,
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: message(field, fe.Tag(), fe.Param()),
		})
	}
	return out
}

// fieldPath drops the root struct name: "PickRequest.candidates[0].id" -> "candidates[0].id".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

var templates = map[string]string{
	"required": "%s is required",
	"gte":      "%s must be greater than or equal to %s",
	"lte":      "%s must be less than or equal to %s",
	"gt":       "%s must be greater than %s",
	"lt":       "%s must be less than %s",
	"oneof":    "%s must be one of: %s",
}

func message(field, tag, param string) string {
	tmpl, ok := templates[tag]
	if !ok {
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
	if tag == "required" {
		return fmt.Sprintf(tmpl, field)
	}
	return fmt.Sprintf(tmpl, field, param)
}
