package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Query parameter helpers. Each returns an error naming the parameter when
// the value is present but malformed.

func queryFloat(c *gin.Context, name string) (*float64, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s format", name)
	}
	return &v, nil
}

func queryInt(c *gin.Context, name string) (*int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s format", name)
	}
	return &v, nil
}

func queryIntDefault(c *gin.Context, name string, def int) (int, error) {
	v, err := queryInt(c, name)
	if err != nil || v == nil {
		return def, err
	}
	return *v, nil
}

func queryFloatDefault(c *gin.Context, name string, def float64) (float64, error) {
	v, err := queryFloat(c, name)
	if err != nil || v == nil {
		return def, err
	}
	return *v, nil
}

// attributeParams are the filters shared by text and nearby search.
type attributeParams struct {
	cuisine       string
	minRating     *float64
	maxPriceLevel *int
	maxResults    int
}

func parseAttributeParams(c *gin.Context, defaultMaxResults int) (attributeParams, error) {
	var (
		p   = attributeParams{cuisine: c.Query("cuisine")}
		err error
	)
	if p.minRating, err = queryFloat(c, "min_rating"); err != nil {
		return p, err
	}
	if p.maxPriceLevel, err = queryInt(c, "max_price_level"); err != nil {
		return p, err
	}
	if p.maxResults, err = queryIntDefault(c, "max_results", defaultMaxResults); err != nil {
		return p, err
	}
	return p, nil
}
