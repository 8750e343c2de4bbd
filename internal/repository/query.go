package repository

import (
	"fmt"
	"strings"
	"time"

	"restaurant-picker-api/internal/models"
)

const restaurantColumns = `id, name, address, lat, lng, rating, price_level, cuisine, source, url, num_reviews, city, country, created_at, updated_at`

// dialect captures the places where SQLite and PostgreSQL SQL differ.
type dialect struct {
	placeholder    func(n int) string
	insertionOrder string
	// lower names the case folding function. Both sides of a comparison go
	// through it so stored values and input fold the same way.
	lower string
}

var (
	sqliteDialect = dialect{
		placeholder:    func(int) string { return "?" },
		insertionOrder: "rowid",
		lower:          unicodeLowerFunc,
	}
	postgresDialect = dialect{
		placeholder:    func(n int) string { return fmt.Sprintf("$%d", n) },
		insertionOrder: "seq",
		lower:          "LOWER",
	}
)

// whereBuilder collects AND-ed conditions. Each "?" in a condition is
// rewritten to the dialect's placeholder.
type whereBuilder struct {
	d          dialect
	conditions []string
	args       []any
}

func (w *whereBuilder) add(condition string, args ...any) {
	var b strings.Builder
	next := 0
	for _, r := range condition {
		if r == '?' && next < len(args) {
			w.args = append(w.args, args[next])
			b.WriteString(w.d.placeholder(len(w.args)))
			next++
			continue
		}
		b.WriteRune(r)
	}
	w.conditions = append(w.conditions, b.String())
}

// arg registers a trailing argument (LIMIT, OFFSET) and returns its placeholder.
func (w *whereBuilder) arg(v any) string {
	w.args = append(w.args, v)
	return w.d.placeholder(len(w.args))
}

func (w *whereBuilder) sql() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conditions, " AND ")
}

func (w *whereBuilder) attributeFilters(cuisine string, minRating *float64, maxPriceLevel *int) {
	if cuisine != "" {
		w.add(fmt.Sprintf("%[1]s(cuisine) = %[1]s(CAST(? AS TEXT))", w.d.lower), cuisine)
	}
	if minRating != nil {
		w.add("rating >= ?", *minRating)
	}
	if maxPriceLevel != nil {
		w.add("price_level <= ?", *maxPriceLevel)
	}
}

func (d dialect) rankOrder() string {
	return "ORDER BY rating DESC NULLS LAST, num_reviews DESC NULLS LAST, " + d.insertionOrder + " ASC"
}

// escapeLike makes % and _ in user input match literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func (d dialect) searchQuery(f models.SearchFilter) (string, []any) {
	w := &whereBuilder{d: d}
	pattern := "%" + escapeLike(strings.TrimSpace(f.Location)) + "%"
	var matches []string
	for _, column := range []string{"city", "address", "name"} {
		matches = append(matches, fmt.Sprintf(`%[1]s(%[2]s) LIKE %[1]s(CAST(? AS TEXT)) ESCAPE '\'`, d.lower, column))
	}
	w.add("("+strings.Join(matches, " OR ")+")", pattern, pattern, pattern)
	w.attributeFilters(f.Cuisine, f.MinRating, f.MaxPriceLevel)

	query := fmt.Sprintf(`SELECT %s FROM restaurants %s %s LIMIT %s`,
		restaurantColumns, w.sql(), d.rankOrder(), w.arg(f.MaxResults))
	return query, w.args
}

func (d dialect) nearbyQuery(f models.NearbyFilter) (string, []any) {
	box := models.NewBoundingBox(f.Lat, f.Lng, f.RadiusKM)

	w := &whereBuilder{d: d}
	w.add("lat BETWEEN ? AND ?", box.MinLat, box.MaxLat)
	w.add("lng BETWEEN ? AND ?", box.MinLng, box.MaxLng)
	w.attributeFilters(f.Cuisine, f.MinRating, f.MaxPriceLevel)

	query := fmt.Sprintf(`SELECT %s FROM restaurants %s %s LIMIT %s`,
		restaurantColumns, w.sql(), d.rankOrder(), w.arg(f.MaxResults))
	return query, w.args
}

func (d dialect) listQuery(p models.Page) (string, []any) {
	w := &whereBuilder{d: d}
	query := fmt.Sprintf(`SELECT %s FROM restaurants ORDER BY %s ASC LIMIT %s OFFSET %s`,
		restaurantColumns, d.insertionOrder, w.arg(p.Limit), w.arg(p.Offset))
	return query, w.args
}

func (d dialect) distinctQuery(column string) string {
	return fmt.Sprintf(`SELECT DISTINCT %[1]s FROM restaurants WHERE %[1]s IS NOT NULL ORDER BY %[1]s`, column)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRestaurant(s scanner) (models.Restaurant, error) {
	var r models.Restaurant
	err := s.Scan(
		&r.ID,
		&r.Name,
		&r.Address,
		&r.Lat,
		&r.Lng,
		&r.Rating,
		&r.PriceLevel,
		&r.Cuisine,
		&r.Source,
		&r.URL,
		&r.NumReviews,
		&r.City,
		&r.Country,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

// prepareForInsert fills store-owned fields.
func prepareForInsert(r models.Restaurant, now time.Time) models.Restaurant {
	if r.Source == "" {
		r.Source = models.DefaultSource
	}
	r.CreatedAt = now
	r.UpdatedAt = now
	return r
}
