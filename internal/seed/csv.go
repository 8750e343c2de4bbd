package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"restaurant-picker-api/internal/models"
)

// requiredColumns must appear in the CSV header. Other known columns are
// optional; an empty cell leaves the field unset.
var requiredColumns = []string{"id", "name", "lat", "lng"}

// ParseCSV reads restaurants from a CSV file with a header row. Column order
// is free; unknown columns are ignored.
func ParseCSV(r io.Reader) ([]models.Restaurant, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	var restaurants []models.Restaurant
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		restaurant, err := parseRecord(index, record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		restaurants = append(restaurants, restaurant)
	}

	return restaurants, nil
}

func parseRecord(index map[string]int, record []string) (models.Restaurant, error) {
	cell := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var (
		r   models.Restaurant
		err error
	)
	r.ID = cell("id")
	r.Name = cell("name")
	r.Address = cell("address")
	r.Source = cell("source")

	if r.Lat, err = strconv.ParseFloat(cell("lat"), 64); err != nil {
		return r, fmt.Errorf("invalid latitude: %q", cell("lat"))
	}
	if r.Lng, err = strconv.ParseFloat(cell("lng"), 64); err != nil {
		return r, fmt.Errorf("invalid longitude: %q", cell("lng"))
	}

	if v := cell("rating"); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return r, fmt.Errorf("invalid rating: %q", v)
		}
		r.Rating = &rating
	}
	if r.PriceLevel, err = optionalInt(cell("price_level"), "price_level"); err != nil {
		return r, err
	}
	if r.NumReviews, err = optionalInt(cell("num_reviews"), "num_reviews"); err != nil {
		return r, err
	}

	r.Cuisine = optionalString(cell("cuisine"))
	r.URL = optionalString(cell("url"))
	r.City = optionalString(cell("city"))
	r.Country = optionalString(cell("country"))

	return r, nil
}

func optionalInt(v, name string) (*int, error) {
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", name, v)
	}
	return &n, nil
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
