// Package seed produces restaurant records for an empty database, either
// generated sample data or rows read from a CSV file.
package seed

import (
	"fmt"
	"math"
	"math/rand/v2"

	"restaurant-picker-api/internal/models"
)

// Source tags generated records.
const Source = "seed_script"

type city struct {
	name     string
	lat, lng float64
	// known is false for cities placed at a random point in the continental US.
	known bool
}

var cities = []city{
	{name: "New York", lat: 40.7128, lng: -74.0060, known: true},
	{name: "Los Angeles", lat: 34.0522, lng: -118.2437, known: true},
	{name: "Chicago", lat: 41.8781, lng: -87.6298, known: true},
	{name: "Houston"},
	{name: "Phoenix"},
	{name: "Philadelphia"},
	{name: "San Antonio"},
	{name: "San Diego"},
	{name: "Dallas"},
	{name: "San Jose"},
	{name: "Austin"},
	{name: "Seattle"},
	{name: "Denver"},
	{name: "Boston"},
	{name: "Portland"},
	{name: "Miami"},
	{name: "Atlanta"},
	{name: "San Francisco", lat: 37.7749, lng: -122.4194, known: true},
	{name: "Las Vegas"},
	{name: "Washington DC"},
}

var cuisines = []string{
	"italian", "japanese", "chinese", "mexican", "indian",
	"thai", "french", "american", "mediterranean", "korean",
	"vietnamese", "greek", "spanish", "brazilian", "fast food",
	"pizza", "sushi", "bbq", "seafood", "vegetarian",
}

var (
	namePrefixes = []string{
		"Golden", "Blue", "Rustic", "Little", "Old Town", "Harbor", "Urban", "Lucky",
		"Green", "Silver", "Corner", "Sunset", "Royal", "Happy", "Copper", "Maple",
	}
	nameSuffixes = []string{"Restaurant", "Bistro", "Cafe", "Grill", "Kitchen", "House", "Bar"}
	streets      = []string{
		"Main St", "Oak Ave", "Pine St", "Maple Ave", "Cedar Rd", "Elm St",
		"Washington Blvd", "Park Ave", "Lake Dr", "Hill St", "Broadway", "Market St",
	}
)

// Generate returns count sample restaurants with ids restaurant_1..restaurant_count.
// Restaurants in the four well known cities sit within 0.1 degrees of the
// city centre; the rest are spread across the continental US.
func Generate(rng *rand.Rand, count int) []models.Restaurant {
	restaurants := make([]models.Restaurant, 0, max(count, 0))
	for i := 0; i < count; i++ {
		c := cities[rng.IntN(len(cities))]
		cuisine := cuisines[rng.IntN(len(cuisines))]

		var lat, lng float64
		if c.known {
			lat = c.lat + uniform(rng, -0.1, 0.1)
			lng = c.lng + uniform(rng, -0.1, 0.1)
		} else {
			lat = uniform(rng, 25.0, 48.0)
			lng = uniform(rng, -125.0, -65.0)
		}

		name := fmt.Sprintf("%s %s %s",
			namePrefixes[rng.IntN(len(namePrefixes))],
			titleCase(cuisine),
			nameSuffixes[rng.IntN(len(nameSuffixes))],
		)
		id := fmt.Sprintf("restaurant_%d", i+1)

		restaurants = append(restaurants, models.Restaurant{
			ID:         id,
			Name:       name,
			Address:    fmt.Sprintf("%d %s, %s", 1+rng.IntN(9999), streets[rng.IntN(len(streets))], c.name),
			Lat:        lat,
			Lng:        lng,
			Rating:     models.Ptr(math.Round(uniform(rng, 3.0, 5.0)*10) / 10),
			PriceLevel: models.Ptr(1 + rng.IntN(4)),
			Cuisine:    models.Ptr(cuisine),
			Source:     Source,
			URL:        models.Ptr("https://example.com/restaurants/" + id),
			NumReviews: models.Ptr(10 + rng.IntN(491)),
			City:       models.Ptr(c.name),
			Country:    models.Ptr("US"),
		})
	}
	return restaurants
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func titleCase(s string) string {
	out := []byte(s)
	upper := true
	for i, b := range out {
		if upper && b >= 'a' && b <= 'z' {
			out[i] = b - 'a' + 'A'
		}
		upper = b == ' '
	}
	return string(out)
}
