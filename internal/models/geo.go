package models

import "math"

// KMPerDegree is the approximate length of one degree of latitude.
const KMPerDegree = 111.0

// BoundingBox is an axis-aligned lat/lng rectangle used in place of a true
// radius. It overestimates the circle at the corners and does not wrap across
// the antimeridian.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLng float64 `json:"max_lng"`
}

// NewBoundingBox approximates the square around (lat, lng) with half-side radiusKM.
func NewBoundingBox(lat, lng, radiusKM float64) BoundingBox {
	dLat := radiusKM / KMPerDegree

	var dLng float64
	cos := math.Abs(math.Cos(lat * math.Pi / 180))
	if cos < 1e-9 {
		dLng = 360
	} else {
		dLng = radiusKM / (KMPerDegree * cos)
	}

	return BoundingBox{
		MinLat: math.Max(lat-dLat, -90),
		MaxLat: math.Min(lat+dLat, 90),
		MinLng: lng - dLng,
		MaxLng: lng + dLng,
	}
}
