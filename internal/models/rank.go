package models

import (
	"cmp"
	"slices"
)

// CompareRank orders restaurants by rating, then review count, both
// descending with missing values last. Equal records compare as 0 so a stable
// sort keeps their input order.
func CompareRank(a, b Restaurant) int {
	if c := compareDescNullsLast(a.Rating, b.Rating); c != 0 {
		return c
	}
	return compareDescNullsLast(a.NumReviews, b.NumReviews)
}

// SortByRank sorts restaurants in place by CompareRank, keeping input order on ties.
func SortByRank(restaurants []Restaurant) {
	slices.SortStableFunc(restaurants, CompareRank)
}

func compareDescNullsLast[T cmp.Ordered](a, b *T) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return cmp.Compare(*b, *a)
	}
}
