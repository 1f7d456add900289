package catalog

import "math"

// RatingSummary is the aggregate attached to a product or a ratings
// listing. A Count of zero means "no ratings yet" and must be rendered
// distinctly from a genuine 0.0 average.
type RatingSummary struct {
	Average float64 `json:"averageRating"`
	Count   int     `json:"totalRatings"`
}

// AggregateRatings computes the arithmetic mean of the given rating
// values, rounded half-up to one decimal place. An empty collection
// yields average 0 and count 0.
func AggregateRatings(values []int) RatingSummary {
	if len(values) == 0 {
		return RatingSummary{}
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	mean := float64(sum) / float64(len(values))
	return RatingSummary{
		Average: RoundToTenth(mean),
		Count:   len(values),
	}
}

// RoundToTenth rounds half-up on the tenths digit, matching the rounding
// the storefront applies before display.
func RoundToTenth(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
