// Package statistics computes agreement, error, and classification metrics
// between AI-generated and expert lead ratings.
//
// Every function is pure. Degenerate input (empty slices, mismatched lengths,
// zero variance) yields a documented fallback value instead of an error so
// reports can always be rendered.
package statistics

import (
	"fmt"
	"strings"
)

// Category is the hot/warm/cold lead classification.
type Category string

const (
	Hot  Category = "hot"
	Warm Category = "warm"
	Cold Category = "cold"
)

// Categories lists every category in ordinal order (hot > warm > cold).
// Matrix indices throughout this package follow this order.
var Categories = []Category{Hot, Warm, Cold}

// Score thresholds for ScoreToCategory.
const (
	HotThreshold  = 70.0
	WarmThreshold = 40.0
)

// ScoreToCategory buckets a 0-100 score. Out-of-range scores are still
// bucketed (negative → cold, above 100 → hot).
func ScoreToCategory(score float64) Category {
	switch {
	case score >= HotThreshold:
		return Hot
	case score >= WarmThreshold:
		return Warm
	default:
		return Cold
	}
}

// ParseCategory converts user input into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("invalid category %q: must be one of hot, warm, cold", s)
	}
	return c, nil
}

// Valid reports whether c is one of the three known categories.
func (c Category) Valid() bool {
	switch c {
	case Hot, Warm, Cold:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// index returns the ordinal position of c. Unknown categories mean the
// caller skipped ParseCategory, so it panics.
func (c Category) index() int {
	switch c {
	case Hot:
		return 0
	case Warm:
		return 1
	case Cold:
		return 2
	}
	panic(fmt.Sprintf("statistics: unknown category %q", string(c)))
}
