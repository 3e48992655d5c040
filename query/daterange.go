package query

import (
	"fmt"

	"wms-finance/types"
)

// RangePolicy decides how a record period relates to the filter range.
type RangePolicy string

const (
	// Within keeps periods that lie entirely inside the range.
	Within RangePolicy = "within"
	// Overlap keeps periods that share at least one day with the range.
	Overlap RangePolicy = "overlap"
)

func ParseRangePolicy(s string) (RangePolicy, error) {
	switch RangePolicy(s) {
	case "", Within:
		return Within, nil
	case Overlap:
		return Overlap, nil
	}
	return "", fmt.Errorf("unknown range policy %q", s)
}

// DateRange filters on a record period [from, to] against [start, end].
// Both edges are inclusive and either bound may be zero (open). Both
// bounds zero yields a nil predicate.
func DateRange[T any](period func(T) (from, to types.Date), start, end types.Date, policy RangePolicy) Predicate[T] {
	if start.IsZero() && end.IsZero() {
		return nil
	}
	if policy == Overlap {
		return func(item T) bool {
			from, to := period(item)
			if !start.IsZero() && to.Before(start) {
				return false
			}
			if !end.IsZero() && from.After(end) {
				return false
			}
			return true
		}
	}
	return func(item T) bool {
		from, to := period(item)
		if !start.IsZero() && from.Before(start) {
			return false
		}
		if !end.IsZero() && to.After(end) {
			return false
		}
		return true
	}
}
