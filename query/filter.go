// Package query holds the filtering, sorting and aggregation used by the
// list screens, summaries and exports.
package query

// Predicate reports whether a record passes a filter. A nil Predicate
// passes everything.
type Predicate[T any] func(T) bool

// Filter keeps the items that pass every predicate, in input order.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if matchAll(item, preds) {
			out = append(out, item)
		}
	}
	return out
}

func matchAll[T any](item T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if p != nil && !p(item) {
			return false
		}
	}
	return true
}

// Equal matches records whose field equals want. An empty want means the
// filter is unset and yields a nil predicate.
func Equal[T any, V comparable](field func(T) V, want V) Predicate[T] {
	var zero V
	if want == zero {
		return nil
	}
	return func(item T) bool {
		return field(item) == want
	}
}
