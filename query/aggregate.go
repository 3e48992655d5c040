package query

import (
	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

func Sum[T any, N Number](items []T, value func(T) N) N {
	var total N
	for _, item := range items {
		total += value(item)
	}
	return total
}

func SumDecimal[T any](items []T, value func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(value(item))
	}
	return total
}

func Count[T any](items []T, pred Predicate[T]) int {
	n := 0
	for _, item := range items {
		if pred == nil || pred(item) {
			n++
		}
	}
	return n
}
