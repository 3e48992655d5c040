package query

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"wms-finance/types"
)

// Sort returns a copy of items ordered by the value extract returns for
// key. The sort is stable; values of mixed or unknown types compare by
// their printed form.
func Sort[T any](items []T, key string, dir types.SortDirection, extract func(T, string) any) []T {
	out := slices.Clone(items)
	if key == "" {
		return out
	}
	slices.SortStableFunc(out, func(a, b T) int {
		c := compareValues(extract(a, key), extract(b, key))
		if dir == types.Descending {
			return -c
		}
		return c
	})
	return out
}

func compareValues(a, b any) int {
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return cmp.Compare(x, y)
		}
	case int:
		if y, ok := b.(int); ok {
			return cmp.Compare(x, y)
		}
	case int64:
		if y, ok := b.(int64); ok {
			return cmp.Compare(x, y)
		}
	case float64:
		if y, ok := b.(float64); ok {
			return cmp.Compare(x, y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			return cmp.Compare(boolRank(x), boolRank(y))
		}
	case decimal.Decimal:
		if y, ok := b.(decimal.Decimal); ok {
			return x.Cmp(y)
		}
	case types.SnowflakeID:
		if y, ok := b.(types.SnowflakeID); ok {
			return cmp.Compare(x, y)
		}
	case types.Date:
		if y, ok := b.(types.Date); ok {
			return x.Compare(y.Time)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
