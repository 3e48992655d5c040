package repositories

import (
	"context"
	"time"

	"wms-finance/types"
)

// Entity is satisfied by a pointer to a model embedding models.Base.
type Entity[T any] interface {
	*T
	Key() types.SnowflakeID
	Stamp(types.SnowflakeID, time.Time)
}

// Patch is a partial update. Applying the same patch twice leaves the
// record as applying it once.
type Patch[T any] interface {
	Apply(*T)
}

// IDSource mints record ids.
type IDSource interface {
	Next() types.SnowflakeID
}

// Collection is the store of one entity type. Missing ids are never an
// error: Update and Delete report found=false and change nothing.
type Collection[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id types.SnowflakeID) (T, bool, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id types.SnowflakeID, patch Patch[T]) (T, bool, error)
	Delete(ctx context.Context, id types.SnowflakeID) (bool, error)
	Seed(ctx context.Context, items []T) error
}
