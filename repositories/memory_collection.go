package repositories

import (
	"context"
	"slices"
	"sync"
	"time"

	"wms-finance/types"
)

// snapshotter is implemented by records that hold slices. Snapshot must
// return a copy sharing no backing arrays with the receiver.
type snapshotter[T any] interface {
	Snapshot() T
}

func detach[T any](item T) T {
	if s, ok := any(item).(snapshotter[T]); ok {
		return s.Snapshot()
	}
	return item
}

// MemoryCollection keeps records in insertion order in a slice. Records
// are detached on the way in and out, so callers never share slices with
// the stored copy.
type MemoryCollection[T any, P Entity[T]] struct {
	mu    sync.RWMutex
	items []T
	ids   IDSource
	now   func() time.Time
}

func NewMemoryCollection[T any, P Entity[T]](ids IDSource) *MemoryCollection[T, P] {
	return &MemoryCollection[T, P]{ids: ids, now: time.Now}
}

func (c *MemoryCollection[T, P]) List(_ context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	for i, item := range c.items {
		out[i] = detach(item)
	}
	return out, nil
}

func (c *MemoryCollection[T, P]) Get(_ context.Context, id types.SnowflakeID) (T, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexOf(id); i >= 0 {
		return detach(c.items[i]), true, nil
	}
	var zero T
	return zero, false, nil
}

func (c *MemoryCollection[T, P]) Create(_ context.Context, item T) (T, error) {
	P(&item).Stamp(c.ids.Next(), c.now())

	c.mu.Lock()
	c.items = append(c.items, detach(item))
	c.mu.Unlock()
	return item, nil
}

func (c *MemoryCollection[T, P]) Update(_ context.Context, id types.SnowflakeID, patch Patch[T]) (T, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		var zero T
		return zero, false, nil
	}
	patch.Apply(&c.items[i])
	return detach(c.items[i]), true, nil
}

func (c *MemoryCollection[T, P]) Delete(_ context.Context, id types.SnowflakeID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return false, nil
	}
	c.items = slices.Delete(c.items, i, i+1)
	return true, nil
}

// Seed appends fixtures whose ids are not present yet.
func (c *MemoryCollection[T, P]) Seed(_ context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range items {
		if c.indexOf(P(&item).Key()) < 0 {
			c.items = append(c.items, detach(item))
		}
	}
	return nil
}

func (c *MemoryCollection[T, P]) indexOf(id types.SnowflakeID) int {
	return slices.IndexFunc(c.items, func(item T) bool {
		return P(&item).Key() == id
	})
}
