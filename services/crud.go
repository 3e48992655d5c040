package services

import (
	"context"

	"wms-finance/repositories"
	"wms-finance/types"
)

// CRUD exposes a collection as a service for entities without rules of
// their own.
type CRUD[T any, P repositories.Patch[T]] struct {
	repo repositories.Collection[T]
}

func NewCRUD[T any, P repositories.Patch[T]](repo repositories.Collection[T]) *CRUD[T, P] {
	return &CRUD[T, P]{repo: repo}
}

func (s *CRUD[T, P]) List(ctx context.Context) ([]T, error) {
	return s.repo.List(ctx)
}

func (s *CRUD[T, P]) Get(ctx context.Context, id types.SnowflakeID) (T, bool, error) {
	return s.repo.Get(ctx, id)
}

func (s *CRUD[T, P]) Create(ctx context.Context, item T) (T, error) {
	return s.repo.Create(ctx, item)
}

func (s *CRUD[T, P]) Update(ctx context.Context, id types.SnowflakeID, patch P) (T, bool, error) {
	return s.repo.Update(ctx, id, patch)
}

func (s *CRUD[T, P]) Delete(ctx context.Context, id types.SnowflakeID) (bool, error) {
	return s.repo.Delete(ctx, id)
}
