package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wms-finance/types"
)

// GormCollection stores records in a SQL table. Snowflake ids grow with
// time, so ordering by id keeps insertion order.
type GormCollection[T any, P Entity[T]] struct {
	DB  *gorm.DB
	ids IDSource
	now func() time.Time
}

func NewGormCollection[T any, P Entity[T]](DB *gorm.DB, ids IDSource) *GormCollection[T, P] {
	return &GormCollection[T, P]{DB: DB, ids: ids, now: time.Now}
}

func (c *GormCollection[T, P]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := c.DB.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return items, nil
}

func (c *GormCollection[T, P]) Get(ctx context.Context, id types.SnowflakeID) (T, bool, error) {
	var item T
	err := c.DB.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return item, false, nil
	}
	if err != nil {
		return item, false, fmt.Errorf("get %s: %w", id, err)
	}
	return item, true, nil
}

func (c *GormCollection[T, P]) Create(ctx context.Context, item T) (T, error) {
	P(&item).Stamp(c.ids.Next(), c.now())
	if err := c.DB.WithContext(ctx).Create(&item).Error; err != nil {
		return item, fmt.Errorf("create: %w", err)
	}
	return item, nil
}

func (c *GormCollection[T, P]) Update(ctx context.Context, id types.SnowflakeID, patch Patch[T]) (T, bool, error) {
	var item T
	found := false
	err := c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&item, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		patch.Apply(&item)
		return tx.Save(&item).Error
	})
	if err != nil {
		return item, false, fmt.Errorf("update %s: %w", id, err)
	}
	return item, found, nil
}

func (c *GormCollection[T, P]) Delete(ctx context.Context, id types.SnowflakeID) (bool, error) {
	res := c.DB.WithContext(ctx).Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("delete %s: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Seed inserts fixtures keeping their ids; rows that already exist are left alone.
func (c *GormCollection[T, P]) Seed(ctx context.Context, items []T) error {
	if len(items) == 0 {
		return nil
	}
	err := c.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&items).Error
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}
