package repositories

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wms-finance/models"
	"wms-finance/types"
)

type counterIDs struct{ n atomic.Int64 }

func (c *counterIDs) Next() types.SnowflakeID {
	return types.SnowflakeID(1000 + c.n.Add(1))
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.Warehouse{}, &models.Bill{}, &models.User{}))
	return db
}

func collections(t *testing.T) map[string]Collection[models.Warehouse] {
	return map[string]Collection[models.Warehouse]{
		"memory": NewMemoryCollection[models.Warehouse](&counterIDs{}),
		"gorm":   NewGormCollection[models.Warehouse](openTestDB(t), &counterIDs{}),
	}
}

func sampleWarehouse() models.Warehouse {
	return models.Warehouse{
		Code: "WH001", Name: "Shanghai Central", Address: "Pudong",
		Manager: "Zhang", Capacity: 10000, UsedCapacity: 7500, Status: models.StatusActive,
	}
}

func TestCreateThenList(t *testing.T) {
	ctx := context.Background()
	for name, c := range collections(t) {
		t.Run(name, func(t *testing.T) {
			before, err := c.List(ctx)
			require.NoError(t, err)

			created, err := c.Create(ctx, sampleWarehouse())
			require.NoError(t, err)
			assert.NotZero(t, created.ID)
			assert.False(t, created.CreatedAt.IsZero())

			after, err := c.List(ctx)
			require.NoError(t, err)
			require.Len(t, after, len(before)+1)

			got := after[len(after)-1]
			assert.Equal(t, created.ID, got.ID)
			got.Base = models.Base{}
			assert.Equal(t, sampleWarehouse(), got)
		})
	}
}

func TestListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	for name, c := range collections(t) {
		t.Run(name, func(t *testing.T) {
			for _, code := range []string{"A", "B", "C"} {
				w := sampleWarehouse()
				w.Code = code
				_, err := c.Create(ctx, w)
				require.NoError(t, err)
			}
			items, err := c.List(ctx)
			require.NoError(t, err)
			require.Len(t, items, 3)
			assert.Equal(t, []string{"A", "B", "C"}, []string{items[0].Code, items[1].Code, items[2].Code})
		})
	}
}

func TestUpdateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	for name, c := range collections(t) {
		t.Run(name, func(t *testing.T) {
			created, err := c.Create(ctx, sampleWarehouse())
			require.NoError(t, err)

			used := 9000
			patch := models.WarehousePatch{UsedCapacity: &used}
			first, found, err := c.Update(ctx, created.ID, patch)
			require.NoError(t, err)
			require.True(t, found)
			second, found, err := c.Update(ctx, created.ID, patch)
			require.NoError(t, err)
			require.True(t, found)

			assert.Equal(t, 9000, second.UsedCapacity)
			assert.Equal(t, first.Name, second.Name)
			assert.Equal(t, first.UsedCapacity, second.UsedCapacity)

			got, found, err := c.Get(ctx, created.ID)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, 9000, got.UsedCapacity)
			assert.Equal(t, "Shanghai Central", got.Name)
		})
	}
}

func TestMissingIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	for name, c := range collections(t) {
		t.Run(name, func(t *testing.T) {
			_, err := c.Create(ctx, sampleWarehouse())
			require.NoError(t, err)
			before, err := c.List(ctx)
			require.NoError(t, err)

			name := "ghost"
			_, found, err := c.Update(ctx, 42, models.WarehousePatch{Name: &name})
			require.NoError(t, err)
			assert.False(t, found)

			deleted, err := c.Delete(ctx, 42)
			require.NoError(t, err)
			assert.False(t, deleted)

			_, found, err = c.Get(ctx, 42)
			require.NoError(t, err)
			assert.False(t, found)

			after, err := c.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestDeleteRemovesRecord(t *testing.T) {
	ctx := context.Background()
	for name, c := range collections(t) {
		t.Run(name, func(t *testing.T) {
			created, err := c.Create(ctx, sampleWarehouse())
			require.NoError(t, err)

			deleted, err := c.Delete(ctx, created.ID)
			require.NoError(t, err)
			assert.True(t, deleted)

			items, err := c.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, items)
		})
	}
}

func TestSeedKeepsIDsAndSkipsExisting(t *testing.T) {
	ctx := context.Background()
	for name, c := range collections(t) {
		t.Run(name, func(t *testing.T) {
			fixture := sampleWarehouse()
			fixture.Base = models.Base{ID: 1, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

			require.NoError(t, c.Seed(ctx, []models.Warehouse{fixture}))
			require.NoError(t, c.Seed(ctx, []models.Warehouse{fixture}))

			items, err := c.List(ctx)
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, types.SnowflakeID(1), items[0].ID)
		})
	}
}

func TestGormCollectionRoundTripsBills(t *testing.T) {
	ctx := context.Background()
	c := NewGormCollection[models.Bill](openTestDB(t), &counterIDs{})

	created, err := c.Create(ctx, models.Bill{
		BillNumber:  "BILL202401001",
		CustomerID:  1,
		WarehouseID: 1,
		PeriodStart: types.NewDate(2024, 1, 1),
		PeriodEnd:   types.NewDate(2024, 1, 31),
		StorageFees: decimal.RequireFromString("12000.50"),
		TotalAmount: decimal.RequireFromString("19200.50"),
		Status:      models.BillSent,
	})
	require.NoError(t, err)

	got, found, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "2024-01-31", got.PeriodEnd.String())
	assert.True(t, got.TotalAmount.Equal(decimal.RequireFromString("19200.50")))
}

func TestGormCollectionStoresPermissions(t *testing.T) {
	ctx := context.Background()
	c := NewGormCollection[models.User](openTestDB(t), &counterIDs{})

	created, err := c.Create(ctx, models.User{
		Username:    "manager1",
		Email:       "manager@example.com",
		Role:        models.RoleManager,
		Permissions: []models.Permission{{ID: "1", Name: "Bills", Module: "bill", Actions: []string{"read", "export"}}},
		Warehouses:  []string{"1"},
		Customers:   []string{models.AllScope},
		Status:      models.StatusActive,
	})
	require.NoError(t, err)

	got, found, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"read", "export"}, got.Permissions[0].Actions)
	assert.Equal(t, []string{"all"}, got.Customers)
}

func TestMemoryCollectionDetachesSlices(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCollection[models.User](&counterIDs{})
	in := models.User{
		Username:    "clerk",
		Permissions: []models.Permission{{Module: "bill", Actions: []string{"read"}}},
		Warehouses:  []string{"1"},
	}
	created, err := c.Create(ctx, in)
	require.NoError(t, err)
	in.Warehouses[0] = "2"

	got, found, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"1"}, got.Warehouses)
	got.Warehouses[0] = models.AllScope
	got.Permissions[0].Actions[0] = "delete"

	list, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"1"}, list[0].Warehouses)
	assert.Equal(t, "read", list[0].Permissions[0].Actions[0])
	list[0].Customers = append(list[0].Customers, "9")

	updated, found, err := c.Update(ctx, created.ID, models.UserPatch{})
	require.NoError(t, err)
	require.True(t, found)
	updated.Warehouses[0] = "3"

	again, _, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, again.Warehouses)
	assert.Empty(t, again.Customers)
}
