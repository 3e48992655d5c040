package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wms-finance/types"
)

func TestPatchApplyIsIdempotent(t *testing.T) {
	name := "Shanghai Hub"
	capacity := 12000
	patch := WarehousePatch{Name: &name, Capacity: &capacity}

	once := Warehouse{Code: "WH001", Name: "old", Capacity: 10000, UsedCapacity: 7500, Status: StatusActive}
	patch.Apply(&once)
	twice := once
	patch.Apply(&twice)

	assert.Equal(t, once, twice)
	assert.Equal(t, "Shanghai Hub", once.Name)
	assert.Equal(t, 7500, once.UsedCapacity)
}

func TestUserPatchDoesNotAliasSlices(t *testing.T) {
	warehouses := []string{"1"}
	var u User
	UserPatch{Warehouses: &warehouses}.Apply(&u)
	warehouses[0] = "2"
	assert.Equal(t, []string{"1"}, u.Warehouses)
}

func TestUserSnapshot(t *testing.T) {
	u := User{Permissions: []Permission{{Module: "bill", Actions: []string{"read"}}}}
	snap := u.Snapshot()
	snap.Permissions[0].Actions[0] = "delete"
	assert.Equal(t, "read", u.Permissions[0].Actions[0])
}

func TestUserPasswordNotSerialized(t *testing.T) {
	raw, err := json.Marshal(User{Username: "admin", PasswordHash: "secret"})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
}

func TestWarehouseUtilization(t *testing.T) {
	assert.Equal(t, 75.0, Warehouse{Capacity: 10000, UsedCapacity: 7500}.Utilization())
	assert.Equal(t, 0.0, Warehouse{Capacity: 0, UsedCapacity: 10}.Utilization())
	assert.Equal(t, 150.0, Warehouse{Capacity: 100, UsedCapacity: 150}.Utilization())
}

func TestBillTotals(t *testing.T) {
	b := Bill{
		StorageFees:   decimal.NewFromInt(12000),
		OperationFees: decimal.NewFromInt(4800),
		ExtraFees:     decimal.NewFromInt(2400),
		TotalAmount:   decimal.NewFromInt(19200),
	}
	assert.True(t, b.TotalMatches())
	b.TotalAmount = decimal.NewFromInt(19000)
	assert.False(t, b.TotalMatches())
}

func TestBillCheck(t *testing.T) {
	b := Bill{PeriodStart: types.NewDate(2024, 1, 1), PeriodEnd: types.NewDate(2024, 1, 31)}
	assert.NoError(t, b.Check())

	b.PeriodEnd = types.NewDate(2023, 12, 31)
	assert.Error(t, b.Check())

	b.PeriodEnd = types.NewDate(2024, 1, 31)
	b.ExtraFees = decimal.NewFromInt(-1)
	assert.Error(t, b.Check())

	assert.Error(t, Bill{}.Check())
}

func TestBillJSONShape(t *testing.T) {
	b := Bill{
		Base:        Base{ID: 1},
		BillNumber:  "BILL202401001",
		PeriodStart: types.NewDate(2024, 1, 1),
		TotalAmount: decimal.RequireFromString("19200.50"),
		Status:      BillSent,
	}
	raw, err := json.Marshal(b)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "1", out["id"])
	assert.Equal(t, "2024-01-01", out["periodStart"])
	assert.Equal(t, 19200.5, out["totalAmount"])
	assert.NotContains(t, out, "paidAt")
}
