package models

import (
	"time"

	"github.com/shopspring/decimal"

	"wms-finance/types"
)

func init() {
	// Amounts go out as JSON numbers, the shape the console expects.
	decimal.MarshalJSONWithoutQuotes = true
}

// Base carries the generated fields every record receives at creation.
type Base struct {
	ID        types.SnowflakeID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time         `json:"createdAt"`
}

func (b *Base) Key() types.SnowflakeID {
	return b.ID
}

func (b *Base) Stamp(id types.SnowflakeID, at time.Time) {
	b.ID = id
	b.CreatedAt = at
}

// Status is the active/inactive switch shared by users, warehouses and customers.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)
