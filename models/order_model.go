package models

import (
	"time"

	"wms-finance/types"
)

type OrderType string

const (
	OrderInbound  OrderType = "inbound"
	OrderOutbound OrderType = "outbound"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// Order keeps copies of the customer and warehouse names taken when the
// order was written; they are refreshed only when the ids change.
type Order struct {
	Base
	OrderNumber   string            `json:"orderNumber" validate:"required"`
	CustomerID    types.SnowflakeID `json:"customerId" validate:"required"`
	CustomerName  string            `json:"customerName"`
	WarehouseID   types.SnowflakeID `json:"warehouseId" validate:"required"`
	WarehouseName string            `json:"warehouseName"`
	OrderType     OrderType         `json:"orderType" validate:"required,oneof=inbound outbound"`
	Quantity      int               `json:"quantity" validate:"gte=0"`
	PalletCount   int               `json:"palletCount" validate:"gte=0"`
	Status        OrderStatus       `json:"status" validate:"required,oneof=pending processing completed cancelled"`
	CompletedAt   *time.Time        `json:"completedAt,omitempty"`
}

func (o *Order) SetDefaults() {
	if o.Status == "" {
		o.Status = OrderPending
	}
}

type OrderPatch struct {
	OrderNumber   *string            `json:"orderNumber" validate:"omitempty,min=1"`
	CustomerID    *types.SnowflakeID `json:"customerId"`
	CustomerName  *string            `json:"-"`
	WarehouseID   *types.SnowflakeID `json:"warehouseId"`
	WarehouseName *string            `json:"-"`
	OrderType     *OrderType         `json:"orderType" validate:"omitempty,oneof=inbound outbound"`
	Quantity      *int               `json:"quantity" validate:"omitempty,gte=0"`
	PalletCount   *int               `json:"palletCount" validate:"omitempty,gte=0"`
	Status        *OrderStatus       `json:"status" validate:"omitempty,oneof=pending processing completed cancelled"`
	CompletedAt   *time.Time         `json:"completedAt"`
}

func (p OrderPatch) Apply(o *Order) {
	if p.OrderNumber != nil {
		o.OrderNumber = *p.OrderNumber
	}
	if p.CustomerID != nil {
		o.CustomerID = *p.CustomerID
	}
	if p.CustomerName != nil {
		o.CustomerName = *p.CustomerName
	}
	if p.WarehouseID != nil {
		o.WarehouseID = *p.WarehouseID
	}
	if p.WarehouseName != nil {
		o.WarehouseName = *p.WarehouseName
	}
	if p.OrderType != nil {
		o.OrderType = *p.OrderType
	}
	if p.Quantity != nil {
		o.Quantity = *p.Quantity
	}
	if p.PalletCount != nil {
		o.PalletCount = *p.PalletCount
	}
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.CompletedAt != nil {
		at := *p.CompletedAt
		o.CompletedAt = &at
	}
}
