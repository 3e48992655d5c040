package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"wms-finance/types"
)

type BillStatus string

const (
	BillDraft   BillStatus = "draft"
	BillSent    BillStatus = "sent"
	BillPaid    BillStatus = "paid"
	BillOverdue BillStatus = "overdue"
)

// Bill covers one customer at one warehouse over a calendar period.
// TotalAmount is stored as entered and is not derived from the fee parts.
type Bill struct {
	Base
	BillNumber    string            `json:"billNumber" validate:"required"`
	CustomerID    types.SnowflakeID `json:"customerId" validate:"required"`
	CustomerName  string            `json:"customerName"`
	WarehouseID   types.SnowflakeID `json:"warehouseId" validate:"required"`
	WarehouseName string            `json:"warehouseName"`
	PeriodStart   types.Date        `json:"periodStart" gorm:"type:date"`
	PeriodEnd     types.Date        `json:"periodEnd" gorm:"type:date"`
	StorageFees   decimal.Decimal   `json:"storageFees" gorm:"type:decimal(18,2)"`
	OperationFees decimal.Decimal   `json:"operationFees" gorm:"type:decimal(18,2)"`
	ExtraFees     decimal.Decimal   `json:"extraFees" gorm:"type:decimal(18,2)"`
	TotalAmount   decimal.Decimal   `json:"totalAmount" gorm:"type:decimal(18,2)"`
	Status        BillStatus        `json:"status" validate:"required,oneof=draft sent paid overdue"`
	PaidAt        *time.Time        `json:"paidAt,omitempty"`
}

func (b *Bill) SetDefaults() {
	if b.Status == "" {
		b.Status = BillDraft
	}
}

// ComponentSum is storage + operation + extra fees.
func (b Bill) ComponentSum() decimal.Decimal {
	return b.StorageFees.Add(b.OperationFees).Add(b.ExtraFees)
}

// TotalMatches reports whether TotalAmount equals the sum of the fee parts.
func (b Bill) TotalMatches() bool {
	return b.TotalAmount.Equal(b.ComponentSum())
}

var ErrInvalidBill = errors.New("invalid bill")

// Check validates what struct tags cannot express.
func (b Bill) Check() error {
	if b.PeriodStart.IsZero() || b.PeriodEnd.IsZero() {
		return fmt.Errorf("%w: billing period start and end are required", ErrInvalidBill)
	}
	if b.PeriodEnd.Before(b.PeriodStart) {
		return fmt.Errorf("%w: billing period ends before it starts", ErrInvalidBill)
	}
	for _, amount := range []decimal.Decimal{b.StorageFees, b.OperationFees, b.ExtraFees, b.TotalAmount} {
		if amount.IsNegative() {
			return fmt.Errorf("%w: amounts must not be negative", ErrInvalidBill)
		}
	}
	return nil
}

type BillPatch struct {
	BillNumber    *string            `json:"billNumber" validate:"omitempty,min=1"`
	CustomerID    *types.SnowflakeID `json:"customerId"`
	CustomerName  *string            `json:"-"`
	WarehouseID   *types.SnowflakeID `json:"warehouseId"`
	WarehouseName *string            `json:"-"`
	PeriodStart   *types.Date        `json:"periodStart"`
	PeriodEnd     *types.Date        `json:"periodEnd"`
	StorageFees   *decimal.Decimal   `json:"storageFees"`
	OperationFees *decimal.Decimal   `json:"operationFees"`
	ExtraFees     *decimal.Decimal   `json:"extraFees"`
	TotalAmount   *decimal.Decimal   `json:"totalAmount"`
	Status        *BillStatus        `json:"status" validate:"omitempty,oneof=draft sent paid overdue"`
	PaidAt        *time.Time         `json:"paidAt"`
}

func (p BillPatch) Apply(b *Bill) {
	if p.BillNumber != nil {
		b.BillNumber = *p.BillNumber
	}
	if p.CustomerID != nil {
		b.CustomerID = *p.CustomerID
	}
	if p.CustomerName != nil {
		b.CustomerName = *p.CustomerName
	}
	if p.WarehouseID != nil {
		b.WarehouseID = *p.WarehouseID
	}
	if p.WarehouseName != nil {
		b.WarehouseName = *p.WarehouseName
	}
	if p.PeriodStart != nil {
		b.PeriodStart = *p.PeriodStart
	}
	if p.PeriodEnd != nil {
		b.PeriodEnd = *p.PeriodEnd
	}
	if p.StorageFees != nil {
		b.StorageFees = *p.StorageFees
	}
	if p.OperationFees != nil {
		b.OperationFees = *p.OperationFees
	}
	if p.ExtraFees != nil {
		b.ExtraFees = *p.ExtraFees
	}
	if p.TotalAmount != nil {
		b.TotalAmount = *p.TotalAmount
	}
	if p.Status != nil {
		b.Status = *p.Status
	}
	if p.PaidAt != nil {
		at := *p.PaidAt
		b.PaidAt = &at
	}
}
