package models

import "github.com/shopspring/decimal"

type FeeType string

const (
	FeeStorage   FeeType = "storage"
	FeeOperation FeeType = "operation"
	FeeTransport FeeType = "transport"
	FeeOther     FeeType = "other"
)

// FeeTypes lists fee types in display order.
var FeeTypes = []FeeType{FeeStorage, FeeOperation, FeeTransport, FeeOther}

type FeeUnit string

const (
	UnitPerPallet FeeUnit = "per_pallet"
	UnitPerItem   FeeUnit = "per_item"
	UnitPerOrder  FeeUnit = "per_order"
	UnitFixed     FeeUnit = "fixed"
)

type FeeConfig struct {
	Base
	Name        string          `json:"name" validate:"required"`
	Type        FeeType         `json:"type" validate:"required,oneof=storage operation transport other"`
	Unit        FeeUnit         `json:"unit" validate:"required,oneof=per_pallet per_item per_order fixed"`
	BasePrice   decimal.Decimal `json:"basePrice" gorm:"type:decimal(18,2)"`
	Description string          `json:"description"`
	IsActive    bool            `json:"isActive"`
}

func (FeeConfig) TableName() string {
	return "fee_configs"
}

type FeeConfigPatch struct {
	Name        *string          `json:"name" validate:"omitempty,min=1"`
	Type        *FeeType         `json:"type" validate:"omitempty,oneof=storage operation transport other"`
	Unit        *FeeUnit         `json:"unit" validate:"omitempty,oneof=per_pallet per_item per_order fixed"`
	BasePrice   *decimal.Decimal `json:"basePrice"`
	Description *string          `json:"description"`
	IsActive    *bool            `json:"isActive"`
}

func (p FeeConfigPatch) Apply(f *FeeConfig) {
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Type != nil {
		f.Type = *p.Type
	}
	if p.Unit != nil {
		f.Unit = *p.Unit
	}
	if p.BasePrice != nil {
		f.BasePrice = *p.BasePrice
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	if p.IsActive != nil {
		f.IsActive = *p.IsActive
	}
}
