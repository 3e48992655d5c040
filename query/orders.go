package query

import (
	"wms-finance/models"
	"wms-finance/types"
)

type OrderFilter struct {
	CustomerID  types.SnowflakeID
	WarehouseID types.SnowflakeID
	OrderType   models.OrderType
	Status      models.OrderStatus
}

func (f OrderFilter) Predicates() []Predicate[models.Order] {
	return []Predicate[models.Order]{
		Equal(func(o models.Order) types.SnowflakeID { return o.CustomerID }, f.CustomerID),
		Equal(func(o models.Order) types.SnowflakeID { return o.WarehouseID }, f.WarehouseID),
		Equal(func(o models.Order) models.OrderType { return o.OrderType }, f.OrderType),
		Equal(func(o models.Order) models.OrderStatus { return o.Status }, f.Status),
	}
}

func (f OrderFilter) Apply(orders []models.Order) []models.Order {
	return Filter(orders, f.Predicates()...)
}

type OrderSummary struct {
	Total     int `json:"total"`
	Inbound   int `json:"inbound"`
	Outbound  int `json:"outbound"`
	Completed int `json:"completed"`
	Quantity  int `json:"quantity"`
	Pallets   int `json:"pallets"`
}

func SummarizeOrders(orders []models.Order) OrderSummary {
	var s OrderSummary
	for _, o := range orders {
		s.Total++
		switch o.OrderType {
		case models.OrderInbound:
			s.Inbound++
		case models.OrderOutbound:
			s.Outbound++
		}
		if o.Status == models.OrderCompleted {
			s.Completed++
		}
		s.Quantity += o.Quantity
		s.Pallets += o.PalletCount
	}
	return s
}
