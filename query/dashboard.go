package query

import (
	"github.com/shopspring/decimal"

	"wms-finance/models"
)

const recentBillLimit = 5

type UtilizationLevel string

const (
	UtilizationHigh   UtilizationLevel = "high"
	UtilizationMedium UtilizationLevel = "medium"
	UtilizationLow    UtilizationLevel = "low"
)

func LevelOf(percent float64) UtilizationLevel {
	switch {
	case percent > 80:
		return UtilizationHigh
	case percent > 60:
		return UtilizationMedium
	}
	return UtilizationLow
}

type WarehouseUtilization struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Capacity     int              `json:"capacity"`
	UsedCapacity int              `json:"usedCapacity"`
	Percent      float64          `json:"percent"`
	Level        UtilizationLevel `json:"level"`
}

type Dashboard struct {
	TotalRevenue     decimal.Decimal        `json:"totalRevenue"`
	CompletedOrders  int                    `json:"completedOrders"`
	ActiveCustomers  int                    `json:"activeCustomers"`
	ActiveWarehouses int                    `json:"activeWarehouses"`
	RecentBills      []models.Bill          `json:"recentBills"`
	Utilization      []WarehouseUtilization `json:"utilization"`
}

func BuildDashboard(bills []models.Bill, orders []models.Order, customers []models.Customer, warehouses []models.Warehouse) Dashboard {
	d := Dashboard{
		TotalRevenue: SumDecimal(bills, func(b models.Bill) decimal.Decimal { return b.TotalAmount }),
		CompletedOrders: Count(orders, func(o models.Order) bool {
			return o.Status == models.OrderCompleted
		}),
		ActiveCustomers: Count(customers, func(c models.Customer) bool {
			return c.Status == models.StatusActive
		}),
		ActiveWarehouses: Count(warehouses, func(w models.Warehouse) bool {
			return w.Status == models.StatusActive
		}),
		RecentBills: append([]models.Bill{}, bills[:min(len(bills), recentBillLimit)]...),
		Utilization: make([]WarehouseUtilization, 0, len(warehouses)),
	}
	for _, w := range warehouses {
		pct := w.Utilization()
		d.Utilization = append(d.Utilization, WarehouseUtilization{
			ID:           w.ID.String(),
			Name:         w.Name,
			Capacity:     w.Capacity,
			UsedCapacity: w.UsedCapacity,
			Percent:      pct,
			Level:        LevelOf(pct),
		})
	}
	return d
}
