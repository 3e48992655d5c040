package query

import (
	"github.com/shopspring/decimal"

	"wms-finance/models"
	"wms-finance/types"
)

// BillFilter is the bill query screen's filter form. Zero fields are unset.
type BillFilter struct {
	Start       types.Date
	End         types.Date
	CustomerID  types.SnowflakeID
	WarehouseID types.SnowflakeID
	Status      models.BillStatus
	Policy      RangePolicy
}

func (f BillFilter) Predicates() []Predicate[models.Bill] {
	return []Predicate[models.Bill]{
		DateRange(billPeriod, f.Start, f.End, f.Policy),
		Equal(func(b models.Bill) types.SnowflakeID { return b.CustomerID }, f.CustomerID),
		Equal(func(b models.Bill) types.SnowflakeID { return b.WarehouseID }, f.WarehouseID),
		Equal(func(b models.Bill) models.BillStatus { return b.Status }, f.Status),
	}
}

func (f BillFilter) Apply(bills []models.Bill) []models.Bill {
	return Filter(bills, f.Predicates()...)
}

func billPeriod(b models.Bill) (types.Date, types.Date) {
	return b.PeriodStart, b.PeriodEnd
}

type BillSummary struct {
	Count      int             `json:"count"`
	Total      decimal.Decimal `json:"totalAmount"`
	Paid       decimal.Decimal `json:"paidAmount"`
	Unpaid     decimal.Decimal `json:"unpaidAmount"`
	Mismatched int             `json:"mismatchedTotals"`
}

// SummarizeBills totals a bill set in one pass. Unpaid is everything not
// in paid status, overdue and draft included.
func SummarizeBills(bills []models.Bill) BillSummary {
	s := BillSummary{Total: decimal.Zero, Paid: decimal.Zero}
	for _, b := range bills {
		s.Count++
		s.Total = s.Total.Add(b.TotalAmount)
		if b.Status == models.BillPaid {
			s.Paid = s.Paid.Add(b.TotalAmount)
		}
		if !b.TotalMatches() {
			s.Mismatched++
		}
	}
	s.Unpaid = s.Total.Sub(s.Paid)
	return s
}
