package query

import "wms-finance/models"

type FeeTypeCount struct {
	Type   models.FeeType `json:"type"`
	Active int            `json:"active"`
	Total  int            `json:"total"`
}

// SummarizeFees counts configs per fee type, in models.FeeTypes order.
func SummarizeFees(fees []models.FeeConfig) []FeeTypeCount {
	out := make([]FeeTypeCount, len(models.FeeTypes))
	index := make(map[models.FeeType]int, len(models.FeeTypes))
	for i, t := range models.FeeTypes {
		out[i].Type = t
		index[t] = i
	}
	for _, f := range fees {
		i, ok := index[f.Type]
		if !ok {
			continue
		}
		out[i].Total++
		if f.IsActive {
			out[i].Active++
		}
	}
	return out
}
