package models

type Warehouse struct {
	Base
	Code         string `json:"code" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Address      string `json:"address"`
	Manager      string `json:"manager"`
	Capacity     int    `json:"capacity" validate:"gte=0"`
	UsedCapacity int    `json:"usedCapacity" validate:"gte=0"`
	Status       Status `json:"status" validate:"required,oneof=active inactive"`
}

func (w *Warehouse) SetDefaults() {
	if w.Status == "" {
		w.Status = StatusActive
	}
}

// Utilization is the used share of capacity in percent. UsedCapacity may
// exceed Capacity; nothing clamps it.
func (w Warehouse) Utilization() float64 {
	if w.Capacity <= 0 {
		return 0
	}
	return float64(w.UsedCapacity) / float64(w.Capacity) * 100
}

type WarehousePatch struct {
	Code         *string `json:"code" validate:"omitempty,min=1"`
	Name         *string `json:"name" validate:"omitempty,min=1"`
	Address      *string `json:"address"`
	Manager      *string `json:"manager"`
	Capacity     *int    `json:"capacity" validate:"omitempty,gte=0"`
	UsedCapacity *int    `json:"usedCapacity" validate:"omitempty,gte=0"`
	Status       *Status `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (p WarehousePatch) Apply(w *Warehouse) {
	if p.Code != nil {
		w.Code = *p.Code
	}
	if p.Name != nil {
		w.Name = *p.Name
	}
	if p.Address != nil {
		w.Address = *p.Address
	}
	if p.Manager != nil {
		w.Manager = *p.Manager
	}
	if p.Capacity != nil {
		w.Capacity = *p.Capacity
	}
	if p.UsedCapacity != nil {
		w.UsedCapacity = *p.UsedCapacity
	}
	if p.Status != nil {
		w.Status = *p.Status
	}
}
