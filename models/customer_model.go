package models

type Customer struct {
	Base
	Code          string `json:"code" validate:"required"`
	Name          string `json:"name" validate:"required"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
	Email         string `json:"email" validate:"omitempty,email"`
	Address       string `json:"address"`
	PaymentTerms  int    `json:"paymentTerms" validate:"gte=0"`
	Status        Status `json:"status" validate:"required,oneof=active inactive"`
}

func (c *Customer) SetDefaults() {
	if c.Status == "" {
		c.Status = StatusActive
	}
}

type CustomerPatch struct {
	Code          *string `json:"code" validate:"omitempty,min=1"`
	Name          *string `json:"name" validate:"omitempty,min=1"`
	ContactPerson *string `json:"contactPerson"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Address       *string `json:"address"`
	PaymentTerms  *int    `json:"paymentTerms" validate:"omitempty,gte=0"`
	Status        *Status `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (p CustomerPatch) Apply(c *Customer) {
	if p.Code != nil {
		c.Code = *p.Code
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.ContactPerson != nil {
		c.ContactPerson = *p.ContactPerson
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.PaymentTerms != nil {
		c.PaymentTerms = *p.PaymentTerms
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
}
