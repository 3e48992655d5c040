package models

import (
	"slices"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleOperator Role = "operator"
)

// AllScope is the wildcard entry of a scoped id list.
const AllScope = "all"

// Permission grants a list of actions on one module.
type Permission struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Module  string   `json:"module" validate:"required"`
	Actions []string `json:"actions"`
}

// User is also the authenticated identity. Role is informational only;
// access is decided by Permissions, Warehouses and Customers.
type User struct {
	Base
	Username     string       `json:"username" validate:"required,min=3"`
	Email        string       `json:"email" validate:"required,email"`
	PasswordHash string       `json:"-" gorm:"column:password"`
	Role         Role         `json:"role" validate:"required,oneof=admin manager operator"`
	Permissions  []Permission `json:"permissions" gorm:"serializer:json;type:text"`
	Warehouses   []string     `json:"warehouses" gorm:"serializer:json;type:text"`
	Customers    []string     `json:"customers" gorm:"serializer:json;type:text"`
	Status       Status       `json:"status" validate:"required,oneof=active inactive"`
	LastLogin    *time.Time   `json:"lastLogin,omitempty"`
}

func (u *User) SetDefaults() {
	if u.Status == "" {
		u.Status = StatusActive
	}
	if u.Role == "" {
		u.Role = RoleOperator
	}
}

// Snapshot returns a copy that shares no slices with u.
func (u User) Snapshot() User {
	out := u
	if u.Permissions != nil {
		out.Permissions = make([]Permission, len(u.Permissions))
		for i, p := range u.Permissions {
			p.Actions = slices.Clone(p.Actions)
			out.Permissions[i] = p
		}
	}
	out.Warehouses = slices.Clone(u.Warehouses)
	out.Customers = slices.Clone(u.Customers)
	return out
}

type UserPatch struct {
	Username     *string       `json:"username" validate:"omitempty,min=3"`
	Email        *string       `json:"email" validate:"omitempty,email"`
	Password     *string       `json:"password" validate:"omitempty,min=6"`
	PasswordHash *string       `json:"-"`
	Role         *Role         `json:"role" validate:"omitempty,oneof=admin manager operator"`
	Permissions  *[]Permission `json:"permissions"`
	Warehouses   *[]string     `json:"warehouses"`
	Customers    *[]string     `json:"customers"`
	Status       *Status       `json:"status" validate:"omitempty,oneof=active inactive"`
	LastLogin    *time.Time    `json:"-"`
}

func (p UserPatch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Permissions != nil {
		u.Permissions = (User{Permissions: *p.Permissions}).Snapshot().Permissions
	}
	if p.Warehouses != nil {
		u.Warehouses = slices.Clone(*p.Warehouses)
	}
	if p.Customers != nil {
		u.Customers = slices.Clone(*p.Customers)
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
	if p.LastLogin != nil {
		at := *p.LastLogin
		u.LastLogin = &at
	}
}
