package model

import "time"

// CustomerStatus specifies whether customer is still served
type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "active"
	CustomerInactive CustomerStatus = "inactive"
)

// Customer is customer model entity
type Customer struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	Address   string         `json:"address"`
	Status    CustomerStatus `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
}

// MergePatch applies non-nil patch fields on top of customer
func (c Customer) MergePatch(patch PatchCustomer) Customer {
	if patch.Name != nil {
		c.Name = *patch.Name
	}

	if patch.Email != nil {
		c.Email = *patch.Email
	}

	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}

	if patch.Address != nil {
		c.Address = *patch.Address
	}

	if patch.Status != nil {
		c.Status = *patch.Status
	}
	return c
}

// NewCustomer is data required to register customer
type NewCustomer struct {
	Name    string         `json:"name" validate:"required,max=120"`
	Email   string         `json:"email" validate:"required,email"`
	Phone   string         `json:"phone" validate:"required,max=32"`
	Address string         `json:"address" validate:"required,max=255"`
	Status  CustomerStatus `json:"status" validate:"oneof=active inactive"`
}

// PatchCustomer is partial customer update, nil fields stay untouched
type PatchCustomer struct {
	Name    *string         `json:"name" validate:"omitempty,min=1,max=120"`
	Email   *string         `json:"email" validate:"omitempty,email"`
	Phone   *string         `json:"phone" validate:"omitempty,min=1,max=32"`
	Address *string         `json:"address" validate:"omitempty,min=1,max=255"`
	Status  *CustomerStatus `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (p PatchCustomer) IsEmpty() bool {
	return p == PatchCustomer{}
}
