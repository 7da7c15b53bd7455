package types

import "strings"

// ShippingAddress is the delivery address collected at checkout. Every field
// is required.
type ShippingAddress struct {
	HouseNo  string `json:"houseNo" validate:"required"`
	Village  string `json:"village" validate:"required"`
	District string `json:"district" validate:"required"`
	Pincode  string `json:"pincode" validate:"required"`
	State    string `json:"state" validate:"required"`
}

// Trimmed returns a copy with surrounding whitespace removed from each field.
func (a ShippingAddress) Trimmed() ShippingAddress {
	return ShippingAddress{
		HouseNo:  strings.TrimSpace(a.HouseNo),
		Village:  strings.TrimSpace(a.Village),
		District: strings.TrimSpace(a.District),
		Pincode:  strings.TrimSpace(a.Pincode),
		State:    strings.TrimSpace(a.State),
	}
}

// Customer identifies who placed an order.
type Customer struct {
	ID       string `json:"id" validate:"required"`
	NanoID   string `json:"nanoid,omitempty"`
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty"`
}
