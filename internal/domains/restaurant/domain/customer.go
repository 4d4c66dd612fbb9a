package domain

import (
	"errors"
	"strings"
)

var ErrEmptyPhone = errors.New("phone number is required")

// Address is the optional postal address of a customer.
type Address struct {
	Street     *string
	City       *string
	Province   *string
	PostalCode *string
}

// Customer places orders.
type Customer struct {
	ID      int64
	Name    string
	Phone   string
	Address Address
}

// AddressPatch changes individual address lines; a pointer to "" clears a line.
type AddressPatch struct {
	Street     *string
	City       *string
	Province   *string
	PostalCode *string
}

func (p AddressPatch) IsEmpty() bool {
	return p.Street == nil && p.City == nil && p.Province == nil && p.PostalCode == nil
}

// CustomerPatch carries the customer fields a caller wants to change.
type CustomerPatch struct {
	Name    *string
	Phone   *string
	Address AddressPatch
}

func (p CustomerPatch) IsEmpty() bool {
	return p.Name == nil && p.Phone == nil && p.Address.IsEmpty()
}

func (c *Customer) Apply(p CustomerPatch) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Address.Street != nil {
		c.Address.Street = normalizeOptional(*p.Address.Street)
	}
	if p.Address.City != nil {
		c.Address.City = normalizeOptional(*p.Address.City)
	}
	if p.Address.Province != nil {
		c.Address.Province = normalizeOptional(*p.Address.Province)
	}
	if p.Address.PostalCode != nil {
		c.Address.PostalCode = normalizeOptional(*p.Address.PostalCode)
	}
}

func (c Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(c.Phone) == "" {
		return ErrEmptyPhone
	}
	return nil
}
