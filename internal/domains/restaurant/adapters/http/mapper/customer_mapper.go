package mapper

import (
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/application/types"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
)

// Address is the HTTP representation of a customer address. Every line is optional.
type Address struct {
	Street     *string `json:"street"`
	City       *string `json:"city"`
	Province   *string `json:"province"`
	PostalCode *string `json:"postal_code"`
}

// CustomerPayload captures inbound customer attributes while preserving field presence.
type CustomerPayload struct {
	Name    *string  `json:"name"`
	Phone   *string  `json:"phone"`
	Address *Address `json:"address"`
}

// CustomerRequest is the body of customer create and update calls.
type CustomerRequest struct {
	Customer *CustomerPayload `json:"customer"`
}

// Customer is the HTTP representation of a customer.
type Customer struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Address Address `json:"address"`
}

// ToCreateCustomerInput requires name and phone.
func ToCreateCustomerInput(p CustomerPayload) (types.CreateCustomerInput, error) {
	if p.Name == nil || p.Phone == nil {
		return types.CreateCustomerInput{}, ErrMissingFields
	}
	input := types.CreateCustomerInput{Name: *p.Name, Phone: *p.Phone}
	if p.Address != nil {
		input.Address = domain.Address{
			Street:     p.Address.Street,
			City:       p.Address.City,
			Province:   p.Address.Province,
			PostalCode: p.Address.PostalCode,
		}
	}
	return input, nil
}

func ToCustomerPatch(p CustomerPayload) domain.CustomerPatch {
	patch := domain.CustomerPatch{Name: p.Name, Phone: p.Phone}
	if p.Address != nil {
		patch.Address = domain.AddressPatch{
			Street:     p.Address.Street,
			City:       p.Address.City,
			Province:   p.Address.Province,
			PostalCode: p.Address.PostalCode,
		}
	}
	return patch
}

func FromCustomer(c *domain.Customer) Customer {
	if c == nil {
		return Customer{}
	}
	return Customer{
		ID:    c.ID,
		Name:  c.Name,
		Phone: c.Phone,
		Address: Address{
			Street:     c.Address.Street,
			City:       c.Address.City,
			Province:   c.Address.Province,
			PostalCode: c.Address.PostalCode,
		},
	}
}
