package dto

import "time"

// AddressPayload dirección postal de un cliente.
type AddressPayload struct {
	Line1      string `json:"line1" validate:"omitempty,max=200"`
	Line2      string `json:"line2" validate:"omitempty,max=200"`
	City       string `json:"city" validate:"omitempty,max=100"`
	PostalCode string `json:"postal_code" validate:"omitempty,max=20"`
}

// CreateCustomerRequest entrada para crear un cliente.
type CreateCustomerRequest struct {
	Name    string         `json:"name" validate:"required,min=1,max=200"`
	Phone   string         `json:"phone" validate:"omitempty,max=30"`
	Address AddressPayload `json:"address"`
}

// UpdateCustomerRequest entrada para actualizar un cliente.
type UpdateCustomerRequest struct {
	Name    *string         `json:"name" validate:"omitempty,min=1,max=200"`
	Phone   *string         `json:"phone" validate:"omitempty,max=30"`
	Address *AddressPayload `json:"address"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Phone     string         `json:"phone"`
	Address   AddressPayload `json:"address"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
