package entity

import "time"

// Address dirección postal de un cliente (texto libre).
type Address struct {
	Line1      string
	Line2      string
	City       string
	PostalCode string
}

// Customer representa un cliente del negocio.
// SearchName es el nombre normalizado (minúsculas, sin acentos) que se
// persiste para búsqueda insensible a tildes.
type Customer struct {
	ID         string
	Name       string
	SearchName string
	Phone      string
	Address    Address
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
