package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida soportadas para un producto.
const (
	UnitKg    = "kg"
	UnitG     = "g"
	UnitDozen = "dozen"
	UnitBox   = "box"
	UnitPiece = "piece"
)

// ValidUnit indica si la unidad de medida es una de las soportadas.
func ValidUnit(u string) bool {
	switch u {
	case UnitKg, UnitG, UnitDozen, UnitBox, UnitPiece:
		return true
	}
	return false
}

// Product representa un producto del negocio.
// MadeToOrder marca productos hechos-a-pedido: para ellos nunca se maneja
// inventario (sin lotes, sin asignación FIFO, sin backorders).
type Product struct {
	ID          string
	Name        string
	Icon        string // emoji identificador del producto
	Unit        string // kg, g, dozen, box, piece
	StepAmount  decimal.Decimal // incremento mínimo de cantidad (default 1)
	MadeToOrder bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
