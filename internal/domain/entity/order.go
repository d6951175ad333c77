package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago de un pedido.
const (
	PaymentCash     = "cash"
	PaymentTransfer = "transfer"
	PaymentOther    = "other"
)

// Estados de pago y de entrega.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// ValidPaymentMethod indica si el método de pago es uno de los soportados.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentTransfer, PaymentOther:
		return true
	}
	return false
}

// ValidStatus indica si el estado (pago o entrega) es válido.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusCompleted
}

// Consumption registra que un pedido consumió una cantidad de un lote concreto.
// Es la arista (pedido, lote, cantidad) de la que se deriva la cantidad
// restante de cada lote.
type Consumption struct {
	ID        string
	OrderID   string
	BatchID   string
	Quantity  decimal.Decimal
	CreatedAt time.Time
}

// Order representa un pedido de un cliente para un producto.
// Invariante: Σ cantidades de Consumptions ≤ Quantity; el faltante
// (Quantity − consumido) coincide con el PendingStock asociado si existe.
type Order struct {
	ID             string
	OrderNumber    int // entero creciente, único; max existente + 1 al crear
	ProductID      string
	CustomerID     string // vacío solo como anomalía de datos históricos, nunca en pedidos nuevos
	PaymentMethod  string
	Quantity       decimal.Decimal
	AmountPaid     decimal.Decimal
	Date           time.Time
	PaymentStatus  string
	DeliveryStatus string
	Notes          string
	Consumptions   []*Consumption
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ConsumedQuantity suma las cantidades asignadas del pedido sobre todos los lotes.
func (o *Order) ConsumedQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, c := range o.Consumptions {
		total = total.Add(c.Quantity)
	}
	return total
}

// IsPending indica si el pago o la entrega siguen pendientes.
func (o *Order) IsPending() bool {
	return o.PaymentStatus == StatusPending || o.DeliveryStatus == StatusPending
}

// IsCompleted indica si pago y entrega están completados.
func (o *Order) IsCompleted() bool {
	return o.PaymentStatus == StatusCompleted && o.DeliveryStatus == StatusCompleted
}
