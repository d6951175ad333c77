package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PendingStock representa un backorder: cantidad prometida a un cliente que el
// inventario no cubrió al momento del pedido. Hay exactamente uno por pedido.
//
// Ciclo de vida: se crea sin resolver (FulfilledByID nil); llegadas de stock lo
// van descontando en orden FIFO hasta que un lote lo cubre por completo y queda
// resuelto (FulfilledByID apunta a ese lote). Una vez resuelto no cuenta para
// el backorder pendiente ni para la cantidad restante de su lote.
type PendingStock struct {
	ID                    string
	ProductID             string
	OrderID               string
	QuantityToBePurchased decimal.Decimal // siempre > 0 mientras no esté resuelto
	Date                  time.Time
	Seq                   int64 // secuencia de creación; desempata fechas iguales
	FulfilledByID         *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Resolved indica si el backorder ya fue cubierto por un lote.
func (p *PendingStock) Resolved() bool {
	return p.FulfilledByID != nil
}
