package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBatch representa un lote de compra de inventario para un producto.
// La cantidad restante NO se almacena: se deriva siempre de los registros de
// consumo vigentes (ver stock.Ledger), de modo que ediciones y borrados de
// pedidos nunca desincronizan el disponible.
type StockBatch struct {
	ID                string
	ProductID         string
	AmountPaid        decimal.Decimal // total pagado por el lote
	QuantityPurchased decimal.Decimal
	ManuallyConsumed  decimal.Decimal // cantidad marcada como ya usada al crear el lote
	Date              time.Time       // fecha de compra (orden FIFO)
	Seq               int64           // secuencia de creación; desempata fechas iguales
	CreatedAt         time.Time
}

// UnitCost devuelve el costo unitario del lote (0 si la cantidad comprada es 0).
func (b *StockBatch) UnitCost() decimal.Decimal {
	if b.QuantityPurchased.IsZero() {
		return decimal.Zero
	}
	return b.AmountPaid.Div(b.QuantityPurchased)
}
