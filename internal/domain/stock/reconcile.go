package stock

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// Fulfillment indica cuánto de la capacidad de un lote recién llegado se
// aplica a un backorder, y si con ello el backorder queda resuelto.
type Fulfillment struct {
	Pending  *entity.PendingStock
	Quantity decimal.Decimal
	Resolved bool
}

// Reconcile calcula cómo un lote recién creado absorbe los backorders sin
// resolver de su producto. capacity es la cantidad restante del lote al
// momento de reconciliar (comprado − consumido manual).
//
// Política FIFO del más antiguo al más reciente (fecha, luego secuencia):
//   - si la capacidad cubre el backorder completo, se resuelve y se continúa
//     con la capacidad reducida;
//   - si no alcanza, se descuenta del backorder toda la capacidad restante,
//     el lote queda agotado y la reconciliación se detiene: el resto del
//     backorder espera un lote futuro, sin partirse en dos registros.
//
// Es puro: devuelve el plan de cumplimiento; el caller registra cada
// aplicación como consumo del pedido asociado y actualiza el backorder
// (decremento o resolución con FulfilledByID). Nunca deja una cantidad
// pendiente negativa.
func Reconcile(capacity decimal.Decimal, pending []*entity.PendingStock) []Fulfillment {
	var fulfillments []Fulfillment

	for _, p := range SortPending(pending) {
		if p.Resolved() {
			continue
		}
		if !capacity.IsPositive() {
			break
		}
		if capacity.GreaterThanOrEqual(p.QuantityToBePurchased) {
			fulfillments = append(fulfillments, Fulfillment{
				Pending:  p,
				Quantity: p.QuantityToBePurchased,
				Resolved: true,
			})
			capacity = capacity.Sub(p.QuantityToBePurchased)
			continue
		}
		// Capacidad insuficiente: consumir el lote entero y detenerse.
		fulfillments = append(fulfillments, Fulfillment{
			Pending:  p,
			Quantity: capacity,
			Resolved: false,
		})
		break
	}

	return fulfillments
}

// Outstanding devuelve el backorder pendiente total: Σ cantidad por comprar
// sobre los registros sin resolver.
func Outstanding(pending []*entity.PendingStock) decimal.Decimal {
	total := decimal.Zero
	for _, p := range pending {
		if p.Resolved() {
			continue
		}
		total = total.Add(p.QuantityToBePurchased)
	}
	return total
}

// SortPending devuelve una copia de los backorders ordenada del más antiguo al
// más reciente (fecha asc, secuencia asc), el mismo desempate que los lotes.
func SortPending(pending []*entity.PendingStock) []*entity.PendingStock {
	sorted := make([]*entity.PendingStock, len(pending))
	copy(sorted, pending)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Seq < sorted[j].Seq
		}
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}
