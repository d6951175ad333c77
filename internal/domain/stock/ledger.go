// Package stock implementa el núcleo de inventario: el libro de lotes con
// cantidad restante derivada, el motor de asignación FIFO, la reconciliación
// de backorders y el cálculo de costo/ganancia por pedido.
//
// Todo es puro: el Ledger se construye con las colecciones vigentes (lotes,
// consumos, backorders) cargadas dentro de una transacción y nunca muta el
// estado persistido; los casos de uso aplican los planes que devuelve.
package stock

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// Ledger es la vista de inventario de un producto en un instante dado.
// La cantidad restante de cada lote se deriva de los registros de consumo:
//
//	restante = comprado − consumidoManual − Σ consumos de pedidos
//	           − Σ backorders cubiertos por el lote aún sin consumo del pedido
//
// con piso en 0 (nunca negativa).
type Ledger struct {
	product   *entity.Product
	batches   []*entity.StockBatch // fecha asc, Seq asc (orden FIFO)
	batchByID map[string]*entity.StockBatch

	consumedByBatch map[string]decimal.Decimal
	reservedByBatch map[string]decimal.Decimal
}

// NewLedger construye el libro de un producto a partir de las colecciones
// vigentes. Los lotes se ordenan por fecha ascendente y, a igual fecha, por
// secuencia de creación.
func NewLedger(
	product *entity.Product,
	batches []*entity.StockBatch,
	consumptions []*entity.Consumption,
	pending []*entity.PendingStock,
) *Ledger {
	sorted := SortBatches(batches)

	l := &Ledger{
		product:         product,
		batches:         sorted,
		batchByID:       make(map[string]*entity.StockBatch, len(sorted)),
		consumedByBatch: make(map[string]decimal.Decimal),
		reservedByBatch: make(map[string]decimal.Decimal),
	}
	for _, b := range sorted {
		l.batchByID[b.ID] = b
	}

	// lote → pedidos con consumo registrado sobre él
	matched := make(map[string]map[string]bool)
	for _, c := range consumptions {
		l.consumedByBatch[c.BatchID] = l.consumedByBatch[c.BatchID].Add(c.Quantity)
		if matched[c.BatchID] == nil {
			matched[c.BatchID] = make(map[string]bool)
		}
		matched[c.BatchID][c.OrderID] = true
	}

	// Backorders cubiertos por un lote cuyo pedido aún no tiene consumo sobre
	// ese lote: reservan capacidad para no venderla dos veces.
	for _, p := range pending {
		if p.FulfilledByID == nil {
			continue
		}
		batchID := *p.FulfilledByID
		if matched[batchID][p.OrderID] {
			continue
		}
		l.reservedByBatch[batchID] = l.reservedByBatch[batchID].Add(p.QuantityToBePurchased)
	}

	return l
}

// Product devuelve el producto del libro.
func (l *Ledger) Product() *entity.Product { return l.product }

// Batches devuelve los lotes en orden FIFO (fecha asc, secuencia asc).
func (l *Ledger) Batches() []*entity.StockBatch { return l.batches }

// Remaining devuelve la cantidad restante derivada del lote, con piso en 0.
// Es idempotente: sin mutaciones intermedias siempre devuelve lo mismo.
func (l *Ledger) Remaining(batchID string) decimal.Decimal {
	b, ok := l.batchByID[batchID]
	if !ok {
		return decimal.Zero
	}
	rem := b.QuantityPurchased.
		Sub(b.ManuallyConsumed).
		Sub(l.consumedByBatch[batchID]).
		Sub(l.reservedByBatch[batchID])
	if rem.IsNegative() {
		return decimal.Zero
	}
	return rem
}

// Available devuelve el stock disponible del producto: Σ restante sobre todos
// sus lotes.
func (l *Ledger) Available() decimal.Decimal {
	total := decimal.Zero
	for _, b := range l.batches {
		total = total.Add(l.Remaining(b.ID))
	}
	return total
}

// SortBatches devuelve una copia de los lotes ordenada por fecha ascendente,
// desempatando por secuencia de creación (orden de inserción).
func SortBatches(batches []*entity.StockBatch) []*entity.StockBatch {
	sorted := make([]*entity.StockBatch, len(batches))
	copy(sorted, batches)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Seq < sorted[j].Seq
		}
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// BatchIndex construye un índice id → lote.
func BatchIndex(batches []*entity.StockBatch) map[string]*entity.StockBatch {
	idx := make(map[string]*entity.StockBatch, len(batches))
	for _, b := range batches {
		idx[b.ID] = b
	}
	return idx
}
