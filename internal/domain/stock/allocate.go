package stock

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// PlanEntry indica cuánto consumir de un lote concreto.
type PlanEntry struct {
	Batch    *entity.StockBatch
	Quantity decimal.Decimal
}

// Plan es el resultado del motor de asignación: la lista ordenada de
// (lote, cantidad) a debitar más la cantidad que no se pudo cubrir.
type Plan struct {
	Entries []PlanEntry
	Unmet   decimal.Decimal
}

// Consumed devuelve la cantidad total cubierta por el plan.
func (p *Plan) Consumed() decimal.Decimal {
	total := decimal.Zero
	for _, e := range p.Entries {
		total = total.Add(e.Quantity)
	}
	return total
}

// Allocate selecciona lotes a debitar para cubrir quantity con política FIFO
// voraz: recorre los lotes del más antiguo al más reciente y consume
// min(restante, faltante) de cada uno hasta cubrir la cantidad o agotar lotes.
//
// Es puro: no modifica el Ledger ni persiste nada; el caller registra las
// entradas del plan como consumos del pedido, y es ese registro lo que hace
// que Remaining refleje el débito en lecturas posteriores.
//
// Contrato: si Available() ≥ quantity, el plan cubre exactamente quantity y
// Unmet es 0; si no, el plan agota todos los lotes y Unmet es
// quantity − Available().
func (l *Ledger) Allocate(quantity decimal.Decimal) (*Plan, error) {
	if l.product != nil && l.product.MadeToOrder {
		return nil, domain.ErrProductNotEligible
	}
	if !quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}

	plan := &Plan{}
	needed := quantity
	for _, b := range l.batches {
		if !needed.IsPositive() {
			break
		}
		rem := l.Remaining(b.ID)
		if !rem.IsPositive() {
			continue
		}
		take := decimal.Min(rem, needed)
		plan.Entries = append(plan.Entries, PlanEntry{Batch: b, Quantity: take})
		needed = needed.Sub(take)
	}
	plan.Unmet = needed
	return plan, nil
}
