package stock

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// Métricas agregables por día.
const (
	MetricRevenue = "revenue"
	MetricProfit  = "profit"
)

// ValidMetric indica si la métrica es una de las soportadas.
func ValidMetric(m string) bool {
	return m == MetricRevenue || m == MetricProfit
}

// DailyPoint es el total de una métrica para un día calendario.
type DailyPoint struct {
	Day   time.Time
	Total decimal.Decimal
}

// TotalCost deriva el costo de los bienes vendidos del pedido:
// Σ costoUnitario(lote) × cantidadConsumida sobre sus registros de consumo.
// Lotes no presentes en el índice aportan 0 (anomalía de datos, no error).
func TotalCost(order *entity.Order, batchByID map[string]*entity.StockBatch) decimal.Decimal {
	total := decimal.Zero
	for _, c := range order.Consumptions {
		b, ok := batchByID[c.BatchID]
		if !ok {
			continue
		}
		total = total.Add(b.UnitCost().Mul(c.Quantity))
	}
	return total
}

// Profit deriva la ganancia del pedido: pagado − costo.
// Siempre se cumple pagado == TotalCost + Profit.
func Profit(order *entity.Order, batchByID map[string]*entity.StockBatch) decimal.Decimal {
	return order.AmountPaid.Sub(TotalCost(order, batchByID))
}

// DailyAggregate agrupa la métrica por día calendario local entre from y to
// (ambos inclusive). Los días sin pedidos aparecen con total 0, no ausentes.
// Pedidos fuera del rango se ignoran. Solo lectura: no muta nada.
func DailyAggregate(
	orders []*entity.Order,
	batchByID map[string]*entity.StockBatch,
	metric string,
	from, to time.Time,
) []DailyPoint {
	loc := from.Location()
	start := startOfDay(from, loc)
	end := startOfDay(to, loc)
	if start.After(end) {
		return []DailyPoint{}
	}

	totals := make(map[time.Time]decimal.Decimal)
	for _, o := range orders {
		day := startOfDay(o.Date.In(loc), loc)
		if day.Before(start) || day.After(end) {
			continue
		}
		var v decimal.Decimal
		switch metric {
		case MetricProfit:
			v = Profit(o, batchByID)
		default:
			v = o.AmountPaid
		}
		totals[day] = totals[day].Add(v)
	}

	var points []DailyPoint
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		points = append(points, DailyPoint{Day: day, Total: totals[day]})
	}
	return points
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
