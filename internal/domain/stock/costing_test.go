package stock_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/stock"
)

func newOrder(id string, amountPaid float64, date time.Time, consumptions ...*entity.Consumption) *entity.Order {
	return &entity.Order{
		ID:            id,
		ProductID:     "prod-mangoes",
		PaymentMethod: entity.PaymentCash,
		Quantity:      decimal.NewFromInt(1),
		AmountPaid:    decimal.NewFromFloat(amountPaid),
		Date:          date,
		PaymentStatus: entity.StatusCompleted,
		Consumptions:  consumptions,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Costo y ganancia por pedido
// ──────────────────────────────────────────────────────────────────────────────

func TestTotalCost_EscenarioMangoes(t *testing.T) {
	// Lote A: 1000 por 10 (costo 100); lote B: 1320 por 12 (costo 110).
	batchIdx := stock.BatchIndex([]*entity.StockBatch{
		newBatch("a", 1000, 10, testDay, 1),
		newBatch("b", 1320, 12, testDay.AddDate(0, 0, 3), 2),
	})
	order := newOrder("o1", 2000, testDay,
		newConsumption("o1", "a", 10),
		newConsumption("o1", "b", 5),
	)

	cost := stock.TotalCost(order, batchIdx)

	assert.True(t, dec(1550).Equal(cost), "10×100 + 5×110 = 1550")
	assert.True(t, dec(450).Equal(stock.Profit(order, batchIdx)))
}

func TestProfit_IdentidadPagadoIgualCostoMasGanancia(t *testing.T) {
	batchIdx := stock.BatchIndex([]*entity.StockBatch{
		newBatch("a", 1000, 3, testDay, 1), // costo unitario con decimal infinito: 333.33...
	})
	order := newOrder("o1", 500, testDay, newConsumption("o1", "a", 2))

	cost := stock.TotalCost(order, batchIdx)
	profit := stock.Profit(order, batchIdx)

	assert.True(t, order.AmountPaid.Equal(cost.Add(profit)),
		"pagado == costo + ganancia, exacto en decimal sin deriva de redondeo")
}

func TestTotalCost_LoteSinCantidadNoDivideEntreCero(t *testing.T) {
	batchIdx := stock.BatchIndex([]*entity.StockBatch{
		newBatch("vacio", 500, 0, testDay, 1),
	})
	order := newOrder("o1", 100, testDay, newConsumption("o1", "vacio", 1))

	assert.True(t, stock.TotalCost(order, batchIdx).IsZero(),
		"costo unitario 0 cuando la cantidad comprada es 0")
}

func TestTotalCost_ConsumoDeLoteDesconocidoAportaCero(t *testing.T) {
	order := newOrder("o1", 100, testDay, newConsumption("o1", "fantasma", 2))

	assert.True(t, stock.TotalCost(order, stock.BatchIndex(nil)).IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Agregado diario
// ──────────────────────────────────────────────────────────────────────────────

func TestDailyAggregate_DiasSinPedidosAparecenEnCero(t *testing.T) {
	day1 := time.Date(2024, 8, 1, 9, 0, 0, 0, time.Local)
	day3 := day1.AddDate(0, 0, 2)
	orders := []*entity.Order{
		newOrder("o1", 300, day1),
		newOrder("o2", 200, day1.Add(5*time.Hour)),
		newOrder("o3", 150, day3),
	}

	points := stock.DailyAggregate(orders, nil, stock.MetricRevenue, day1, day3)

	require.Len(t, points, 3, "rango de 3 días ⇒ 3 puntos")
	assert.True(t, dec(500).Equal(points[0].Total))
	assert.True(t, points[1].Total.IsZero(), "el día 2 aparece con 0, no ausente")
	assert.True(t, dec(150).Equal(points[2].Total))
}

func TestDailyAggregate_MetricaGanancia(t *testing.T) {
	day := time.Date(2024, 8, 1, 12, 0, 0, 0, time.Local)
	batchIdx := stock.BatchIndex([]*entity.StockBatch{
		newBatch("a", 1000, 10, testDay, 1), // costo unitario 100
	})
	orders := []*entity.Order{
		newOrder("o1", 500, day, newConsumption("o1", "a", 3)), // ganancia 200
		newOrder("o2", 250, day, newConsumption("o2", "a", 2)), // ganancia 50
	}

	points := stock.DailyAggregate(orders, batchIdx, stock.MetricProfit, day, day)

	require.Len(t, points, 1)
	assert.True(t, dec(250).Equal(points[0].Total))
}

func TestDailyAggregate_IgnoraPedidosFueraDelRango(t *testing.T) {
	day := time.Date(2024, 8, 10, 0, 0, 0, 0, time.Local)
	orders := []*entity.Order{
		newOrder("dentro", 100, day),
		newOrder("antes", 999, day.AddDate(0, 0, -5)),
		newOrder("despues", 999, day.AddDate(0, 0, 5)),
	}

	points := stock.DailyAggregate(orders, nil, stock.MetricRevenue, day, day)

	require.Len(t, points, 1)
	assert.True(t, dec(100).Equal(points[0].Total))
}

func TestDailyAggregate_RangoInvertidoVacio(t *testing.T) {
	day := time.Date(2024, 8, 10, 0, 0, 0, 0, time.Local)

	points := stock.DailyAggregate(nil, nil, stock.MetricRevenue, day, day.AddDate(0, 0, -1))

	assert.Empty(t, points)
}
