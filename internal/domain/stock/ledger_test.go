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

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var testDay = time.Date(2024, 7, 22, 10, 0, 0, 0, time.Local)

func testProduct() *entity.Product {
	return &entity.Product{
		ID:         "prod-mangoes",
		Name:       "Mangoes",
		Icon:       "🥭",
		Unit:       entity.UnitDozen,
		StepAmount: decimal.NewFromInt(1),
	}
}

func newBatch(id string, paid, purchased float64, date time.Time, seq int64) *entity.StockBatch {
	return &entity.StockBatch{
		ID:                id,
		ProductID:         "prod-mangoes",
		AmountPaid:        decimal.NewFromFloat(paid),
		QuantityPurchased: decimal.NewFromFloat(purchased),
		Date:              date,
		Seq:               seq,
	}
}

func newConsumption(orderID, batchID string, qty float64) *entity.Consumption {
	return &entity.Consumption{
		ID:       orderID + "/" + batchID,
		OrderID:  orderID,
		BatchID:  batchID,
		Quantity: decimal.NewFromFloat(qty),
	}
}

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

// ──────────────────────────────────────────────────────────────────────────────
// Cantidad restante derivada
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_RemainingDerivadoDeConsumos(t *testing.T) {
	batch := newBatch("a", 1000, 10, testDay, 1)
	consumptions := []*entity.Consumption{
		newConsumption("o1", "a", 3),
		newConsumption("o2", "a", 2.5),
	}

	l := stock.NewLedger(testProduct(), []*entity.StockBatch{batch}, consumptions, nil)

	assert.True(t, dec(4.5).Equal(l.Remaining("a")),
		"restante = comprado − consumos de pedidos")
}

func TestLedger_RemainingDescuentaConsumoManual(t *testing.T) {
	batch := newBatch("a", 1000, 10, testDay, 1)
	batch.ManuallyConsumed = dec(4)

	l := stock.NewLedger(testProduct(), []*entity.StockBatch{batch},
		[]*entity.Consumption{newConsumption("o1", "a", 3)}, nil)

	assert.True(t, dec(3).Equal(l.Remaining("a")),
		"el consumo manual al crear el lote descuenta igual que los pedidos")
}

func TestLedger_RemainingNuncaNegativo(t *testing.T) {
	batch := newBatch("a", 1000, 10, testDay, 1)
	// Anomalía de datos: más consumido de lo comprado.
	consumptions := []*entity.Consumption{newConsumption("o1", "a", 14)}

	l := stock.NewLedger(testProduct(), []*entity.StockBatch{batch}, consumptions, nil)

	assert.True(t, l.Remaining("a").IsZero(), "el restante tiene piso en 0")
}

func TestLedger_RemainingIdempotente(t *testing.T) {
	batch := newBatch("a", 1000, 10, testDay, 1)
	l := stock.NewLedger(testProduct(), []*entity.StockBatch{batch},
		[]*entity.Consumption{newConsumption("o1", "a", 3)}, nil)

	first := l.Remaining("a")
	second := l.Remaining("a")

	assert.True(t, first.Equal(second),
		"sin mutaciones intermedias, Remaining siempre devuelve lo mismo")
}

func TestLedger_RemainingLoteDesconocido(t *testing.T) {
	l := stock.NewLedger(testProduct(), nil, nil, nil)
	assert.True(t, l.Remaining("no-existe").IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Backorders que reservan capacidad
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_BackorderCubiertoSinConsumoReservaCapacidad(t *testing.T) {
	batch := newBatch("d", 200, 2, testDay, 1)
	fulfilled := "d"
	pending := []*entity.PendingStock{{
		ID:                    "p1",
		ProductID:             "prod-mangoes",
		OrderID:               "o1",
		QuantityToBePurchased: dec(2),
		Date:                  testDay,
		FulfilledByID:         &fulfilled,
	}}

	// El backorder apunta al lote pero el pedido aún no registró consumo sobre
	// él: la capacidad queda reservada.
	l := stock.NewLedger(testProduct(), []*entity.StockBatch{batch}, nil, pending)
	assert.True(t, l.Remaining("d").IsZero())

	// Con el consumo del pedido registrado, la reserva deja de aplicar y el
	// débito queda reflejado solo por el término de consumo.
	l = stock.NewLedger(testProduct(), []*entity.StockBatch{batch},
		[]*entity.Consumption{newConsumption("o1", "d", 2)}, pending)
	assert.True(t, l.Remaining("d").IsZero(),
		"el débito no se cuenta dos veces al quedar registrado el consumo")
}

func TestLedger_BackorderSinResolverNoReserva(t *testing.T) {
	batch := newBatch("a", 1000, 10, testDay, 1)
	pending := []*entity.PendingStock{{
		ID:                    "p1",
		ProductID:             "prod-mangoes",
		OrderID:               "o1",
		QuantityToBePurchased: dec(5),
		Date:                  testDay,
	}}

	l := stock.NewLedger(testProduct(), []*entity.StockBatch{batch}, nil, pending)

	assert.True(t, dec(10).Equal(l.Remaining("a")),
		"un backorder sin FulfilledBy no descuenta de ningún lote")
}

// ──────────────────────────────────────────────────────────────────────────────
// Disponible y orden FIFO
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_AvailableSumaLotes(t *testing.T) {
	batches := []*entity.StockBatch{
		newBatch("a", 1000, 10, testDay, 1),
		newBatch("b", 1320, 12, testDay.AddDate(0, 0, 1), 2),
	}
	consumptions := []*entity.Consumption{newConsumption("o1", "a", 4)}

	l := stock.NewLedger(testProduct(), batches, consumptions, nil)

	assert.True(t, dec(18).Equal(l.Available()))
}

func TestLedger_BatchesOrdenFIFO(t *testing.T) {
	// Se insertan en desorden; a igual fecha decide la secuencia de creación.
	batches := []*entity.StockBatch{
		newBatch("c", 100, 1, testDay.AddDate(0, 0, 2), 3),
		newBatch("b", 100, 1, testDay, 2),
		newBatch("a", 100, 1, testDay, 1),
	}

	l := stock.NewLedger(testProduct(), batches, nil, nil)

	var ids []string
	for _, b := range l.Batches() {
		ids = append(ids, b.ID)
	}
	require.Equal(t, []string{"a", "b", "c"}, ids,
		"fecha ascendente, empates por secuencia de creación")
}
