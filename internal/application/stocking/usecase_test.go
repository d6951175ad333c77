package stocking_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/stocking"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products     map[string]*entity.Product
	batches      []*entity.StockBatch
	consumptions []*entity.Consumption
	pendings     map[string]*entity.PendingStock // por OrderID
	seq          int64
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[string]*entity.Product),
		pendings: make(map[string]*entity.PendingStock),
	}
}

func (s *memStore) nextSeq() int64 {
	s.seq++
	return s.seq
}

type memProductRepo struct{ s *memStore }

func (r memProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r memProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r memProductRepo) Update(p *entity.Product) error                    { r.s.products[p.ID] = p; return nil }
func (r memProductRepo) Delete(id string) error                            { delete(r.s.products, id); return nil }

type memBatchRepo struct{ s *memStore }

func (r memBatchRepo) Create(b *entity.StockBatch) error {
	b.Seq = r.s.nextSeq()
	r.s.batches = append(r.s.batches, b)
	return nil
}
func (r memBatchRepo) GetByID(id string) (*entity.StockBatch, error) {
	for _, b := range r.s.batches {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}
func (r memBatchRepo) ListByProduct(productID string) ([]*entity.StockBatch, error) {
	var out []*entity.StockBatch
	for _, b := range r.s.batches {
		if b.ProductID == productID {
			out = append(out, b)
		}
	}
	return out, nil
}
func (r memBatchRepo) Delete(id string) error { return nil }

type memConsumptionRepo struct{ s *memStore }

func (r memConsumptionRepo) Create(c *entity.Consumption) error {
	r.s.consumptions = append(r.s.consumptions, c)
	return nil
}
func (r memConsumptionRepo) ListByProduct(productID string) ([]*entity.Consumption, error) {
	ids := make(map[string]bool)
	for _, b := range r.s.batches {
		if b.ProductID == productID {
			ids[b.ID] = true
		}
	}
	var out []*entity.Consumption
	for _, c := range r.s.consumptions {
		if ids[c.BatchID] {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r memConsumptionRepo) DeleteByOrder(orderID string) error { return nil }

type memPendingRepo struct{ s *memStore }

func (r memPendingRepo) Create(p *entity.PendingStock) error {
	p.Seq = r.s.nextSeq()
	r.s.pendings[p.OrderID] = p
	return nil
}
func (r memPendingRepo) GetByOrder(orderID string) (*entity.PendingStock, error) {
	return r.s.pendings[orderID], nil
}
func (r memPendingRepo) ListUnresolvedByProduct(productID string) ([]*entity.PendingStock, error) {
	all, _ := r.ListByProduct(productID)
	var out []*entity.PendingStock
	for _, p := range all {
		if !p.Resolved() {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r memPendingRepo) ListByProduct(productID string) ([]*entity.PendingStock, error) {
	var out []*entity.PendingStock
	for _, p := range r.s.pendings {
		if p.ProductID == productID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].Seq < out[j].Seq
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}
func (r memPendingRepo) Update(p *entity.PendingStock) error {
	r.s.pendings[p.OrderID] = p
	return nil
}
func (r memPendingRepo) DeleteByOrder(orderID string) error {
	delete(r.s.pendings, orderID)
	return nil
}

type memOrderRepo struct{ s *memStore }

func (r memOrderRepo) Create(o *entity.Order) error                 { return nil }
func (r memOrderRepo) GetByID(id string) (*entity.Order, error)     { return nil, nil }
func (r memOrderRepo) List(limit, offset int) ([]*entity.Order, error) { return nil, nil }
func (r memOrderRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Order, error) {
	return nil, nil
}
func (r memOrderRepo) ListByProductAndDateRange(productID string, from, to time.Time) ([]*entity.Order, error) {
	return nil, nil
}
func (r memOrderRepo) Update(o *entity.Order) error { return nil }
func (r memOrderRepo) Delete(id string) error       { return nil }
func (r memOrderRepo) MaxOrderNumber() (int, error) { return 0, nil }

type memTxRunner struct{ s *memStore }

func (t memTxRunner) Run(ctx context.Context, fn func(
	repository.OrderRepository,
	repository.StockBatchRepository,
	repository.ConsumptionRepository,
	repository.PendingStockRepository,
) error) error {
	return fn(memOrderRepo{t.s}, memBatchRepo{t.s}, memConsumptionRepo{t.s}, memPendingRepo{t.s})
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var testDay = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func newFixture(t *testing.T) (*memStore, *stocking.StockingUseCase, *entity.Product) {
	t.Helper()
	s := newMemStore()
	product := &entity.Product{
		ID:         uuid.New().String(),
		Name:       "Mangos",
		Icon:       "🥭",
		Unit:       entity.UnitDozen,
		StepAmount: decimal.NewFromInt(1),
	}
	s.products[product.ID] = product

	uc := stocking.NewStockingUseCase(
		memTxRunner{s},
		memProductRepo{s},
		memBatchRepo{s},
		memConsumptionRepo{s},
		memPendingRepo{s},
	)
	return s, uc, product
}

func seedPending(s *memStore, productID, qty string, date time.Time) *entity.PendingStock {
	p := &entity.PendingStock{
		ID:                    uuid.New().String(),
		ProductID:             productID,
		OrderID:               uuid.New().String(),
		QuantityToBePurchased: dec(qty),
		Date:                  date,
		Seq:                   s.nextSeq(),
	}
	s.pendings[p.OrderID] = p
	return p
}

func receiveReq(productID, paid, purchased string) dto.ReceiveStockRequest {
	return dto.ReceiveStockRequest{
		ProductID:         productID,
		AmountPaid:        dec(paid),
		QuantityPurchased: dec(purchased),
		Date:              testDay,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ReceiveStock
// ──────────────────────────────────────────────────────────────────────────────

func TestReceiveStock_CreaLote(t *testing.T) {
	s, uc, product := newFixture(t)

	resp, err := uc.ReceiveStock(context.Background(), receiveReq(product.ID, "1000", "10"))
	require.NoError(t, err)

	require.Len(t, s.batches, 1)
	assert.True(t, resp.Batch.UnitCost.Equal(dec("100")))
	assert.True(t, resp.Batch.Remaining.Equal(dec("10")))
	assert.Empty(t, resp.Reconciled, "sin backorders no hay nada que reconciliar")
}

func TestReceiveStock_ConsumoManualReduceDisponible(t *testing.T) {
	_, uc, product := newFixture(t)

	req := receiveReq(product.ID, "1000", "10")
	req.ManuallyConsumed = dec("4")
	resp, err := uc.ReceiveStock(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.Batch.Remaining.Equal(dec("6")))

	available, err := uc.AvailableStock(product.ID)
	require.NoError(t, err)
	assert.True(t, available.Available.Equal(dec("6")))
}

func TestReceiveStock_ReconciliacionParcial(t *testing.T) {
	s, uc, product := newFixture(t)
	pending := seedPending(s, product.ID, "5", testDay)

	resp, err := uc.ReceiveStock(context.Background(), receiveReq(product.ID, "300", "3"))
	require.NoError(t, err)

	require.Len(t, resp.Reconciled, 1)
	item := resp.Reconciled[0]
	assert.Equal(t, pending.OrderID, item.OrderID)
	assert.True(t, item.Quantity.Equal(dec("3")), "el lote entero se aplica al faltante")
	assert.False(t, item.Resolved)
	assert.True(t, item.Remaining.Equal(dec("2")))

	assert.True(t, resp.Batch.Remaining.IsZero(), "el lote queda agotado")
	assert.True(t, pending.QuantityToBePurchased.Equal(dec("2")))
	assert.False(t, pending.Resolved())

	// La aplicación queda materializada como consumo del pedido.
	require.Len(t, s.consumptions, 1)
	assert.Equal(t, pending.OrderID, s.consumptions[0].OrderID)
	assert.True(t, s.consumptions[0].Quantity.Equal(dec("3")))
}

func TestReceiveStock_ResuelveBackorder(t *testing.T) {
	s, uc, product := newFixture(t)
	pending := seedPending(s, product.ID, "5", testDay)

	_, err := uc.ReceiveStock(context.Background(), receiveReq(product.ID, "300", "3"))
	require.NoError(t, err)
	resp, err := uc.ReceiveStock(context.Background(), receiveReq(product.ID, "220", "2"))
	require.NoError(t, err)

	require.Len(t, resp.Reconciled, 1)
	assert.True(t, resp.Reconciled[0].Resolved)
	assert.True(t, resp.Reconciled[0].Remaining.IsZero())

	require.True(t, pending.Resolved())
	assert.Equal(t, s.batches[1].ID, *pending.FulfilledByID, "queda cubierto por el segundo lote")

	outstanding, err := uc.OutstandingBackorder(product.ID)
	require.NoError(t, err)
	assert.True(t, outstanding.Outstanding.IsZero())
}

func TestReceiveStock_FIFOEntreBackorders(t *testing.T) {
	s, uc, product := newFixture(t)
	oldest := seedPending(s, product.ID, "4", testDay)
	newest := seedPending(s, product.ID, "6", testDay.AddDate(0, 0, 1))

	resp, err := uc.ReceiveStock(context.Background(), receiveReq(product.ID, "700", "7"))
	require.NoError(t, err)

	require.Len(t, resp.Reconciled, 2)
	assert.Equal(t, oldest.OrderID, resp.Reconciled[0].OrderID, "primero el faltante más antiguo")
	assert.True(t, resp.Reconciled[0].Resolved)
	assert.Equal(t, newest.OrderID, resp.Reconciled[1].OrderID)
	assert.False(t, resp.Reconciled[1].Resolved)
	assert.True(t, resp.Reconciled[1].Remaining.Equal(dec("3")))

	assert.True(t, oldest.Resolved())
	assert.False(t, newest.Resolved())
	assert.True(t, newest.QuantityToBePurchased.Equal(dec("3")))
}

func TestReceiveStock_Validaciones(t *testing.T) {
	s, uc, product := newFixture(t)
	ctx := context.Background()

	t.Run("cantidad comprada negativa", func(t *testing.T) {
		_, err := uc.ReceiveStock(ctx, receiveReq(product.ID, "100", "-1"))
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})

	t.Run("consumo manual mayor que lo comprado", func(t *testing.T) {
		req := receiveReq(product.ID, "100", "5")
		req.ManuallyConsumed = dec("6")
		_, err := uc.ReceiveStock(ctx, req)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})

	t.Run("producto inexistente", func(t *testing.T) {
		_, err := uc.ReceiveStock(ctx, receiveReq(uuid.New().String(), "100", "5"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("producto por encargo", func(t *testing.T) {
		encargo := &entity.Product{ID: uuid.New().String(), Name: "Torta", Unit: entity.UnitPiece, MadeToOrder: true}
		s.products[encargo.ID] = encargo
		_, err := uc.ReceiveStock(ctx, receiveReq(encargo.ID, "100", "5"))
		assert.ErrorIs(t, err, domain.ErrProductNotEligible)
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestListBatches_OrdenFIFOYRestanteDerivado(t *testing.T) {
	s, uc, product := newFixture(t)
	seedPending(s, product.ID, "3", testDay.AddDate(0, 0, -5))

	// El primer lote llega después pero con fecha anterior al segundo.
	_, err := uc.ReceiveStock(context.Background(), receiveReq(product.ID, "1000", "10"))
	require.NoError(t, err)
	later := receiveReq(product.ID, "600", "5")
	later.Date = testDay.AddDate(0, 0, 2)
	_, err = uc.ReceiveStock(context.Background(), later)
	require.NoError(t, err)

	items, err := uc.ListBatches(product.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].Date.Before(items[1].Date))
	assert.True(t, items[0].Remaining.Equal(dec("7")), "el backorder reconciliado descuenta del primer lote")
	assert.True(t, items[1].Remaining.Equal(dec("5")))

	available, err := uc.AvailableStock(product.ID)
	require.NoError(t, err)
	assert.True(t, available.Available.Equal(dec("12")))
}
