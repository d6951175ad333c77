package stocking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/jhoicas/Pedidos-api/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// StockingUseCase registra compras de inventario y expone las consultas
// derivadas del libro de lotes (disponible, backorder pendiente, lotes).
type StockingUseCase struct {
	txRunner        TxRunner
	productRepo     repository.ProductRepository
	batchRepo       repository.StockBatchRepository
	consumptionRepo repository.ConsumptionRepository
	pendingRepo     repository.PendingStockRepository
}

// NewStockingUseCase construye el caso de uso.
func NewStockingUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	batchRepo repository.StockBatchRepository,
	consumptionRepo repository.ConsumptionRepository,
	pendingRepo repository.PendingStockRepository,
) *StockingUseCase {
	return &StockingUseCase{
		txRunner:        txRunner,
		productRepo:     productRepo,
		batchRepo:       batchRepo,
		consumptionRepo: consumptionRepo,
		pendingRepo:     pendingRepo,
	}
}

// ReceiveStock registra una compra: crea el lote y reconcilia los backorders
// del producto en la misma transacción. Cada aplicación de la reconciliación
// se materializa como un consumo del pedido asociado sobre el lote nuevo, de
// modo que la cantidad restante derivada ya la refleja.
func (uc *StockingUseCase) ReceiveStock(ctx context.Context, in dto.ReceiveStockRequest) (*dto.ReceiveStockResponse, error) {
	if in.QuantityPurchased.IsNegative() {
		return nil, domain.ErrInvalidQuantity
	}
	if in.ManuallyConsumed.IsNegative() || in.ManuallyConsumed.GreaterThan(in.QuantityPurchased) {
		return nil, domain.ErrInvalidQuantity
	}
	if in.AmountPaid.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.MadeToOrder {
		return nil, domain.ErrProductNotEligible
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}

	var out *dto.ReceiveStockResponse
	err = uc.txRunner.Run(ctx, func(
		_ repository.OrderRepository,
		batchRepo repository.StockBatchRepository,
		consumptionRepo repository.ConsumptionRepository,
		pendingRepo repository.PendingStockRepository,
	) error {
		batch := &entity.StockBatch{
			ID:                uuid.New().String(),
			ProductID:         in.ProductID,
			AmountPaid:        in.AmountPaid,
			QuantityPurchased: in.QuantityPurchased,
			ManuallyConsumed:  in.ManuallyConsumed,
			Date:              date,
			CreatedAt:         now,
		}
		if err := batchRepo.Create(batch); err != nil {
			return err
		}

		pending, err := pendingRepo.ListUnresolvedByProduct(in.ProductID)
		if err != nil {
			return err
		}
		capacity := in.QuantityPurchased.Sub(in.ManuallyConsumed)
		fulfillments := stock.Reconcile(capacity, pending)

		applied := decimal.Zero
		reconciled := make([]dto.ReconciledPendingItem, 0, len(fulfillments))
		for _, f := range fulfillments {
			c := &entity.Consumption{
				ID:        uuid.New().String(),
				OrderID:   f.Pending.OrderID,
				BatchID:   batch.ID,
				Quantity:  f.Quantity,
				CreatedAt: now,
			}
			if err := consumptionRepo.Create(c); err != nil {
				return err
			}
			if f.Resolved {
				f.Pending.FulfilledByID = &batch.ID
			} else {
				f.Pending.QuantityToBePurchased = f.Pending.QuantityToBePurchased.Sub(f.Quantity)
			}
			f.Pending.UpdatedAt = now
			if err := pendingRepo.Update(f.Pending); err != nil {
				return err
			}
			applied = applied.Add(f.Quantity)

			remaining := decimal.Zero
			if !f.Resolved {
				remaining = f.Pending.QuantityToBePurchased
			}
			reconciled = append(reconciled, dto.ReconciledPendingItem{
				OrderID:   f.Pending.OrderID,
				Quantity:  f.Quantity,
				Resolved:  f.Resolved,
				Remaining: remaining,
			})
		}

		out = &dto.ReceiveStockResponse{
			Batch:      toBatchResponse(batch, capacity.Sub(applied)),
			Reconciled: reconciled,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AvailableStock devuelve el disponible de un producto: Σ cantidad restante
// derivada sobre sus lotes.
func (uc *StockingUseCase) AvailableStock(productID string) (*dto.AvailableStockResponse, error) {
	ledger, err := uc.loadLedger(productID)
	if err != nil {
		return nil, err
	}
	return &dto.AvailableStockResponse{
		ProductID: productID,
		Available: ledger.Available(),
	}, nil
}

// OutstandingBackorder devuelve los backorders sin resolver del producto y
// su total por comprar.
func (uc *StockingUseCase) OutstandingBackorder(productID string) (*dto.OutstandingStockResponse, error) {
	if _, err := uc.requireProduct(productID); err != nil {
		return nil, err
	}
	pending, err := uc.pendingRepo.ListUnresolvedByProduct(productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PendingStockResponse, 0, len(pending))
	for _, p := range pending {
		items = append(items, dto.PendingStockResponse{
			OrderID:               p.OrderID,
			QuantityToBePurchased: p.QuantityToBePurchased,
			Date:                  p.Date,
		})
	}
	return &dto.OutstandingStockResponse{
		ProductID:   productID,
		Outstanding: stock.Outstanding(pending),
		Items:       items,
	}, nil
}

// ListBatches lista los lotes del producto en orden FIFO con su cantidad
// restante derivada.
func (uc *StockingUseCase) ListBatches(productID string) ([]dto.StockBatchResponse, error) {
	ledger, err := uc.loadLedger(productID)
	if err != nil {
		return nil, err
	}
	batches := ledger.Batches()
	items := make([]dto.StockBatchResponse, 0, len(batches))
	for _, b := range batches {
		items = append(items, toBatchResponse(b, ledger.Remaining(b.ID)))
	}
	return items, nil
}

func (uc *StockingUseCase) requireProduct(productID string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func (uc *StockingUseCase) loadLedger(productID string) (*stock.Ledger, error) {
	product, err := uc.requireProduct(productID)
	if err != nil {
		return nil, err
	}
	batches, err := uc.batchRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	consumptions, err := uc.consumptionRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	pending, err := uc.pendingRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	return stock.NewLedger(product, batches, consumptions, pending), nil
}

func toBatchResponse(b *entity.StockBatch, remaining decimal.Decimal) dto.StockBatchResponse {
	return dto.StockBatchResponse{
		ID:                b.ID,
		ProductID:         b.ProductID,
		AmountPaid:        b.AmountPaid,
		QuantityPurchased: b.QuantityPurchased,
		ManuallyConsumed:  b.ManuallyConsumed,
		Remaining:         remaining,
		UnitCost:          b.UnitCost(),
		Date:              b.Date,
		CreatedAt:         b.CreatedAt,
	}
}
