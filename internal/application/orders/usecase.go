package orders

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

// OrderUseCase registra, edita y elimina pedidos de forma transaccional.
// El registro ejecuta la asignación FIFO y, si el inventario no alcanza,
// crea el backorder del pedido en la misma transacción.
type OrderUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
	batchRepo    repository.StockBatchRepository
	pendingRepo  repository.PendingStockRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
	batchRepo repository.StockBatchRepository,
	pendingRepo repository.PendingStockRepository,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		batchRepo:    batchRepo,
		pendingRepo:  pendingRepo,
	}
}

// PlaceOrder registra un pedido: asigna número consecutivo, ejecuta la
// asignación FIFO sobre los lotes del producto y persiste los consumos; si
// queda cantidad sin cubrir crea el backorder. Todo en una transacción.
//
// Un pedido con AmountPaid en cero queda con pago completado (se considera
// saldado, por ejemplo una muestra gratis). Para productos por encargo no se
// toca el inventario.
func (uc *OrderUseCase) PlaceOrder(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	if in.AmountPaid.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	if in.CustomerID == "" {
		return nil, domain.ErrCustomerRequired
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerRequired
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	paymentStatus := entity.StatusPending
	if in.AmountPaid.IsZero() {
		paymentStatus = entity.StatusCompleted
	}

	var out *dto.OrderResponse
	err = uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		batchRepo repository.StockBatchRepository,
		consumptionRepo repository.ConsumptionRepository,
		pendingRepo repository.PendingStockRepository,
	) error {
		maxNum, err := orderRepo.MaxOrderNumber()
		if err != nil {
			return err
		}
		order := &entity.Order{
			ID:             uuid.New().String(),
			OrderNumber:    maxNum + 1,
			ProductID:      in.ProductID,
			CustomerID:     in.CustomerID,
			PaymentMethod:  in.PaymentMethod,
			Quantity:       in.Quantity,
			AmountPaid:     in.AmountPaid,
			Date:           date,
			PaymentStatus:  paymentStatus,
			DeliveryStatus: entity.StatusPending,
			Notes:          in.Notes,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := orderRepo.Create(order); err != nil {
			return err
		}

		batchByID := map[string]*entity.StockBatch{}
		backordered := decimal.Zero
		if !product.MadeToOrder {
			ledger, err := loadLedger(product, batchRepo, consumptionRepo, pendingRepo)
			if err != nil {
				return err
			}
			batchByID = stock.BatchIndex(ledger.Batches())
			plan, err := ledger.Allocate(in.Quantity)
			if err != nil {
				return err
			}
			for _, e := range plan.Entries {
				c := &entity.Consumption{
					ID:        uuid.New().String(),
					OrderID:   order.ID,
					BatchID:   e.Batch.ID,
					Quantity:  e.Quantity,
					CreatedAt: now,
				}
				if err := consumptionRepo.Create(c); err != nil {
					return err
				}
				order.Consumptions = append(order.Consumptions, c)
			}
			if plan.Unmet.IsPositive() {
				pending := &entity.PendingStock{
					ID:                    uuid.New().String(),
					ProductID:             in.ProductID,
					OrderID:               order.ID,
					QuantityToBePurchased: plan.Unmet,
					Date:                  date,
					CreatedAt:             now,
					UpdatedAt:             now,
				}
				if err := pendingRepo.Create(pending); err != nil {
					return err
				}
				backordered = plan.Unmet
			}
		}
		out = toOrderResponse(order, batchByID, backordered)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// EditOrder actualiza un pedido. Si cambia la cantidad se libera la
// asignación vigente (consumos y backorder) y se vuelve a ejecutar el motor
// FIFO con la nueva cantidad, todo en la misma transacción.
func (uc *OrderUseCase) EditOrder(ctx context.Context, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if in.Quantity != nil && !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	if in.AmountPaid != nil && in.AmountPaid.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentMethod != nil && !entity.ValidPaymentMethod(*in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentStatus != nil && !entity.ValidStatus(*in.PaymentStatus) {
		return nil, domain.ErrInvalidInput
	}
	if in.DeliveryStatus != nil && !entity.ValidStatus(*in.DeliveryStatus) {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.OrderResponse
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		batchRepo repository.StockBatchRepository,
		consumptionRepo repository.ConsumptionRepository,
		pendingRepo repository.PendingStockRepository,
	) error {
		order, err := orderRepo.GetByID(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		product, err := uc.productRepo.GetByID(order.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrDataIntegrity
		}

		if in.PaymentMethod != nil {
			order.PaymentMethod = *in.PaymentMethod
		}
		if in.Date != nil {
			order.Date = *in.Date
		}
		if in.PaymentStatus != nil {
			order.PaymentStatus = *in.PaymentStatus
		}
		if in.DeliveryStatus != nil {
			order.DeliveryStatus = *in.DeliveryStatus
		}
		if in.Notes != nil {
			order.Notes = *in.Notes
		}
		if in.AmountPaid != nil {
			order.AmountPaid = *in.AmountPaid
			if in.AmountPaid.IsZero() {
				order.PaymentStatus = entity.StatusCompleted
			}
		}

		quantityChanged := in.Quantity != nil && !in.Quantity.Equal(order.Quantity)
		if quantityChanged {
			order.Quantity = *in.Quantity
		}

		now := time.Now()
		batchByID := map[string]*entity.StockBatch{}
		backordered := decimal.Zero
		if !product.MadeToOrder {
			if quantityChanged {
				// Libera la asignación vigente antes de recalcular.
				if err := consumptionRepo.DeleteByOrder(order.ID); err != nil {
					return err
				}
				if err := pendingRepo.DeleteByOrder(order.ID); err != nil {
					return err
				}
				order.Consumptions = nil

				ledger, err := loadLedger(product, batchRepo, consumptionRepo, pendingRepo)
				if err != nil {
					return err
				}
				batchByID = stock.BatchIndex(ledger.Batches())
				plan, err := ledger.Allocate(order.Quantity)
				if err != nil {
					return err
				}
				for _, e := range plan.Entries {
					c := &entity.Consumption{
						ID:        uuid.New().String(),
						OrderID:   order.ID,
						BatchID:   e.Batch.ID,
						Quantity:  e.Quantity,
						CreatedAt: now,
					}
					if err := consumptionRepo.Create(c); err != nil {
						return err
					}
					order.Consumptions = append(order.Consumptions, c)
				}
				if plan.Unmet.IsPositive() {
					pending := &entity.PendingStock{
						ID:                    uuid.New().String(),
						ProductID:             order.ProductID,
						OrderID:               order.ID,
						QuantityToBePurchased: plan.Unmet,
						Date:                  order.Date,
						CreatedAt:             now,
						UpdatedAt:             now,
					}
					if err := pendingRepo.Create(pending); err != nil {
						return err
					}
					backordered = plan.Unmet
				}
			} else {
				batches, err := batchRepo.ListByProduct(order.ProductID)
				if err != nil {
					return err
				}
				batchByID = stock.BatchIndex(batches)
				pending, err := pendingRepo.GetByOrder(order.ID)
				if err != nil {
					return err
				}
				if pending != nil && !pending.Resolved() {
					backordered = pending.QuantityToBePurchased
				}
			}
		}

		order.UpdatedAt = now
		if err := orderRepo.Update(order); err != nil {
			return err
		}
		out = toOrderResponse(order, batchByID, backordered)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteOrder elimina un pedido y revierte su huella en el inventario:
// borra sus consumos (los lotes recuperan esa cantidad en la próxima
// lectura derivada) y su backorder si lo tenía.
func (uc *OrderUseCase) DeleteOrder(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.StockBatchRepository,
		consumptionRepo repository.ConsumptionRepository,
		pendingRepo repository.PendingStockRepository,
	) error {
		order, err := orderRepo.GetByID(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if err := consumptionRepo.DeleteByOrder(id); err != nil {
			return err
		}
		if err := pendingRepo.DeleteByOrder(id); err != nil {
			return err
		}
		return orderRepo.Delete(id)
	})
}

// GetByID obtiene un pedido con su costo, ganancia y backorder derivados.
func (uc *OrderUseCase) GetByID(id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return uc.respond(order, nil)
}

// List lista pedidos con los pendientes primero y luego por fecha
// descendente, con paginación.
func (uc *OrderUseCase) List(limit, offset int) (*dto.OrderListResponse, error) {
	list, err := uc.orderRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.respondList(list, limit, offset)
}

// ListByProduct lista los pedidos de un producto, pendientes primero.
func (uc *OrderUseCase) ListByProduct(productID string, limit, offset int) (*dto.OrderListResponse, error) {
	list, err := uc.orderRepo.ListByProduct(productID, limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.respondList(list, limit, offset)
}

func (uc *OrderUseCase) respondList(list []*entity.Order, limit, offset int) (*dto.OrderListResponse, error) {
	// Índice de lotes por producto, compartido entre pedidos del mismo producto.
	indexes := make(map[string]map[string]*entity.StockBatch)
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		resp, err := uc.respond(o, indexes)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *OrderUseCase) respond(order *entity.Order, indexes map[string]map[string]*entity.StockBatch) (*dto.OrderResponse, error) {
	var batchByID map[string]*entity.StockBatch
	if indexes != nil {
		batchByID = indexes[order.ProductID]
	}
	if batchByID == nil {
		batches, err := uc.batchRepo.ListByProduct(order.ProductID)
		if err != nil {
			return nil, err
		}
		batchByID = stock.BatchIndex(batches)
		if indexes != nil {
			indexes[order.ProductID] = batchByID
		}
	}
	backordered := decimal.Zero
	pending, err := uc.pendingRepo.GetByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	if pending != nil && !pending.Resolved() {
		backordered = pending.QuantityToBePurchased
	}
	return toOrderResponse(order, batchByID, backordered), nil
}

// loadLedger construye la vista de inventario del producto con las
// colecciones vigentes dentro de la transacción.
func loadLedger(
	product *entity.Product,
	batchRepo repository.StockBatchRepository,
	consumptionRepo repository.ConsumptionRepository,
	pendingRepo repository.PendingStockRepository,
) (*stock.Ledger, error) {
	batches, err := batchRepo.ListByProduct(product.ID)
	if err != nil {
		return nil, err
	}
	consumptions, err := consumptionRepo.ListByProduct(product.ID)
	if err != nil {
		return nil, err
	}
	pending, err := pendingRepo.ListByProduct(product.ID)
	if err != nil {
		return nil, err
	}
	return stock.NewLedger(product, batches, consumptions, pending), nil
}

func toOrderResponse(o *entity.Order, batchByID map[string]*entity.StockBatch, backordered decimal.Decimal) *dto.OrderResponse {
	consumptions := make([]dto.ConsumptionResponse, 0, len(o.Consumptions))
	for _, c := range o.Consumptions {
		consumptions = append(consumptions, dto.ConsumptionResponse{
			BatchID:  c.BatchID,
			Quantity: c.Quantity,
		})
	}
	return &dto.OrderResponse{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		ProductID:      o.ProductID,
		CustomerID:     o.CustomerID,
		PaymentMethod:  o.PaymentMethod,
		Quantity:       o.Quantity,
		AmountPaid:     o.AmountPaid,
		Date:           o.Date,
		PaymentStatus:  o.PaymentStatus,
		DeliveryStatus: o.DeliveryStatus,
		Notes:          o.Notes,
		Consumptions:   consumptions,
		TotalCost:      stock.TotalCost(o, batchByID),
		Profit:         stock.Profit(o, batchByID),
		Backordered:    backordered,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}
