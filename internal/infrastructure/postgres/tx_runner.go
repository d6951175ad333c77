package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Pedidos-api/internal/application/orders"
	"github.com/jhoicas/Pedidos-api/internal/application/stocking"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// Ensure TxRunner implements orders.TxRunner and stocking.TxRunner.
var _ orders.TxRunner = (*TxRunner)(nil)
var _ stocking.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Es la unidad atómica de los flujos de pedido (asignación + backorder) y de
// recepción de stock (lote + reconciliación).
func (r *TxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	batchRepo repository.StockBatchRepository,
	consumptionRepo repository.ConsumptionRepository,
	pendingRepo repository.PendingStockRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewOrderRepository(tx)
	batchRepo := NewStockBatchRepository(tx)
	consumptionRepo := NewConsumptionRepository(tx)
	pendingRepo := NewPendingStockRepository(tx)

	if err := fn(orderRepo, batchRepo, consumptionRepo, pendingRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
