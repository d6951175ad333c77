package orders

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que asignación, creación del
// pedido y registro del faltante se apliquen como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		batchRepo repository.StockBatchRepository,
		consumptionRepo repository.ConsumptionRepository,
		pendingRepo repository.PendingStockRepository,
	) error) error
}
