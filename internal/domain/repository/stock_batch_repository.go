package repository

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// StockBatchRepository define el puerto de persistencia para StockBatch.
type StockBatchRepository interface {
	// Create persiste el lote y completa Seq con la secuencia asignada.
	Create(batch *entity.StockBatch) error
	GetByID(id string) (*entity.StockBatch, error)
	// ListByProduct devuelve los lotes del producto en orden FIFO
	// (fecha ascendente, secuencia ascendente).
	ListByProduct(productID string) ([]*entity.StockBatch, error)
	Delete(id string) error
}

// ConsumptionRepository define el puerto para los registros de consumo
// (pedido, lote, cantidad) de los que se deriva la cantidad restante.
type ConsumptionRepository interface {
	Create(consumption *entity.Consumption) error
	// ListByProduct devuelve todos los consumos sobre lotes del producto.
	ListByProduct(productID string) ([]*entity.Consumption, error)
	DeleteByOrder(orderID string) error
}
