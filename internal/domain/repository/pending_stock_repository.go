package repository

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// PendingStockRepository define el puerto de persistencia para los
// faltantes de inventario (backorders).
type PendingStockRepository interface {
	Create(pending *entity.PendingStock) error
	GetByOrder(orderID string) (*entity.PendingStock, error)
	// ListUnresolvedByProduct devuelve los faltantes sin resolver del
	// producto en orden FIFO (fecha ascendente, secuencia ascendente).
	ListUnresolvedByProduct(productID string) ([]*entity.PendingStock, error)
	ListByProduct(productID string) ([]*entity.PendingStock, error)
	Update(pending *entity.PendingStock) error
	DeleteByOrder(orderID string) error
}
