package repository

import (
	"time"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order.
// Los métodos que devuelven pedidos cargan también sus registros de consumo.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	// List lista pedidos con los pendientes primero y luego por fecha
	// descendente (el orden de la pantalla de pedidos).
	List(limit, offset int) ([]*entity.Order, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.Order, error)
	// ListByProductAndDateRange devuelve los pedidos del producto con fecha en
	// [from, to], para los reportes diarios.
	ListByProductAndDateRange(productID string, from, to time.Time) ([]*entity.Order, error)
	Update(order *entity.Order) error
	Delete(id string) error
	// MaxOrderNumber devuelve el mayor número de pedido asignado (0 si no hay).
	MaxOrderNumber() (int, error)
}
