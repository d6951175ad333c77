package repository

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	// Search lista clientes cuyo nombre normalizado, teléfono o ciudad
	// contienen q (ya normalizado por el caller); q vacío lista todos.
	Search(q string, limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
	// CountOrders devuelve el número de pedidos en el historial del cliente.
	CountOrders(customerID string) (int, error)
}
