package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
// Los métodos que devuelven pedidos cargan también sus consumos.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, order_number, product_id, customer_id, payment_method, quantity,
	amount_paid, date, payment_status, delivery_status, notes, created_at, updated_at`

// Create persiste un nuevo pedido.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.OrderNumber, order.ProductID, order.CustomerID, order.PaymentMethod,
		order.Quantity, order.AmountPaid, order.Date, order.PaymentStatus, order.DeliveryStatus,
		order.Notes, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido con sus consumos.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.OrderNumber, &o.ProductID, &o.CustomerID, &o.PaymentMethod,
		&o.Quantity, &o.AmountPaid, &o.Date, &o.PaymentStatus, &o.DeliveryStatus,
		&o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.attachConsumptions([]*entity.Order{&o}); err != nil {
		return nil, err
	}
	return &o, nil
}

// List lista pedidos con los pendientes primero y luego por fecha descendente.
func (r *OrderRepo) List(limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + ` FROM orders
		ORDER BY (payment_status = 'pending' OR delivery_status = 'pending') DESC, date DESC, order_number DESC
		LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListByProduct lista los pedidos de un producto, pendientes primero.
func (r *OrderRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + ` FROM orders WHERE product_id = $1
		ORDER BY (payment_status = 'pending' OR delivery_status = 'pending') DESC, date DESC, order_number DESC
		LIMIT $2 OFFSET $3`
	return r.list(query, productID, limit, offset)
}

// ListByProductAndDateRange devuelve los pedidos del producto con fecha en [from, to].
func (r *OrderRepo) ListByProductAndDateRange(productID string, from, to time.Time) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + ` FROM orders
		WHERE product_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date, order_number`
	return r.list(query, productID, from, to)
}

func (r *OrderRepo) list(query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.ProductID, &o.CustomerID, &o.PaymentMethod,
			&o.Quantity, &o.AmountPaid, &o.Date, &o.PaymentStatus, &o.DeliveryStatus,
			&o.Notes, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachConsumptions(list); err != nil {
		return nil, err
	}
	return list, nil
}

// attachConsumptions carga los consumos de cada pedido en una sola consulta.
func (r *OrderRepo) attachConsumptions(list []*entity.Order) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Order, len(list))
	ids := make([]string, 0, len(list))
	for _, o := range list {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}
	query := `
		SELECT id, order_id, batch_id, quantity, created_at
		FROM order_consumptions WHERE order_id = ANY($1) ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return fmt.Errorf("list order consumptions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c entity.Consumption
		if err := rows.Scan(&c.ID, &c.OrderID, &c.BatchID, &c.Quantity, &c.CreatedAt); err != nil {
			return fmt.Errorf("scan consumption: %w", err)
		}
		if o := byID[c.OrderID]; o != nil {
			o.Consumptions = append(o.Consumptions, &c)
		}
	}
	return rows.Err()
}

// Update actualiza un pedido (no toca sus consumos; eso es del flujo de reasignación).
func (r *OrderRepo) Update(order *entity.Order) error {
	query := `
		UPDATE orders SET payment_method = $2, quantity = $3, amount_paid = $4, date = $5,
			payment_status = $6, delivery_status = $7, notes = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.PaymentMethod, order.Quantity, order.AmountPaid, order.Date,
		order.PaymentStatus, order.DeliveryStatus, order.Notes, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// Delete elimina un pedido por ID.
func (r *OrderRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// MaxOrderNumber devuelve el mayor número de pedido asignado (0 si no hay).
func (r *OrderRepo) MaxOrderNumber() (int, error) {
	var max int
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(MAX(order_number), 0) FROM orders`).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max order number: %w", err)
	}
	return max, nil
}
