package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.ConsumptionRepository = (*ConsumptionRepo)(nil)

// ConsumptionRepo implementación de ConsumptionRepository (usable con pool o tx).
// Estos registros son la fuente de la cantidad restante derivada de cada lote.
type ConsumptionRepo struct {
	q Querier
}

// NewConsumptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsumptionRepository(q Querier) *ConsumptionRepo {
	return &ConsumptionRepo{q: q}
}

// Create persiste un registro de consumo (pedido, lote, cantidad).
func (r *ConsumptionRepo) Create(c *entity.Consumption) error {
	query := `
		INSERT INTO order_consumptions (id, order_id, batch_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.OrderID, c.BatchID, c.Quantity, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert consumption: %w", err)
	}
	return nil
}

// ListByProduct devuelve todos los consumos sobre lotes del producto.
func (r *ConsumptionRepo) ListByProduct(productID string) ([]*entity.Consumption, error) {
	query := `
		SELECT c.id, c.order_id, c.batch_id, c.quantity, c.created_at
		FROM order_consumptions c
		JOIN stock_batches b ON b.id = c.batch_id
		WHERE b.product_id = $1
		ORDER BY c.created_at, c.id`
	return r.list(query, productID)
}

func (r *ConsumptionRepo) list(query string, args ...any) ([]*entity.Consumption, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list consumptions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Consumption
	for rows.Next() {
		var c entity.Consumption
		if err := rows.Scan(&c.ID, &c.OrderID, &c.BatchID, &c.Quantity, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan consumption: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// DeleteByOrder elimina los consumos de un pedido (liberación de asignación).
func (r *ConsumptionRepo) DeleteByOrder(orderID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM order_consumptions WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("delete consumptions: %w", err)
	}
	return nil
}
