package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.PendingStockRepository = (*PendingStockRepo)(nil)

// PendingStockRepo implementación de PendingStockRepository (usable con pool o tx).
type PendingStockRepo struct {
	q Querier
}

// NewPendingStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPendingStockRepository(q Querier) *PendingStockRepo {
	return &PendingStockRepo{q: q}
}

const pendingColumns = `id, product_id, order_id, quantity_to_be_purchased, date, seq, fulfilled_by_id, created_at, updated_at`

// Create persiste el backorder; la constraint única sobre order_id garantiza
// que haya exactamente uno por pedido.
func (r *PendingStockRepo) Create(p *entity.PendingStock) error {
	query := `
		INSERT INTO pending_stocks (id, product_id, order_id, quantity_to_be_purchased, date, fulfilled_by_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING seq`
	err := r.q.QueryRow(context.Background(), query,
		p.ID, p.ProductID, p.OrderID, p.QuantityToBePurchased, p.Date,
		p.FulfilledByID, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.Seq)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert pending stock: %w", err)
	}
	return nil
}

// GetByOrder obtiene el backorder de un pedido (nil si no tiene).
func (r *PendingStockRepo) GetByOrder(orderID string) (*entity.PendingStock, error) {
	query := `SELECT ` + pendingColumns + ` FROM pending_stocks WHERE order_id = $1`
	var p entity.PendingStock
	err := r.q.QueryRow(context.Background(), query, orderID).Scan(
		&p.ID, &p.ProductID, &p.OrderID, &p.QuantityToBePurchased, &p.Date,
		&p.Seq, &p.FulfilledByID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pending stock: %w", err)
	}
	return &p, nil
}

// ListUnresolvedByProduct devuelve los backorders sin resolver del producto
// en orden FIFO (fecha asc, seq asc).
func (r *PendingStockRepo) ListUnresolvedByProduct(productID string) ([]*entity.PendingStock, error) {
	query := `
		SELECT ` + pendingColumns + ` FROM pending_stocks
		WHERE product_id = $1 AND fulfilled_by_id IS NULL
		ORDER BY date, seq`
	return r.list(query, productID)
}

// ListByProduct devuelve todos los backorders del producto, resueltos o no.
func (r *PendingStockRepo) ListByProduct(productID string) ([]*entity.PendingStock, error) {
	query := `
		SELECT ` + pendingColumns + ` FROM pending_stocks
		WHERE product_id = $1 ORDER BY date, seq`
	return r.list(query, productID)
}

func (r *PendingStockRepo) list(query string, args ...any) ([]*entity.PendingStock, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pending stocks: %w", err)
	}
	defer rows.Close()
	var list []*entity.PendingStock
	for rows.Next() {
		var p entity.PendingStock
		if err := rows.Scan(
			&p.ID, &p.ProductID, &p.OrderID, &p.QuantityToBePurchased, &p.Date,
			&p.Seq, &p.FulfilledByID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan pending stock: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza un backorder (decremento o resolución).
func (r *PendingStockRepo) Update(p *entity.PendingStock) error {
	query := `
		UPDATE pending_stocks SET quantity_to_be_purchased = $2, fulfilled_by_id = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.QuantityToBePurchased, p.FulfilledByID, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update pending stock: %w", err)
	}
	return nil
}

// DeleteByOrder elimina el backorder de un pedido.
func (r *PendingStockRepo) DeleteByOrder(orderID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM pending_stocks WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("delete pending stock: %w", err)
	}
	return nil
}
