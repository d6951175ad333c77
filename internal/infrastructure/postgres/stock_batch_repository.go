package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.StockBatchRepository = (*StockBatchRepo)(nil)

// StockBatchRepo implementación de StockBatchRepository (usable con pool o tx).
type StockBatchRepo struct {
	q Querier
}

// NewStockBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockBatchRepository(q Querier) *StockBatchRepo {
	return &StockBatchRepo{q: q}
}

// Create persiste el lote; seq lo asigna la columna identity y queda en batch.Seq.
func (r *StockBatchRepo) Create(batch *entity.StockBatch) error {
	query := `
		INSERT INTO stock_batches (id, product_id, amount_paid, quantity_purchased, manually_consumed, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING seq`
	err := r.q.QueryRow(context.Background(), query,
		batch.ID, batch.ProductID, batch.AmountPaid, batch.QuantityPurchased,
		batch.ManuallyConsumed, batch.Date, batch.CreatedAt,
	).Scan(&batch.Seq)
	if err != nil {
		return fmt.Errorf("insert stock batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *StockBatchRepo) GetByID(id string) (*entity.StockBatch, error) {
	query := `
		SELECT id, product_id, amount_paid, quantity_purchased, manually_consumed, date, seq, created_at
		FROM stock_batches WHERE id = $1`
	var b entity.StockBatch
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.ProductID, &b.AmountPaid, &b.QuantityPurchased, &b.ManuallyConsumed,
		&b.Date, &b.Seq, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock batch: %w", err)
	}
	return &b, nil
}

// ListByProduct devuelve los lotes del producto en orden FIFO (fecha asc, seq asc).
func (r *StockBatchRepo) ListByProduct(productID string) ([]*entity.StockBatch, error) {
	query := `
		SELECT id, product_id, amount_paid, quantity_purchased, manually_consumed, date, seq, created_at
		FROM stock_batches WHERE product_id = $1 ORDER BY date, seq`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockBatch
	for rows.Next() {
		var b entity.StockBatch
		if err := rows.Scan(
			&b.ID, &b.ProductID, &b.AmountPaid, &b.QuantityPurchased, &b.ManuallyConsumed,
			&b.Date, &b.Seq, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Delete elimina un lote por ID.
func (r *StockBatchRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock batch: %w", err)
	}
	return nil
}
