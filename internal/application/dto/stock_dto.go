package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveStockRequest entrada para registrar una compra de inventario.
type ReceiveStockRequest struct {
	ProductID         string          `json:"product_id" validate:"required,uuid"`
	AmountPaid        decimal.Decimal `json:"amount_paid"`
	QuantityPurchased decimal.Decimal `json:"quantity_purchased"`
	ManuallyConsumed  decimal.Decimal `json:"manually_consumed"`
	Date              time.Time       `json:"date"`
}

// StockBatchResponse salida de un lote con su cantidad restante derivada.
type StockBatchResponse struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	AmountPaid        decimal.Decimal `json:"amount_paid"`
	QuantityPurchased decimal.Decimal `json:"quantity_purchased"`
	ManuallyConsumed  decimal.Decimal `json:"manually_consumed"`
	Remaining         decimal.Decimal `json:"remaining"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	Date              time.Time       `json:"date"`
	CreatedAt         time.Time       `json:"created_at"`
}

// ReceiveStockResponse salida del registro de una compra: el lote creado
// y los faltantes que la reconciliación resolvió o redujo.
type ReceiveStockResponse struct {
	Batch      StockBatchResponse      `json:"batch"`
	Reconciled []ReconciledPendingItem `json:"reconciled"`
}

// ReconciledPendingItem faltante tocado por una reconciliación.
type ReconciledPendingItem struct {
	OrderID   string          `json:"order_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Resolved  bool            `json:"resolved"`
	Remaining decimal.Decimal `json:"remaining"`
}

// AvailableStockResponse total disponible de un producto.
type AvailableStockResponse struct {
	ProductID string          `json:"product_id"`
	Available decimal.Decimal `json:"available"`
}

// PendingStockResponse faltante sin resolver de un producto.
type PendingStockResponse struct {
	OrderID               string          `json:"order_id"`
	QuantityToBePurchased decimal.Decimal `json:"quantity_to_be_purchased"`
	Date                  time.Time       `json:"date"`
}

// OutstandingStockResponse faltantes de un producto con su total.
type OutstandingStockResponse struct {
	ProductID   string                 `json:"product_id"`
	Outstanding decimal.Decimal        `json:"outstanding"`
	Items       []PendingStockResponse `json:"items"`
}
