package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest entrada para registrar un pedido.
type CreateOrderRequest struct {
	ProductID     string          `json:"product_id" validate:"required,uuid"`
	CustomerID    string          `json:"customer_id" validate:"required,uuid"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=cash transfer other"`
	Quantity      decimal.Decimal `json:"quantity"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Date          time.Time       `json:"date"`
	Notes         string          `json:"notes" validate:"omitempty,max=1000"`
}

// UpdateOrderRequest entrada para editar un pedido. Un cambio de Quantity
// libera el consumo actual y vuelve a ejecutar la asignación FIFO.
type UpdateOrderRequest struct {
	PaymentMethod  *string          `json:"payment_method" validate:"omitempty,oneof=cash transfer other"`
	Quantity       *decimal.Decimal `json:"quantity"`
	AmountPaid     *decimal.Decimal `json:"amount_paid"`
	Date           *time.Time       `json:"date"`
	PaymentStatus  *string          `json:"payment_status" validate:"omitempty,oneof=pending completed"`
	DeliveryStatus *string          `json:"delivery_status" validate:"omitempty,oneof=pending completed"`
	Notes          *string          `json:"notes" validate:"omitempty,max=1000"`
}

// ConsumptionResponse consumo de un pedido sobre un lote.
type ConsumptionResponse struct {
	BatchID  string          `json:"batch_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// OrderResponse salida de un pedido con sus consumos y costo derivado.
type OrderResponse struct {
	ID             string                `json:"id"`
	OrderNumber    int                   `json:"order_number"`
	ProductID      string                `json:"product_id"`
	CustomerID     string                `json:"customer_id"`
	PaymentMethod  string                `json:"payment_method"`
	Quantity       decimal.Decimal       `json:"quantity"`
	AmountPaid     decimal.Decimal       `json:"amount_paid"`
	Date           time.Time             `json:"date"`
	PaymentStatus  string                `json:"payment_status"`
	DeliveryStatus string                `json:"delivery_status"`
	Notes          string                `json:"notes"`
	Consumptions   []ConsumptionResponse `json:"consumptions"`
	TotalCost      decimal.Decimal       `json:"total_cost"`
	Profit         decimal.Decimal       `json:"profit"`
	Backordered    decimal.Decimal       `json:"backordered"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// OrderListResponse lista paginada de pedidos (pendientes primero).
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
