package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/orders. Status inicial: creada (pendiente de
// pago, reserva on-hold) o pagada (venta directa).
type CreateOrderRequest struct {
	StoreID string             `json:"store_id,omitempty"`
	Status  string             `json:"status,omitempty"`
	Items   []OrderItemRequest `json:"items"`
}

// OrderItemRequest línea de orden: producto (simple o kit) y cantidad.
type OrderItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderResponse representación HTTP de una orden.
type OrderResponse struct {
	ID        string              `json:"id"`
	StoreID   string              `json:"store_id,omitempty"`
	Status    string              `json:"status"`
	Total     decimal.Decimal     `json:"total"`
	Items     []OrderItemResponse `json:"items"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// OrderItemResponse línea de orden en respuestas.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}
