package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	IsKit       bool            `json:"is_kit,omitempty"`
	Attributes  json.RawMessage `json:"attributes,omitempty"`
}

// ProductResponse representación HTTP de un producto. Para kits, stock es el valor derivado.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Stock       int64           `json:"stock"`
	StockOnHold int64           `json:"stock_on_hold"`
	IsKit       bool            `json:"is_kit"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// AddKitComponentRequest body para POST /api/products/:id/components.
type AddKitComponentRequest struct {
	ComponentID string `json:"component_id"`
	Quantity    int64  `json:"quantity"` // unidades por kit (> 0)
}

// KitComponentResponse una arista de la BOM de un kit.
type KitComponentResponse struct {
	ID          string `json:"id"`
	KitID       string `json:"kit_id"`
	ComponentID string `json:"component_id"`
	Quantity    int64  `json:"quantity"`
}
