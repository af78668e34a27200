package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de orden. Las transiciones válidas son creada→pagada y creada→anulada
// (una orden puede nacer directamente pagada).
const (
	OrderStatusCreated   = "creada"
	OrderStatusPaid      = "pagada"
	OrderStatusCancelled = "anulada"
)

// Order es una orden de venta: productor principal de movimientos de inventario.
type Order struct {
	ID        string
	StoreID   string
	Status    string
	Total     decimal.Decimal
	CreatedBy string
	Items     []OrderItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem línea de orden: referencia a un producto (simple o kit) y cantidad.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
}
