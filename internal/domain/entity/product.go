package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto vendible de la tienda.
// Stock es el contador cacheado: la única fuente de verdad de "cuánto se puede vender ahora".
// Para productos kit (IsKit) el stock es derivado de sus componentes por el motor de
// recálculo y nunca se escribe directamente con movimientos.
// StockOnHold es la cantidad reservada por órdenes pendientes de pago.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo promedio
	Stock       int64
	StockOnHold int64
	IsKit       bool
	Attributes  json.RawMessage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
