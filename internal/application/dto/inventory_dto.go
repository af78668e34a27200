package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements (y líneas de batch).
type RegisterMovementRequest struct {
	ProductID   string           `json:"product_id"`
	StoreID     string           `json:"store_id,omitempty"`
	Type        string           `json:"type"`
	Quantity    int64            `json:"quantity"` // positivo entrada, negativo salida
	Reason      string           `json:"reason,omitempty"`
	ReferenceID string           `json:"reference_id,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
}

// RegisterBatchRequest body para POST /api/inventory/movements/batch.
// Mode: strict (todo-o-nada) o resilient (línea a línea).
type RegisterBatchRequest struct {
	Mode      string                   `json:"mode"`
	Movements []RegisterMovementRequest `json:"movements"`
}

// MovementResponse un registro del ledger.
type MovementResponse struct {
	ID            string           `json:"id"`
	ProductID     string           `json:"product_id"`
	StoreID       string           `json:"store_id,omitempty"`
	Type          string           `json:"type"`
	Quantity      int64            `json:"quantity"`
	PreviousStock int64            `json:"previous_stock"`
	NewStock      int64            `json:"new_stock"`
	Reason        string           `json:"reason,omitempty"`
	ReferenceID   string           `json:"reference_id,omitempty"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
	CreatedBy     string           `json:"created_by,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// FailedMovementResponse línea rechazada en un batch resiliente.
type FailedMovementResponse struct {
	Movement RegisterMovementRequest `json:"movement"`
	Reason   string                  `json:"reason"`
}

// BatchResponse resultado de un batch: success + failed suman las entradas.
type BatchResponse struct {
	Success []MovementResponse       `json:"success"`
	Failed  []FailedMovementResponse `json:"failed"`
}

// AvailabilityRequest body para POST /api/inventory/availability.
type AvailabilityRequest struct {
	Items []AvailabilityItem `json:"items"`
}

// AvailabilityItem cantidad solicitada de un producto.
type AvailabilityItem struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// RecalculateKitsRequest body para POST /api/inventory/kits/recalculate (mantenimiento).
type RecalculateKitsRequest struct {
	KitIDs []string `json:"kit_ids"`
}

// ReconcileResponse contador cacheado vs. suma del ledger de un producto simple.
type ReconcileResponse struct {
	ProductID   string `json:"product_id"`
	CachedStock int64  `json:"cached_stock"`
	LedgerSum   int64  `json:"ledger_sum"`
	Consistent  bool   `json:"consistent"`
}
