package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario (enumeración cerrada).
const (
	MovementTypeSale         = "venta"
	MovementTypeCancellation = "anulacion"
	MovementTypeAdjustment   = "ajuste_manual"
	MovementTypeMigration    = "migracion"
	MovementTypeReturn       = "devolucion"
	MovementTypeDamage       = "dano"
	MovementTypeLoss         = "perdida"
	MovementTypePromotion    = "promocion"
	MovementTypePurchase     = "compra"
	MovementTypeInitial      = "ingreso_inicial"
	MovementTypeRestock      = "recepcion_reposicion"
	MovementTypeInternalUse  = "uso_interno"
)

var movementTypes = map[string]struct{}{
	MovementTypeSale:         {},
	MovementTypeCancellation: {},
	MovementTypeAdjustment:   {},
	MovementTypeMigration:    {},
	MovementTypeReturn:       {},
	MovementTypeDamage:       {},
	MovementTypeLoss:         {},
	MovementTypePromotion:    {},
	MovementTypePurchase:     {},
	MovementTypeInitial:      {},
	MovementTypeRestock:      {},
	MovementTypeInternalUse:  {},
}

// ValidMovementType indica si el tipo pertenece a la enumeración cerrada.
func ValidMovementType(t string) bool {
	_, ok := movementTypes[t]
	return ok
}

// InventoryMovement es un registro inmutable del ledger: un cambio de stock con firma.
// Nunca se actualiza ni se borra; las correcciones se hacen con movimientos compensatorios.
// PreviousStock y NewStock son snapshots de auditoría tomados al crear el registro.
type InventoryMovement struct {
	ID            string
	ProductID     string
	StoreID       string
	Type          string
	Quantity      int64 // positivo = entrada, negativo = salida
	PreviousStock int64
	NewStock      int64
	Reason        string
	ReferenceID   string // transacción de origen, ej. ID de orden
	UnitPrice     *decimal.Decimal
	CreatedBy     string // identidad del actor, si aplica
	CreatedAt     time.Time
}
