package repository

import (
	"time"

	"github.com/tu-usuario/tienda-pro/internal/domain/entity"
)

// InventoryMovementRepository acceso al ledger de movimientos: solo inserción y lectura.
// Los registros nunca se actualizan ni se borran (correcciones = movimientos compensatorios).
type InventoryMovementRepository interface {
	Create(m *entity.InventoryMovement) error
	GetByID(id string) (*entity.InventoryMovement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error)

	// ListByReference devuelve los movimientos originados por una transacción (ej. una
	// orden), en orden de creación.
	ListByReference(referenceID string) ([]*entity.InventoryMovement, error)

	// SumByProduct suma las cantidades del ledger de un producto. Para productos simples
	// debe coincidir con el contador cacheado (chequeo de reconciliación).
	SumByProduct(productID string) (int64, error)
}
