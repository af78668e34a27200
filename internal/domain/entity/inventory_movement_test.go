package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/tienda-pro/internal/domain/entity"
)

// La enumeración de tipos de movimiento es cerrada: solo los doce tipos conocidos.
func TestValidMovementType(t *testing.T) {
	valid := []string{
		entity.MovementTypeSale,
		entity.MovementTypeCancellation,
		entity.MovementTypeAdjustment,
		entity.MovementTypeMigration,
		entity.MovementTypeReturn,
		entity.MovementTypeDamage,
		entity.MovementTypeLoss,
		entity.MovementTypePromotion,
		entity.MovementTypePurchase,
		entity.MovementTypeInitial,
		entity.MovementTypeRestock,
		entity.MovementTypeInternalUse,
	}
	for _, typ := range valid {
		assert.True(t, entity.ValidMovementType(typ), "tipo %q debe ser válido", typ)
	}

	invalid := []string{"", "VENTA", "venta ", "regalo", "transferencia"}
	for _, typ := range invalid {
		assert.False(t, entity.ValidMovementType(typ), "tipo %q debe ser inválido", typ)
	}
}
