package stock

import (
	"context"

	"github.com/tu-usuario/tienda-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Es el handle polimórfico del motor: la misma lógica corre igual
// dentro de una transacción del caller o sobre una conexión de nivel superior.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		kitRepo repository.KitComponentRepository,
	) error) error
}

// OrderTxRunner igual que TxRunner pero agrega el repositorio de órdenes, para el
// flujo orden→movimientos (crear, pagar, anular) en una sola transacción.
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		kitRepo repository.KitComponentRepository,
		orderRepo repository.OrderRepository,
	) error) error
}
