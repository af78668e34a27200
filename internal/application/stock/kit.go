package stock

import (
	"context"
	"fmt"

	"github.com/tu-usuario/tienda-pro/internal/domain"
	"github.com/tu-usuario/tienda-pro/internal/domain/repository"
)

// KitStockUseCase recalcula el stock derivado de los kits. Normalmente lo disparan el
// ledger y los batches después de cada movimiento exitoso; la operación pública queda
// expuesta para herramientas de mantenimiento/reparación.
type KitStockUseCase struct {
	txRunner TxRunner
}

// NewKitStockUseCase construye el caso de uso.
func NewKitStockUseCase(txRunner TxRunner) *KitStockUseCase {
	return &KitStockUseCase{txRunner: txRunner}
}

// Recalculate recalcula el stock de los kits dados en su propia transacción.
func (uc *KitStockUseCase) Recalculate(ctx context.Context, kitIDs []string) error {
	if len(kitIDs) == 0 {
		return nil
	}
	return uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		kitRepo repository.KitComponentRepository,
	) error {
		return recalculateKits(productRepo, kitRepo, kitIDs)
	})
}

// recalculateKits recalcula y persiste el stock derivado de cada kit:
// min(floor(stock_componente / cantidad_por_kit)) sobre sus aristas, 0 si no tiene
// componentes, nunca negativo. Idempotente: sin cambios de componentes, el resultado
// es el mismo. No recurre en kits anidados dentro de otros kits.
func recalculateKits(
	productRepo repository.ProductRepository,
	kitRepo repository.KitComponentRepository,
	kitIDs []string,
) error {
	for _, kitID := range kitIDs {
		edges, err := kitRepo.ListByKit(kitID)
		if err != nil {
			return err
		}
		if len(edges) == 0 {
			if err := productRepo.SetStock(kitID, 0); err != nil {
				return err
			}
			continue
		}

		componentIDs := make([]string, 0, len(edges))
		for _, e := range edges {
			componentIDs = append(componentIDs, e.ComponentID)
		}
		components, err := productRepo.GetByIDs(componentIDs)
		if err != nil {
			return err
		}

		derived := int64(-1)
		for _, e := range edges {
			if e.Quantity <= 0 {
				// Arista malformada: no debería existir, se ignora.
				continue
			}
			comp, ok := components[e.ComponentID]
			if !ok || comp == nil {
				// Un stock de kit desactualizado es peor que fallar ruidosamente.
				return fmt.Errorf("kit %s: componente %s: %w", kitID, e.ComponentID, domain.ErrNotFound)
			}
			can := comp.Stock / e.Quantity
			if derived < 0 || can < derived {
				derived = can
			}
		}
		if derived < 0 {
			derived = 0
		}
		if err := productRepo.SetStock(kitID, derived); err != nil {
			return err
		}
	}
	return nil
}

// recalculateContaining busca los kits que listan cualquiera de los productos tocados
// como componente y los recalcula una sola vez cada uno (deduplicado por el repositorio).
func recalculateContaining(
	productRepo repository.ProductRepository,
	kitRepo repository.KitComponentRepository,
	touched map[string]struct{},
) error {
	if len(touched) == 0 {
		return nil
	}
	ids := make([]string, 0, len(touched))
	for id := range touched {
		ids = append(ids, id)
	}
	kitIDs, err := kitRepo.ListKitsContaining(ids)
	if err != nil {
		return err
	}
	return recalculateKits(productRepo, kitRepo, kitIDs)
}
