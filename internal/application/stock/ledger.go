package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pro/internal/domain"
	"github.com/tu-usuario/tienda-pro/internal/domain/entity"
	"github.com/tu-usuario/tienda-pro/internal/domain/repository"
)

// MovementInput entrada para registrar un movimiento en el ledger.
type MovementInput struct {
	ProductID   string
	StoreID     string
	Type        string
	Quantity    int64 // positivo entrada, negativo salida
	Reason      string
	ReferenceID string
	UnitPrice   *decimal.Decimal
	CreatedBy   string
}

// LedgerUseCase registra movimientos individuales en el ledger inmutable y mantiene
// el contador cacheado de stock con incrementos atómicos a nivel de storage.
type LedgerUseCase struct {
	txRunner    TxRunner
	movRepo     repository.InventoryMovementRepository
	productRepo repository.ProductRepository
}

// NewLedgerUseCase construye el caso de uso. movRepo y productRepo son los repositorios
// de nivel superior (pool), usados solo para lecturas de auditoría fuera de transacción.
func NewLedgerUseCase(
	txRunner TxRunner,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, movRepo: movRepo, productRepo: productRepo}
}

// RecordMovement registra un movimiento individual: snapshot del stock previo, delta
// atómico sobre el contador, registro inmutable con PreviousStock/NewStock y recálculo
// de los kits que listan el producto como componente.
//
// No valida no-negatividad del stock resultante: el caller que necesite esa garantía
// debe validar disponibilidad primero (los batches la tienen, ver BatchUseCase).
func (uc *LedgerUseCase) RecordMovement(ctx context.Context, in MovementInput) (*entity.InventoryMovement, error) {
	if !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidMovement
	}
	var mov *entity.InventoryMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		kitRepo repository.KitComponentRepository,
	) error {
		m, err := recordOne(movRepo, productRepo, in, nil, false)
		if err != nil {
			return err
		}
		mov = m
		kitIDs, err := kitRepo.ListKitsContaining([]string{in.ProductID})
		if err != nil {
			return err
		}
		return recalculateKits(productRepo, kitRepo, kitIDs)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// History devuelve el historial de movimientos de un producto (auditoría).
func (uc *LedgerUseCase) History(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movRepo.ListByProduct(productID, from, to, limit, offset)
}

// Reconcile compara el contador cacheado de un producto simple contra la suma del
// ledger. Devuelve ambos valores; difieren solo ante corrupción externa.
func (uc *LedgerUseCase) Reconcile(ctx context.Context, productID string) (cached, ledger int64, err error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return 0, 0, err
	}
	if product == nil {
		return 0, 0, domain.ErrNotFound
	}
	if product.IsKit {
		return 0, 0, fmt.Errorf("producto %s es kit (stock derivado): %w", productID, domain.ErrInvalidInput)
	}
	sum, err := uc.movRepo.SumByProduct(productID)
	if err != nil {
		return 0, 0, err
	}
	return product.Stock, sum, nil
}

// recordOne registra un movimiento usando los repositorios dados (misma transacción del
// caller). running, si no es nil, es el mapa de stock corrido del batch: los snapshots
// PreviousStock/NewStock se toman de ahí para que los movimientos de un mismo batch se
// vean entre sí antes de tocar la BD. guarded aplica el decremento con guarda de
// no-negatividad en storage (modo resiliente).
func recordOne(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	in MovementInput,
	running map[string]int64,
	guarded bool,
) (*entity.InventoryMovement, error) {
	product, err := productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", in.ProductID, domain.ErrNotFound)
	}
	if product.IsKit {
		// El stock de un kit es derivado: los movimientos van contra sus componentes.
		return nil, fmt.Errorf("producto %s es kit: %w", in.ProductID, domain.ErrInvalidMovement)
	}

	previous := product.Stock
	if running != nil {
		if v, ok := running[in.ProductID]; ok {
			previous = v
		}
	}
	newStock := previous + in.Quantity

	// Cantidad cero: no se toca el contador pero sí se deja registro de auditoría.
	if in.Quantity != 0 {
		var persisted int64
		if guarded {
			persisted, err = productRepo.TryAdjustStock(in.ProductID, in.Quantity)
		} else {
			persisted, err = productRepo.AdjustStock(in.ProductID, in.Quantity)
		}
		if err != nil {
			return nil, err
		}
		if running == nil {
			// Sin batch: los snapshots reflejan el valor devuelto por el incremento
			// atómico, que es el orden real de aplicación.
			newStock = persisted
			previous = persisted - in.Quantity
		}
	}
	if running != nil {
		running[in.ProductID] = newStock
	}

	now := time.Now()
	mov := &entity.InventoryMovement{
		ID:            uuid.New().String(),
		ProductID:     in.ProductID,
		StoreID:       in.StoreID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		PreviousStock: previous,
		NewStock:      newStock,
		Reason:        in.Reason,
		ReferenceID:   in.ReferenceID,
		UnitPrice:     in.UnitPrice,
		CreatedBy:     in.CreatedBy,
		CreatedAt:     now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}
