package stock

import (
	"context"
	"errors"

	"github.com/tu-usuario/tienda-pro/internal/domain"
	"github.com/tu-usuario/tienda-pro/internal/domain/entity"
	"github.com/tu-usuario/tienda-pro/internal/domain/repository"
)

// Modos de aplicación de un batch de movimientos.
const (
	BatchModeStrict    = "strict"    // todo-o-nada: valida primero, ningún movimiento si falta stock
	BatchModeResilient = "resilient" // mejor esfuerzo: cada línea falla o aplica por separado
)

// FailedMovement línea rechazada en modo resiliente, con motivo legible.
type FailedMovement struct {
	Input  MovementInput
	Reason string
}

// BatchResult resultado de un batch: len(Success)+len(Failed) == len(entradas) siempre.
type BatchResult struct {
	Success []*entity.InventoryMovement
	Failed  []FailedMovement
}

// BatchUseCase aplica listas de movimientos en modo estricto o resiliente, manteniendo
// un mapa local de stock corrido para que los movimientos del mismo batch contra un
// mismo producto se vean entre sí antes de tocar storage. Ambos modos cierran
// recalculando una sola vez cada kit afectado.
type BatchUseCase struct {
	txRunner TxRunner
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(txRunner TxRunner) *BatchUseCase {
	return &BatchUseCase{txRunner: txRunner}
}

// RecordBatch aplica el batch en el modo indicado. En modo estricto puede fallar con
// *domain.InsufficientStockError (y entonces no se aplica nada); en modo resiliente
// nunca falla por líneas individuales.
func (uc *BatchUseCase) RecordBatch(ctx context.Context, inputs []MovementInput, mode string) (*BatchResult, error) {
	switch mode {
	case BatchModeStrict:
		return uc.recordStrict(ctx, inputs)
	case BatchModeResilient:
		return uc.recordResilient(ctx, inputs)
	default:
		return nil, domain.ErrInvalidInput
	}
}

func (uc *BatchUseCase) recordStrict(ctx context.Context, inputs []MovementInput) (*BatchResult, error) {
	for _, in := range inputs {
		if !entity.ValidMovementType(in.Type) {
			return nil, domain.ErrInvalidMovement
		}
	}
	result := &BatchResult{}
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		kitRepo repository.KitComponentRepository,
	) error {
		movs, err := applyStrict(movRepo, productRepo, kitRepo, inputs)
		if err != nil {
			return err
		}
		result.Success = movs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// applyStrict valida los decrementos netos del batch y, si pasa, aplica los movimientos
// en orden de envío dentro de la transacción del caller. Reutilizado por el flujo de
// órdenes.
func applyStrict(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	kitRepo repository.KitComponentRepository,
	inputs []MovementInput,
) ([]*entity.InventoryMovement, error) {
	// Decremento neto por producto: varios movimientos contra el mismo producto se
	// suman antes de validar (una solicitud de -5 y -3 con stock 6 debe rechazarse).
	net := make(map[string]int64)
	order := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if _, seen := net[in.ProductID]; !seen {
			order = append(order, in.ProductID)
		}
		net[in.ProductID] += in.Quantity
	}
	var requests []AvailabilityRequest
	for _, id := range order {
		if net[id] < 0 {
			requests = append(requests, AvailabilityRequest{ProductID: id, Quantity: -net[id]})
		}
	}
	if err := validateAvailability(productRepo, kitRepo, requests); err != nil {
		return nil, err
	}

	running := make(map[string]int64)
	touched := make(map[string]struct{})
	movs := make([]*entity.InventoryMovement, 0, len(inputs))
	for _, in := range inputs {
		mov, err := recordOne(movRepo, productRepo, in, running, false)
		if err != nil {
			return nil, err
		}
		movs = append(movs, mov)
		touched[in.ProductID] = struct{}{}
	}
	if err := recalculateContaining(productRepo, kitRepo, touched); err != nil {
		return nil, err
	}
	return movs, nil
}

func (uc *BatchUseCase) recordResilient(ctx context.Context, inputs []MovementInput) (*BatchResult, error) {
	result := &BatchResult{}
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		kitRepo repository.KitComponentRepository,
	) error {
		running := make(map[string]int64)
		touched := make(map[string]struct{})
		for _, in := range inputs {
			mov, err := applyResilientLine(movRepo, productRepo, in, running)
			if err != nil {
				result.Failed = append(result.Failed, FailedMovement{Input: in, Reason: failureReason(err)})
				continue
			}
			result.Success = append(result.Success, mov)
			touched[in.ProductID] = struct{}{}
		}
		return recalculateContaining(productRepo, kitRepo, touched)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// applyResilientLine aplica una línea aislada: un decremento o aplica completo o deja
// el stock intacto (guarda de no-negatividad en storage), nunca parcial.
func applyResilientLine(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	in MovementInput,
	running map[string]int64,
) (*entity.InventoryMovement, error) {
	if !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidMovement
	}
	return recordOne(movRepo, productRepo, in, running, true)
}

// failureReason traduce el error de una línea a un motivo legible para el resultado.
func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "producto no encontrado"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "stock insuficiente para el decremento"
	case errors.Is(err, domain.ErrInvalidMovement):
		return "movimiento inválido"
	default:
		return err.Error()
	}
}
