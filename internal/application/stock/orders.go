package stock

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/tienda-pro/internal/domain"
	"github.com/tu-usuario/tienda-pro/internal/domain/entity"
	"github.com/tu-usuario/tienda-pro/internal/domain/repository"
)

// OrderStockUseCase ata las transiciones de una orden (creada→pagada, creada→anulada)
// a movimientos de inventario y reservas. Capa de orquestación: decide qué tipos y
// cantidades de movimiento enviar según el estado, sin aritmética de stock propia.
//
// Política de reserva: al crear la orden el stock vendible se descuenta UNA sola vez
// (movimientos de venta por componente). Si la orden nace pendiente, esa cantidad se
// refleja además en el contador on-hold; pagar solo libera el on-hold, sin un segundo
// descuento. Anular emite movimientos de anulación que restauran el stock.
type OrderStockUseCase struct {
	txRunner OrderTxRunner
}

// NewOrderStockUseCase construye el caso de uso.
func NewOrderStockUseCase(txRunner OrderTxRunner) *OrderStockUseCase {
	return &OrderStockUseCase{txRunner: txRunner}
}

// PlaceOrder valida disponibilidad de todas las líneas (expandiendo kits), registra los
// movimientos de venta y crea la orden. Estado inicial permitido: creada o pagada.
func (uc *OrderStockUseCase) PlaceOrder(ctx context.Context, order *entity.Order) error {
	if order == nil || len(order.Items) == 0 {
		return domain.ErrInvalidInput
	}
	if order.Status != entity.OrderStatusCreated && order.Status != entity.OrderStatusPaid {
		return domain.ErrInvalidInput
	}
	for _, it := range order.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	}
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	return uc.txRunner.RunOrder(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		kitRepo repository.KitComponentRepository,
		orderRepo repository.OrderRepository,
	) error {
		requests := requestsFromItems(order.Items)
		// Validación sobre las líneas originales: los faltantes reportan el consumo
		// combinado de kits y componentes pedidos directamente.
		if err := validateAvailability(productRepo, kitRepo, requests); err != nil {
			return err
		}
		leaf, err := leafRequirements(productRepo, kitRepo, requests)
		if err != nil {
			return err
		}

		inputs := make([]MovementInput, 0, len(leaf))
		for _, req := range leaf {
			inputs = append(inputs, MovementInput{
				ProductID:   req.ProductID,
				StoreID:     order.StoreID,
				Type:        entity.MovementTypeSale,
				Quantity:    -req.Quantity,
				Reason:      fmt.Sprintf("venta orden %s", order.ID),
				ReferenceID: order.ID,
				CreatedBy:   order.CreatedBy,
			})
		}
		if _, err := applyStrict(movRepo, productRepo, kitRepo, inputs); err != nil {
			return err
		}

		if order.Status == entity.OrderStatusCreated {
			for _, req := range leaf {
				if _, err := productRepo.AdjustOnHold(req.ProductID, req.Quantity); err != nil {
					return err
				}
			}
		}
		return orderRepo.Create(order)
	})
}

// MarkPaid transiciona creada→pagada. El stock ya se descontó al crear la orden; solo
// se libera la reserva on-hold, sin nuevos movimientos. La liberación sale de los
// movimientos de venta registrados por la orden, no de la BOM actual.
func (uc *OrderStockUseCase) MarkPaid(ctx context.Context, orderID string) error {
	return uc.txRunner.RunOrder(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		kitRepo repository.KitComponentRepository,
		orderRepo repository.OrderRepository,
	) error {
		order, err := orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusCreated {
			return domain.ErrConflict
		}
		sold, err := soldQuantities(movRepo, order.ID)
		if err != nil {
			return err
		}
		for _, req := range sold {
			if _, err := productRepo.AdjustOnHold(req.ProductID, -req.Quantity); err != nil {
				return err
			}
		}
		return orderRepo.UpdateStatus(orderID, entity.OrderStatusPaid)
	})
}

// Cancel anula una orden creada o pagada: registra movimientos de anulación que
// devuelven al stock vendible exactamente lo que la orden vendió (según su propio
// registro en el ledger) y, si la orden estaba pendiente, libera la reserva on-hold.
func (uc *OrderStockUseCase) Cancel(ctx context.Context, orderID string) error {
	return uc.txRunner.RunOrder(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		kitRepo repository.KitComponentRepository,
		orderRepo repository.OrderRepository,
	) error {
		order, err := orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.OrderStatusCancelled {
			return domain.ErrConflict
		}
		sold, err := soldQuantities(movRepo, order.ID)
		if err != nil {
			return err
		}

		inputs := make([]MovementInput, 0, len(sold))
		for _, req := range sold {
			inputs = append(inputs, MovementInput{
				ProductID:   req.ProductID,
				StoreID:     order.StoreID,
				Type:        entity.MovementTypeCancellation,
				Quantity:    req.Quantity,
				Reason:      fmt.Sprintf("anulación orden %s", order.ID),
				ReferenceID: order.ID,
			})
		}
		if _, err := applyStrict(movRepo, productRepo, kitRepo, inputs); err != nil {
			return err
		}
		if order.Status == entity.OrderStatusCreated {
			for _, req := range sold {
				if _, err := productRepo.AdjustOnHold(req.ProductID, -req.Quantity); err != nil {
					return err
				}
			}
		}
		return orderRepo.UpdateStatus(orderID, entity.OrderStatusCancelled)
	})
}

// soldQuantities reconstruye qué vendió realmente la orden a partir de sus propios
// movimientos de venta en el ledger (ReferenceID = orden). Las transiciones posteriores
// compensan contra ese registro, no contra la BOM actual: si la BOM del kit cambió con
// la orden en curso, una re-expansión acreditaría componentes que nunca se vendieron.
func soldQuantities(
	movRepo repository.InventoryMovementRepository,
	orderID string,
) ([]AvailabilityRequest, error) {
	movs, err := movRepo.ListByReference(orderID)
	if err != nil {
		return nil, err
	}
	totals := make(map[string]int64)
	for _, m := range movs {
		if m.Type != entity.MovementTypeSale {
			continue
		}
		totals[m.ProductID] += -m.Quantity
	}
	ids := make([]string, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]AvailabilityRequest, 0, len(ids))
	for _, id := range ids {
		if totals[id] <= 0 {
			continue
		}
		out = append(out, AvailabilityRequest{ProductID: id, Quantity: totals[id]})
	}
	return out, nil
}

// requestsFromItems convierte líneas de orden en solicitudes de disponibilidad.
func requestsFromItems(items []entity.OrderItem) []AvailabilityRequest {
	requests := make([]AvailabilityRequest, 0, len(items))
	for _, it := range items {
		requests = append(requests, AvailabilityRequest{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return requests
}

// leafRequirements expande las solicitudes hasta componentes hoja y devuelve el
// requerimiento total por producto simple, en orden determinista.
func leafRequirements(
	productRepo repository.ProductRepository,
	kitRepo repository.KitComponentRepository,
	requests []AvailabilityRequest,
) ([]AvailabilityRequest, error) {
	exp, err := expandRequests(productRepo, kitRepo, requests)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(exp.leaf))
	for id := range exp.leaf {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]AvailabilityRequest, 0, len(ids))
	for _, id := range ids {
		out = append(out, AvailabilityRequest{ProductID: id, Quantity: exp.leaf[id]})
	}
	return out, nil
}
