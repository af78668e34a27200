package stock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tienda-pro/internal/application/stock"
	"github.com/tu-usuario/tienda-pro/internal/domain"
	"github.com/tu-usuario/tienda-pro/internal/domain/entity"
)

func newOrderUC(s *fakeStore) *stock.OrderStockUseCase {
	return stock.NewOrderStockUseCase(&fakeTxRunner{s})
}

// movementsByType filtra el ledger por tipo de movimiento.
func movementsByType(s *fakeStore, movType string) []*entity.InventoryMovement {
	var out []*entity.InventoryMovement
	for _, m := range s.movements {
		if m.Type == movType {
			out = append(out, m)
		}
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests PlaceOrder
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: orden pagada con un kit — descuenta los componentes, re-deriva el kit y
// registra ventas referenciando la orden.
func TestPlaceOrder_PagadaConKitDescuentaComponentes(t *testing.T) {
	s := newFakeStore()
	s.seedProduct("a", "Tornillo", 10)
	s.seedKit("k", "Kit Mesa", map[string]int64{"a": 2})
	s.products["k"].Stock = 5
	uc := newOrderUC(s)

	order := &entity.Order{
		Status: entity.OrderStatusPaid,
		Items:  []entity.OrderItem{{ProductID: "k", Quantity: 2}},
	}
	require.NoError(t, uc.PlaceOrder(context.Background(), order))
	require.NotEmpty(t, order.ID)

	assert.Equal(t, int64(6), s.products["a"].Stock)
	assert.Equal(t, int64(3), s.products["k"].Stock, "el kit debe re-derivarse tras el descuento")
	assert.Equal(t, int64(0), s.products["a"].StockOnHold, "una orden pagada no reserva on-hold")

	sales := movementsByType(s, entity.MovementTypeSale)
	require.Len(t, sales, 1)
	assert.Equal(t, "a", sales[0].ProductID)
	assert.Equal(t, int64(-4), sales[0].Quantity)
	assert.Equal(t, order.ID, sales[0].ReferenceID)

	stored, err := (&fakeOrderRepo{s}).GetByID(order.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.OrderStatusPaid, stored.Status)
}

// Caso 2: orden pendiente — el stock se descuenta UNA vez y la cantidad queda
// reflejada en on-hold.
func TestPlaceOrder_PendienteDescuentaYReserva(t *testing.T) {
	s := newFakeStore()
	s.seedProduct("p1", "Camiseta", 10)
	uc := newOrderUC(s)

	order := &entity.Order{
		Status: entity.OrderStatusCreated,
		Items:  []entity.OrderItem{{ProductID: "p1", Quantity: 4}},
	}
	require.NoError(t, uc.PlaceOrder(context.Background(), order))

	assert.Equal(t, int64(6), s.products["p1"].Stock)
	assert.Equal(t, int64(4), s.products["p1"].StockOnHold)
}

// Caso 3: stock insuficiente → la orden no se crea y nada cambia.
func TestPlaceOrder_StockInsuficienteNoCreaNada(t *testing.T) {
	s := newFakeStore()
	s.seedProduct("p1", "Camiseta", 3)
	uc := newOrderUC(s)

	order := &entity.Order{
		Status: entity.OrderStatusPaid,
		Items:  []entity.OrderItem{{ProductID: "p1", Quantity: 5}},
	}
	err := uc.PlaceOrder(context.Background(), order)
	require.Error(t, err)

	var insuf *domain.InsufficientStockError
	require.True(t, errors.As(err, &insuf))

	assert.Equal(t, int64(3), s.products["p1"].Stock)
	assert.Empty(t, s.movements)
	assert.Empty(t, s.orders)
}

// Caso 4: entradas inválidas — sin líneas, cantidad no positiva o estado inicial
// ilegal.
func TestPlaceOrder_EntradaInvalida(t *testing.T) {
	s := newFakeStore()
	s.seedProduct("p1", "Camiseta", 10)
	uc := newOrderUC(s)
	ctx := context.Background()

	assert.ErrorIs(t, uc.PlaceOrder(ctx, &entity.Order{Status: entity.OrderStatusPaid}), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.PlaceOrder(ctx, &entity.Order{
		Status: entity.OrderStatusPaid,
		Items:  []entity.OrderItem{{ProductID: "p1", Quantity: 0}},
	}), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.PlaceOrder(ctx, &entity.Order{
		Status: entity.OrderStatusCancelled,
		Items:  []entity.OrderItem{{ProductID: "p1", Quantity: 1}},
	}), domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests MarkPaid
// ──────────────────────────────────────────────────────────────────────────────

// Caso 5: pagar una orden pendiente libera el on-hold sin un segundo descuento ni
// nuevos movimientos.
func TestMarkPaid_LiberaReservaSinSegundoDescuento(t *testing.T) {
	s := newFakeStore()
	s.seedProduct("p1", "Camiseta", 10)
	uc := newOrderUC(s)
	ctx := context.Background()

	order := &entity.Order{
		Status: entity.OrderStatusCreated,
		Items:  []entity.OrderItem{{ProductID: "p1", Quantity: 4}},
	}
	require.NoError(t, uc.PlaceOrder(ctx, order))
	movsBefore := len(s.movements)

	require.NoError(t, uc.MarkPaid(ctx, order.ID))

	assert.Equal(t, int64(6), s.products["p1"].Stock, "el stock ya se descontó al crear la orden")
	assert.Equal(t, int64(0), s.products["p1"].StockOnHold)
	assert.Len(t, s.movements, movsBefore, "pagar no emite movimientos")
	assert.Equal(t, entity.OrderStatusPaid, s.orders[order.ID].Status)
}

// Caso 6: pagar una orden que no está pendiente → ErrConflict; inexistente → ErrNotFound.
func TestMarkPaid_TransicionesInvalidas(t *testing.T) {
	s := newFakeStore()
	s.seedProduct("p1", "Camiseta", 10)
	uc := newOrderUC(s)
	ctx := context.Background()

	order := &entity.Order{
		Status: entity.OrderStatusPaid,
		Items:  []entity.OrderItem{{ProductID: "p1", Quantity: 1}},
	}
	require.NoError(t, uc.PlaceOrder(ctx, order))

	assert.ErrorIs(t, uc.MarkPaid(ctx, order.ID), domain.ErrConflict)
	assert.ErrorIs(t, uc.MarkPaid(ctx, "no-existe"), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Cancel
// ──────────────────────────────────────────────────────────────────────────────

// Caso 7: anular una orden pendiente restaura el stock con movimientos de anulación y
// libera el on-hold.
func TestCancel_PendienteRestauraStockYLiberaReserva(t *testing.T) {
	s := newFakeStore()
	s.seedProduct("p1", "Camiseta", 10)
	uc := newOrderUC(s)
	ctx := context.Background()

	order := &entity.Order{
		Status: entity.OrderStatusCreated,
		Items:  []entity.OrderItem{{ProductID: "p1", Quantity: 4}},
	}
	require.NoError(t, uc.PlaceOrder(ctx, order))
	require.NoError(t, uc.Cancel(ctx, order.ID))

	assert.Equal(t, int64(10), s.products["p1"].Stock)
	assert.Equal(t, int64(0), s.products["p1"].StockOnHold)
	assert.Equal(t, entity.OrderStatusCancelled, s.orders[order.ID].Status)

	cancellations := movementsByType(s, entity.MovementTypeCancellation)
	require.Len(t, cancellations, 1)
	assert.Equal(t, int64(4), cancellations[0].Quantity)
	assert.Equal(t, order.ID, cancellations[0].ReferenceID)
}

// Caso 8: anular una orden pagada restaura el stock sin tocar on-hold (nunca hubo
// reserva).
func TestCancel_PagadaRestauraStock(t *testing.T) {
	s := newFakeStore()
	s.seedProduct("a", "Tornillo", 10)
	s.seedKit("k", "Kit Mesa", map[string]int64{"a": 2})
	uc := newOrderUC(s)
	ctx := context.Background()

	order := &entity.Order{
		Status: entity.OrderStatusPaid,
		Items:  []entity.OrderItem{{ProductID: "k", Quantity: 2}},
	}
	require.NoError(t, uc.PlaceOrder(ctx, order))
	require.Equal(t, int64(6), s.products["a"].Stock)

	require.NoError(t, uc.Cancel(ctx, order.ID))

	assert.Equal(t, int64(10), s.products["a"].Stock)
	assert.Equal(t, int64(5), s.products["k"].Stock, "el kit se re-deriva tras la anulación")
	assert.Equal(t, int64(0), s.products["a"].StockOnHold)
	assert.Equal(t, entity.OrderStatusCancelled, s.orders[order.ID].Status)
}

// Caso 8b: si la BOM del kit cambia con la orden pendiente, la anulación compensa lo
// que la orden realmente vendió (su registro en el ledger), no la BOM actual: el
// componente agregado después no recibe crédito ni queda con on-hold negativo.
func TestCancel_BOMEditadaCompensaSegunLedger(t *testing.T) {
	s := newFakeStore()
	s.seedProduct("a", "Tornillo", 10)
	s.seedProduct("b", "Tabla", 13)
	s.seedKit("k", "Kit Mesa", map[string]int64{"a": 2})
	uc := newOrderUC(s)
	ctx := context.Background()

	order := &entity.Order{
		Status: entity.OrderStatusCreated,
		Items:  []entity.OrderItem{{ProductID: "k", Quantity: 1}},
	}
	require.NoError(t, uc.PlaceOrder(ctx, order))
	require.Equal(t, int64(8), s.products["a"].Stock)
	require.Equal(t, int64(2), s.products["a"].StockOnHold)

	// La BOM gana una arista nueva mientras la orden sigue pendiente.
	kitRepo := &fakeKitRepo{s}
	require.NoError(t, kitRepo.Create(&entity.KitComponent{
		ID: "k-b", KitID: "k", ComponentID: "b", Quantity: 3,
	}))

	require.NoError(t, uc.Cancel(ctx, order.ID))

	assert.Equal(t, int64(10), s.products["a"].Stock)
	assert.Equal(t, int64(0), s.products["a"].StockOnHold)
	assert.Equal(t, int64(13), s.products["b"].Stock, "b nunca se vendió: no debe recibir crédito")
	assert.Equal(t, int64(0), s.products["b"].StockOnHold, "b nunca se reservó: on-hold intacto")

	cancellations := movementsByType(s, entity.MovementTypeCancellation)
	require.Len(t, cancellations, 1)
	assert.Equal(t, "a", cancellations[0].ProductID)
	assert.Equal(t, int64(2), cancellations[0].Quantity)
}

// Caso 8c: pagar tras un cambio de BOM libera el on-hold de lo que la orden vendió,
// nunca del componente agregado después.
func TestMarkPaid_BOMEditadaLiberaSegunLedger(t *testing.T) {
	s := newFakeStore()
	s.seedProduct("a", "Tornillo", 10)
	s.seedProduct("b", "Tabla", 13)
	s.seedKit("k", "Kit Mesa", map[string]int64{"a": 2})
	uc := newOrderUC(s)
	ctx := context.Background()

	order := &entity.Order{
		Status: entity.OrderStatusCreated,
		Items:  []entity.OrderItem{{ProductID: "k", Quantity: 1}},
	}
	require.NoError(t, uc.PlaceOrder(ctx, order))

	kitRepo := &fakeKitRepo{s}
	require.NoError(t, kitRepo.Create(&entity.KitComponent{
		ID: "k-b", KitID: "k", ComponentID: "b", Quantity: 3,
	}))

	require.NoError(t, uc.MarkPaid(ctx, order.ID))

	assert.Equal(t, int64(0), s.products["a"].StockOnHold)
	assert.Equal(t, int64(0), s.products["b"].StockOnHold, "b nunca se reservó")
	assert.Equal(t, int64(8), s.products["a"].Stock)
	assert.Equal(t, int64(13), s.products["b"].Stock)
}

// Caso 9: anular dos veces → ErrConflict (sin doble restauración); inexistente →
// ErrNotFound.
func TestCancel_TransicionesInvalidas(t *testing.T) {
	s := newFakeStore()
	s.seedProduct("p1", "Camiseta", 10)
	uc := newOrderUC(s)
	ctx := context.Background()

	order := &entity.Order{
		Status: entity.OrderStatusPaid,
		Items:  []entity.OrderItem{{ProductID: "p1", Quantity: 2}},
	}
	require.NoError(t, uc.PlaceOrder(ctx, order))
	require.NoError(t, uc.Cancel(ctx, order.ID))

	assert.ErrorIs(t, uc.Cancel(ctx, order.ID), domain.ErrConflict)
	assert.Equal(t, int64(10), s.products["p1"].Stock, "la segunda anulación no debe restaurar de nuevo")
	assert.ErrorIs(t, uc.Cancel(ctx, "no-existe"), domain.ErrNotFound)
}

// Caso 10: la suma del ledger de un componente refleja el ciclo completo
// venta→anulación (termina en el valor inicial).
func TestOrderFlow_LedgerBalanceado(t *testing.T) {
	s := newFakeStore()
	s.seedProduct("p1", "Camiseta", 0)
	uc := newOrderUC(s)
	ledger := newLedgerUC(s)
	ctx := context.Background()

	_, err := ledger.RecordMovement(ctx, stock.MovementInput{
		ProductID: "p1", Type: entity.MovementTypeInitial, Quantity: 8,
	})
	require.NoError(t, err)

	order := &entity.Order{
		Status: entity.OrderStatusPaid,
		Items:  []entity.OrderItem{{ProductID: "p1", Quantity: 3}},
	}
	require.NoError(t, uc.PlaceOrder(ctx, order))
	require.NoError(t, uc.Cancel(ctx, order.ID))

	cached, sum, err := ledger.Reconcile(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(8), cached)
	assert.Equal(t, int64(8), sum)
}
