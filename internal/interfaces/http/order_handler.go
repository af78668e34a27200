package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pro/internal/application/dto"
	"github.com/tu-usuario/tienda-pro/internal/application/stock"
	"github.com/tu-usuario/tienda-pro/internal/domain/entity"
	"github.com/tu-usuario/tienda-pro/internal/domain/repository"
)

// OrderHandler maneja las peticiones HTTP de órdenes (capa fina: el handler arma la
// orden y delega toda la lógica de stock al caso de uso).
type OrderHandler struct {
	uc        *stock.OrderStockUseCase
	orderRepo repository.OrderRepository
}

// NewOrderHandler construye el handler. orderRepo es el de nivel superior, solo lecturas.
func NewOrderHandler(uc *stock.OrderStockUseCase, orderRepo repository.OrderRepository) *OrderHandler {
	return &OrderHandler{uc: uc, orderRepo: orderRepo}
}

// Create godoc
// @Summary      Crear una orden (valida disponibilidad y descuenta stock)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "status: creada|pagada, items"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "faltantes detallados en items"
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Status == "" {
		in.Status = entity.OrderStatusCreated
	}

	total := decimal.Zero
	items := make([]entity.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
	}
	order := &entity.Order{
		StoreID: in.StoreID,
		Status:  in.Status,
		Total:   total,
		Items:   items,
	}
	if err := h.uc.PlaceOrder(c.Context(), order); err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(order))
}

// Pay godoc
// @Summary      Transicionar una orden creada a pagada (libera la reserva on-hold)
// @Tags         orders
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/pay [post]
func (h *OrderHandler) Pay(c *fiber.Ctx) error {
	if err := h.uc.MarkPaid(c.Context(), c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "orden pagada"})
}

// Cancel godoc
// @Summary      Anular una orden (restaura el stock con movimientos de anulación)
// @Tags         orders
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Context(), c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "orden anulada"})
}

// GetByID godoc
// @Summary      Obtener una orden con sus líneas
// @Tags         orders
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.orderRepo.GetByID(c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	if order == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
	}
	return c.JSON(toOrderResponse(order))
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return dto.OrderResponse{
		ID:        o.ID,
		StoreID:   o.StoreID,
		Status:    o.Status,
		Total:     o.Total,
		Items:     items,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
