package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-pro/internal/application/dto"
	"github.com/tu-usuario/tienda-pro/internal/application/stock"
	"github.com/tu-usuario/tienda-pro/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP del motor de inventario.
type InventoryHandler struct {
	ledger       *stock.LedgerUseCase
	batch        *stock.BatchUseCase
	availability *stock.AvailabilityUseCase
	kits         *stock.KitStockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	ledger *stock.LedgerUseCase,
	batch *stock.BatchUseCase,
	availability *stock.AvailabilityUseCase,
	kits *stock.KitStockUseCase,
) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, batch: batch, availability: availability, kits: kits}
}

// RegisterMovement godoc
// @Summary      Registrar un movimiento de inventario
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type, quantity (firmada), reason opcional"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.ledger.RecordMovement(c.Context(), toMovementInput(in))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// RegisterBatch godoc
// @Summary      Registrar un batch de movimientos (strict o resilient)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterBatchRequest  true  "mode: strict|resilient, movements"
// @Success      200   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "strict: ningún movimiento aplicado"
// @Router       /api/inventory/movements/batch [post]
func (h *InventoryHandler) RegisterBatch(c *fiber.Ctx) error {
	var in dto.RegisterBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inputs := make([]stock.MovementInput, 0, len(in.Movements))
	for _, m := range in.Movements {
		inputs = append(inputs, toMovementInput(m))
	}
	result, err := h.batch.RecordBatch(c.Context(), inputs, in.Mode)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toBatchResponse(result))
}

// ValidateAvailability godoc
// @Summary      Validar disponibilidad (expande kits recursivamente)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AvailabilityRequest  true  "items solicitados"
// @Success      200   {object}  map[string]bool
// @Failure      409   {object}  dto.ErrorResponse  "faltantes detallados en items"
// @Router       /api/inventory/availability [post]
func (h *InventoryHandler) ValidateAvailability(c *fiber.Ctx) error {
	var in dto.AvailabilityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	requests := make([]stock.AvailabilityRequest, 0, len(in.Items))
	for _, it := range in.Items {
		requests = append(requests, stock.AvailabilityRequest{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	if err := h.availability.Validate(c.Context(), requests); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{"available": true})
}

// RecalculateKits godoc
// @Summary      Recalcular stock derivado de kits (mantenimiento)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecalculateKitsRequest  true  "kit_ids"
// @Success      200   {object}  map[string]string
// @Router       /api/inventory/kits/recalculate [post]
func (h *InventoryHandler) RecalculateKits(c *fiber.Ctx) error {
	var in dto.RecalculateKitsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.kits.Recalculate(c.Context(), in.KitIDs); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "kits recalculados"})
}

// ListMovements godoc
// @Summary      Historial de movimientos de un producto (auditoría)
// @Tags         inventory
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        from    query  string  false  "RFC3339"
// @Param        to      query  string  false  "RFC3339"
// @Param        limit   query  int     false  "por defecto 20"
// @Param        offset  query  int     false  "por defecto 0"
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/product/{id} [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	productID := c.Params("id")
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválido"})
	}
	page.DefaultPage()

	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido"})
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido"})
		}
		to = &t
	}

	movs, err := h.ledger.History(c.Context(), productID, from, to, page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Comparar contador cacheado vs. suma del ledger
// @Tags         inventory
// @Produce      json
// @Param        id  path  string  true  "ID del producto (simple)"
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/reconcile/{id} [get]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	productID := c.Params("id")
	cached, ledger, err := h.ledger.Reconcile(c.Context(), productID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ReconcileResponse{
		ProductID:   productID,
		CachedStock: cached,
		LedgerSum:   ledger,
		Consistent:  cached == ledger,
	})
}

func toMovementInput(in dto.RegisterMovementRequest) stock.MovementInput {
	return stock.MovementInput{
		ProductID:   in.ProductID,
		StoreID:     in.StoreID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Reason:      in.Reason,
		ReferenceID: in.ReferenceID,
		UnitPrice:   in.UnitPrice,
	}
}

func toMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		StoreID:       m.StoreID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reason:        m.Reason,
		ReferenceID:   m.ReferenceID,
		UnitPrice:     m.UnitPrice,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}

func toBatchResponse(result *stock.BatchResult) dto.BatchResponse {
	out := dto.BatchResponse{
		Success: make([]dto.MovementResponse, 0, len(result.Success)),
		Failed:  make([]dto.FailedMovementResponse, 0, len(result.Failed)),
	}
	for _, m := range result.Success {
		out.Success = append(out.Success, toMovementResponse(m))
	}
	for _, f := range result.Failed {
		out.Failed = append(out.Failed, dto.FailedMovementResponse{
			Movement: dto.RegisterMovementRequest{
				ProductID:   f.Input.ProductID,
				StoreID:     f.Input.StoreID,
				Type:        f.Input.Type,
				Quantity:    f.Input.Quantity,
				Reason:      f.Input.Reason,
				ReferenceID: f.Input.ReferenceID,
				UnitPrice:   f.Input.UnitPrice,
			},
			Reason: f.Reason,
		})
	}
	return out
}
