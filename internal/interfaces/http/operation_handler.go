package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stockmaster/stockmaster-api/internal/application/dto"
	"github.com/stockmaster/stockmaster-api/internal/application/operations"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

// OperationHandler maneja las operaciones de inventario: creación por tipo,
// edición, transiciones de estado y documento imprimible (protegido).
type OperationHandler struct {
	uc *operations.UseCase
}

// NewOperationHandler construye el handler.
func NewOperationHandler(uc *operations.UseCase) *OperationHandler {
	return &OperationHandler{uc: uc}
}

// CreateReceipt godoc
// @Summary      Crear recepción (entrada desde el exterior)
// @Tags         operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceiptRequest  true  "Datos de la recepción"
// @Success      201   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/operations/receipts [post]
func (h *OperationHandler) CreateReceipt(c *fiber.Ctx) error {
	var in dto.CreateReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateReceipt(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateDelivery godoc
// @Summary      Crear entrega (salida hacia el exterior)
// @Tags         operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDeliveryRequest  true  "Datos de la entrega"
// @Success      201   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/operations/deliveries [post]
func (h *OperationHandler) CreateDelivery(c *fiber.Ctx) error {
	var in dto.CreateDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateDelivery(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateTransfer godoc
// @Summary      Crear traslado entre ubicaciones
// @Tags         operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "Datos del traslado"
// @Success      201   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/operations/transfers [post]
func (h *OperationHandler) CreateTransfer(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateTransfer(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateAdjustment godoc
// @Summary      Crear ajuste por conteo físico
// @Tags         operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdjustmentRequest  true  "Conteo físico por producto"
// @Success      201   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/operations/adjustments [post]
func (h *OperationHandler) CreateAdjustment(c *fiber.Ctx) error {
	var in dto.CreateAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateAdjustment(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener operación por ID
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la operación"
// @Success      200  {object}  dto.OperationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/operations/{id} [get]
func (h *OperationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar operaciones con filtros
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        type          query  string  false  "RECEIPT | DELIVERY | TRANSFER | ADJUSTMENT"
// @Param        status        query  string  false  "DRAFT | WAITING | READY | DONE | CANCELED"
// @Param        warehouse_id  query  string  false  "Almacén origen o destino"
// @Param        location_id   query  string  false  "Ubicación origen o destino"
// @Param        reference     query  string  false  "Match parcial de referencia"
// @Param        contact_name  query  string  false  "Match parcial de contacto"
// @Param        date_from     query  string  false  "schedule_date desde (RFC3339)"
// @Param        date_to       query  string  false  "schedule_date hasta (RFC3339)"
// @Param        page          query  int     false  "Página"  default(1)
// @Param        limit         query  int     false  "Ítems por página"  default(20)
// @Success      200  {object}  dto.OperationListResponse
// @Router       /api/operations [get]
func (h *OperationHandler) List(c *fiber.Ctx) error {
	filters := repository.OperationFilters{
		Type:        entity.OperationType(c.Query("type")),
		Status:      entity.OperationStatus(c.Query("status")),
		WarehouseID: c.Query("warehouse_id"),
		LocationID:  c.Query("location_id"),
		Reference:   c.Query("reference"),
		ContactName: c.Query("contact_name"),
	}
	if from := c.Query("date_from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date_from inválido (RFC3339)"})
		}
		filters.DateFrom = &t
	}
	if to := c.Query("date_to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date_to inválido (RFC3339)"})
		}
		filters.DateTo = &t
	}
	out, err := h.uc.List(c.Context(), filters, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar operación (solo DRAFT o WAITING)
// @Tags         operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la operación"
// @Param        body  body  dto.UpdateOperationRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.OperationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/operations/{id} [put]
func (h *OperationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOperationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Transition godoc
// @Summary      Aplicar una acción de estado (mark_ready, mark_done, cancel)
// @Tags         operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la operación"
// @Param        body  body  dto.TransitionRequest  true  "Acción"
// @Success      200   {object}  dto.OperationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/operations/{id}/transition [post]
func (h *OperationHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Transition(c.Context(), c.Params("id"), in.Action)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Document godoc
// @Summary      Documento PDF de la operación
// @Tags         operations
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la operación"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/operations/{id}/document [get]
func (h *OperationHandler) Document(c *fiber.Ctx) error {
	raw, err := h.uc.Document(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="operacion.pdf"`)
	return c.Send(raw)
}
