package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stockmaster/stockmaster-api/internal/application/dto"
	"github.com/stockmaster/stockmaster-api/internal/application/stock"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

// HistoryHandler expone el historial aplanado de movimientos (protegido).
type HistoryHandler struct {
	stockUC *stock.UseCase
}

// NewHistoryHandler construye el handler.
func NewHistoryHandler(stockUC *stock.UseCase) *HistoryHandler {
	return &HistoryHandler{stockUC: stockUC}
}

// List godoc
// @Summary      Historial de movimientos con filtros y paginación
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        type          query  string  false  "RECEIPT | DELIVERY | TRANSFER | ADJUSTMENT"
// @Param        status        query  string  false  "Estado de la operación dueña"
// @Param        reference     query  string  false  "Match parcial de referencia"
// @Param        warehouse_id  query  string  false  "Almacén origen o destino"
// @Param        location_id   query  string  false  "Ubicación origen o destino"
// @Param        product_id    query  string  false  "Producto"
// @Param        date_from     query  string  false  "Desde (RFC3339)"
// @Param        date_to       query  string  false  "Hasta (RFC3339)"
// @Param        page          query  int     false  "Página"  default(1)
// @Param        limit         query  int     false  "Ítems por página"  default(20)
// @Success      200  {object}  dto.MoveHistoryResponse
// @Router       /api/move-history [get]
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	filters := repository.HistoryFilters{
		MovementType: entity.OperationType(c.Query("type")),
		Status:       entity.OperationStatus(c.Query("status")),
		Reference:    c.Query("reference"),
		WarehouseID:  c.Query("warehouse_id"),
		LocationID:   c.Query("location_id"),
		ProductID:    c.Query("product_id"),
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
	out, err := h.stockUC.MoveHistory(c.Context(), filters, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
