package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stockmaster/stockmaster-api/internal/application/analytics"
)

// DashboardHandler expone los KPIs y resúmenes del dashboard (protegido).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Kpis godoc
// @Summary      KPIs del dashboard
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardKpisDTO
// @Router       /api/dashboard/kpis [get]
func (h *DashboardHandler) Kpis(c *fiber.Ctx) error {
	out, err := h.uc.GetKpis(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Warehouses godoc
// @Summary      Resumen de actividad por almacén
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WarehouseSummaryDTO
// @Router       /api/dashboard/warehouses [get]
func (h *DashboardHandler) Warehouses(c *fiber.Ctx) error {
	out, err := h.uc.WarehouseSummaries(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Resumen de stock por categoría
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategorySummaryDTO
// @Router       /api/dashboard/categories [get]
func (h *DashboardHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.CategorySummaries(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
