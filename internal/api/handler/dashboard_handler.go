package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minicrm/crm-api/internal/core/ports"
)

type DashboardHandler struct {
	statsService ports.StatsService
}

func NewDashboardHandler(statsService ports.StatsService) *DashboardHandler {
	return &DashboardHandler{statsService: statsService}
}

// Stats returns aggregate counts over the records visible to the caller.
//
// @Summary      Dashboard statistics
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Failure      401  {object}  map[string]string
// @Router       /dashboard/stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	stats, err := h.statsService.Stats(c.Request().Context(), user)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toStatsResponse(stats))
}
