package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/influenceai/influence-frontend/internal/api/middleware"
	"github.com/influenceai/influence-frontend/internal/core/ports"
)

// DashboardHandler serves the dashboard view's aggregated data.
type DashboardHandler struct {
	dashboard ports.DashboardService
}

func NewDashboardHandler(dashboard ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Overview returns the dashboard's three data slots, fetched concurrently.
// A slot that failed is null with its error noted under "errors"; the view
// renders whatever arrived.
//
// @Summary      Dashboard overview
// @Tags         dashboard
// @Produce      json
// @Param        limit  query     int  false  "Top influencer limit (default 10)"
// @Success      200    {object}  ports.DashboardOverview
// @Router       /dashboard [get]
func (h *DashboardHandler) Overview(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	overview, err := h.dashboard.Overview(c.Request().Context(), middleware.Token(c), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview)
}
