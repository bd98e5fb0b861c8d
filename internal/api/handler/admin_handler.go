package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// AdminHandler serves the administration view's live status panel.
type AdminHandler struct {
	redis     *redis.Client
	apiBase   string
	startedAt time.Time
}

func NewAdminHandler(rdb *redis.Client, apiBase string) *AdminHandler {
	return &AdminHandler{redis: rdb, apiBase: apiBase, startedAt: time.Now()}
}

type adminStatusResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	BackendAPI    string `json:"backend_api"`
	SessionStore  string `json:"session_store"`
}

// Status reports gateway runtime and dependency state for administrators.
//
// @Summary      Gateway status
// @Tags         admin
// @Produce      json
// @Success      200  {object}  adminStatusResponse
// @Router       /admin/status [get]
func (h *AdminHandler) Status(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	sessionStore := "connected"
	status := "ok"
	if err := h.redis.Ping(ctx).Err(); err != nil {
		sessionStore = "unreachable: " + err.Error()
		status = "degraded"
	}

	return c.JSON(http.StatusOK, adminStatusResponse{
		Status:        status,
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
		BackendAPI:    h.apiBase,
		SessionStore:  sessionStore,
	})
}
