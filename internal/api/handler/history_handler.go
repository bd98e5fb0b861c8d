package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/influenceai/influence-frontend/internal/api/middleware"
	"github.com/influenceai/influence-frontend/internal/core/domain"
	"github.com/influenceai/influence-frontend/internal/core/ports"
)

// HistoryHandler serves the prediction-history view.
type HistoryHandler struct {
	history ports.HistoryService
}

func NewHistoryHandler(history ports.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// List returns the caller's history, narrowed by the free-text search and
// the level filter.
//
// @Summary      Prediction history
// @Tags         history
// @Produce      json
// @Param        search  query     string  false  "Free-text match on input metrics and level"
// @Param        level   query     string  false  "All | High | Medium | Low"
// @Success      200     {array}   domain.PredictionRecord
// @Router       /history [get]
func (h *HistoryHandler) List(c echo.Context) error {
	level := c.QueryParam("level")
	switch level {
	case "", domain.LevelAll, domain.LevelHigh, domain.LevelMedium, domain.LevelLow:
	default:
		return &domain.ValidationError{Detail: "level must be one of: All, High, Medium, Low"}
	}

	records, err := h.history.List(c.Request().Context(), middleware.Token(c), c.QueryParam("search"), level)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

// Delete removes one history record. The response carries the confirmation;
// the page drops the row only after receiving it.
//
// @Summary      Delete a prediction record
// @Tags         history
// @Produce      json
// @Param        id  path  int  true  "Prediction record id"
// @Success      204  "record deleted"
// @Failure      404  {object}  map[string]string
// @Router       /history/{id} [delete]
func (h *HistoryHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	if _, err := h.history.Delete(c.Request().Context(), middleware.Token(c), nil, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Report downloads the plain-text report for one record.
//
// @Summary      Download a prediction report
// @Tags         history
// @Produce      plain
// @Param        id  path  int  true  "Prediction record id"
// @Success      200  {string}  string
// @Failure      404  {object}  map[string]string
// @Router       /history/{id}/report [get]
func (h *HistoryHandler) Report(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	report, err := h.history.Report(c.Request().Context(), middleware.Token(c), id)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=Prediction_Report_%d.txt`, id))
	return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, []byte(report))
}
