package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jaayveeworld/affiliate-portal-api/internal/core/domain"
	"github.com/jaayveeworld/affiliate-portal-api/internal/core/ports"
)

// EventHandler serves the upstream event catalog.
type EventHandler struct {
	service ports.EventService
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{service: service}
}

type eventsResponse struct {
	Success bool                 `json:"success"`
	Data    []domain.CatalogEvent `json:"data"`
}

// List handles GET /events. Upstream failures degrade to an empty list; this
// endpoint never fails on the catalog's behalf.
//
// @Summary      List catalog events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  eventsResponse
// @Failure      401  {object}  errorResponse
// @Router       /events [get]
func (h *EventHandler) List(c echo.Context) error {
	events := h.service.ListEvents(c.Request().Context())
	return c.JSON(http.StatusOK, eventsResponse{Success: true, Data: events})
}
