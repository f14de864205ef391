// README: Raw itinerary dispatch and destination insights handlers.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/modules/planner"
)

type ItineraryHandler struct {
	planner *planner.Service
	timeout time.Duration
}

func NewItineraryHandler(svc *planner.Service, timeout time.Duration) *ItineraryHandler {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &ItineraryHandler{planner: svc, timeout: timeout}
}

// Generate handles POST /api/v1/itinerary: one validation pass, one
// completion call, and the provider's text back untouched.
func (h *ItineraryHandler) Generate(c *gin.Context) {
	var req planner.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	text, err := h.planner.Itinerary(ctx, req)
	if err != nil {
		writePlannerError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"itinerary": text})
}

// Insights handles GET /api/v1/destinations/:name/insights. The payload is
// the cached insights JSON exactly as the model produced it.
func (h *ItineraryHandler) Insights(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	raw, err := h.planner.Insights(ctx, c.Param("name"))
	if err != nil {
		writePlannerError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}
