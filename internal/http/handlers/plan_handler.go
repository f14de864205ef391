// README: Plan handlers (generate, fetch, list, PDF download).
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/http/middleware"
	"wayfarer/internal/modules/planner"
	"wayfarer/internal/modules/plans"
)

// fetchTimeout bounds the cheap read endpoints. Generation gets its own,
// much larger budget from config.
const fetchTimeout = 10 * time.Second

type PlanHandler struct {
	planner *planner.Service
	plans   *plans.Service
	timeout time.Duration
}

func NewPlanHandler(plannerSvc *planner.Service, plansSvc *plans.Service, timeout time.Duration) *PlanHandler {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &PlanHandler{planner: plannerSvc, plans: plansSvc, timeout: timeout}
}

// Generate handles POST /api/v1/plans.
func (h *PlanHandler) Generate(c *gin.Context) {
	var req planner.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	plan, err := h.planner.GeneratePlan(ctx, middleware.CallerUID(c), req)
	if err != nil {
		writePlannerError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, plan)
}

// Get handles GET /api/v1/plans/:id.
func (h *PlanHandler) Get(c *gin.Context) {
	p, ok := h.loadOwned(c)
	if !ok {
		return
	}
	writeJSON(c, http.StatusOK, p)
}

// PDF handles GET /api/v1/plans/:id/pdf.
func (h *PlanHandler) PDF(c *gin.Context) {
	p, ok := h.loadOwned(c)
	if !ok {
		return
	}
	data, filename, err := plans.BuildPDF(p)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "pdf rendering failed")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// List handles GET /api/v1/plans.
func (h *PlanHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(c, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), fetchTimeout)
	defer cancel()

	list, err := h.plans.List(ctx, middleware.CallerUID(c), limit)
	if err != nil {
		writePlannerError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"plans": list, "count": len(list)})
}

// loadOwned fetches the plan behind :id and hides other callers' plans as
// not found, so plan ids leak nothing about existence.
func (h *PlanHandler) loadOwned(c *gin.Context) (*plans.Plan, bool) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), fetchTimeout)
	defer cancel()

	p, err := h.plans.Get(ctx, c.Param("id"))
	if err != nil {
		writePlannerError(c, err)
		return nil, false
	}
	if p.UID != "" && p.UID != middleware.CallerUID(c) {
		writeError(c, http.StatusNotFound, plans.ErrPlanNotFound.Error())
		return nil, false
	}
	return p, true
}
