// README: Quota handler (remaining monthly generations).
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/http/middleware"
	"wayfarer/internal/modules/quota"
)

type QuotaHandler struct {
	quota *quota.Service
}

func NewQuotaHandler(svc *quota.Service) *QuotaHandler {
	return &QuotaHandler{quota: svc}
}

// Remaining handles GET /api/v1/quota. Deployments without a database run
// with no quota service and report themselves as unlimited.
func (h *QuotaHandler) Remaining(c *gin.Context) {
	if h.quota == nil {
		writeJSON(c, http.StatusOK, gin.H{"unlimited": true})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), fetchTimeout)
	defer cancel()

	n, err := h.quota.Remaining(ctx, middleware.CallerUID(c))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"remaining": n, "monthly_allowance": quota.DefaultMonthlyPlans})
}
