// README: HTTP router registration.
package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"wayfarer/internal/http/handlers"
	"wayfarer/internal/http/middleware"
	"wayfarer/internal/infra"
	"wayfarer/internal/modules/planner"
	"wayfarer/internal/modules/plans"
	"wayfarer/internal/modules/quota"
)

// RouterDeps carries everything the router wires into handlers. Verifier
// and Quota may be nil on deployments without Firebase or Postgres.
type RouterDeps struct {
	Planner        *planner.Service
	Plans          *plans.Service
	Quota          *quota.Service
	Verifier       infra.TokenVerifier
	AllowedOrigins []string
	Timeout        time.Duration
	Provider       string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging())
	r.Use(middleware.Recovery())
	r.Use(cors.New(corsConfig(deps.AllowedOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"provider": deps.Provider,
			"auth":     deps.Verifier != nil,
			"quota":    deps.Quota != nil,
		})
	})

	api := r.Group("/api/v1")
	if deps.Verifier != nil {
		api.Use(middleware.Auth(deps.Verifier))
	}

	planHandler := handlers.NewPlanHandler(deps.Planner, deps.Plans, deps.Timeout)
	api.POST("/plans", planHandler.Generate)
	api.GET("/plans", planHandler.List)
	api.GET("/plans/:id", planHandler.Get)
	api.GET("/plans/:id/pdf", planHandler.PDF)

	itineraryHandler := handlers.NewItineraryHandler(deps.Planner, deps.Timeout)
	api.POST("/itinerary", itineraryHandler.Generate)
	api.GET("/destinations/:name/insights", itineraryHandler.Insights)

	quotaHandler := handlers.NewQuotaHandler(deps.Quota)
	api.GET("/quota", quotaHandler.Remaining)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	return cfg
}
