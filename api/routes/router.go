// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"coachseat/internal/coach"
	"coachseat/internal/shared/config"
	"coachseat/internal/shared/database"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router holds all route dependencies
type Router struct {
	config       *config.Config
	db           *database.DB
	coachService coach.Service
	gatherer     prometheus.Gatherer
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, coachService coach.Service, gatherer prometheus.Gatherer) *Router {
	return &Router{
		config:       cfg,
		db:           db,
		coachService: coachService,
		gatherer:     gatherer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	if r.gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})))
	}

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupCoachRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "coachseat",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "coachseat",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"coach":       r.config.Coach.Name,
			"timestamp":   time.Now(),
		})
	})
}

// setupCoachRoutes configures seat reservation routes
func (r *Router) setupCoachRoutes(rg *gin.RouterGroup) {
	coachController := coach.NewController(r.coachService)
	coach.SetupCoachRoutes(rg, coachController)
}
