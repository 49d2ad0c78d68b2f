package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stackforge/internal/config"
	"stackforge/internal/env"
	"stackforge/internal/models"
	"stackforge/internal/registry"
	"stackforge/services"
)

type APIController struct {
	health    *services.HealthService
	registry  *registry.Registry
	startTime time.Time
}

/**
 * Create new API controller instance
 * @param {*services.HealthService} health - Health service polled by the status endpoints
 * @param {*registry.Registry} reg - Component registry exposed read-only
 * @returns {*APIController} New API controller instance
 */
func NewAPIController(health *services.HealthService, reg *registry.Registry) *APIController {
	return &APIController{
		health:    health,
		registry:  reg,
		startTime: time.Now(),
	}
}

/**
 * Register all API routes to Gin engine
 * @param {*gin.Engine} r - Gin router instance
 */
func (a *APIController) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", a.Healthz)
	r.GET("/api/v1/status", a.Status)
	r.GET("/api/v1/components", a.Components)
	r.POST("/api/v1/reload", a.ReloadConfig)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// @Summary Readiness probe
// @Description Returns service version, start time, health status and key request statistics
// @Tags System
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /healthz [get]
func (a *APIController) Healthz(c *gin.Context) {
	status := a.health.PollAll(c.Request.Context())

	state := "UP"
	if !status.OverallHealthy {
		state = "DOWN"
	}

	response := models.HealthResponse{
		Version:   env.Version,
		StartTime: a.startTime.Format(time.RFC3339),
		Status:    state,
		Uptime:    time.Since(a.startTime).String(),
		Metrics: models.Metrics{
			TotalRequests:       services.GetTotalRequestCount(),
			ErrorRequests:       services.GetTotalErrorCount(),
			TotalComponents:     status.TotalComponents(),
			UnhealthyComponents: len(status.UnhealthyComponents()),
		},
	}
	c.JSON(200, response)
}

// @Summary Detailed component status
// @Description Polls every registered probe and returns the full hierarchical health snapshot
// @Tags System
// @Produce json
// @Success 200 {object} models.SystemStatus
// @Router /api/v1/status [get]
func (a *APIController) Status(c *gin.Context) {
	status := a.health.PollAll(c.Request.Context())
	services.UpdateHealthMetrics(status)
	c.JSON(200, status)
}

// @Summary List registry components
// @Description Returns the component registry with dependencies and contributions
// @Tags Components
// @Produce json
// @Success 200 {array} registry.ComponentSpec
// @Router /api/v1/components [get]
func (a *APIController) Components(c *gin.Context) {
	c.JSON(200, a.registry.Specs())
}

// @Summary Reload configuration
// @Description Reloads the application configuration file
// @Tags Config
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/reload [post]
func (a *APIController) ReloadConfig(c *gin.Context) {
	if err := config.ReloadConfig(); err != nil {
		c.JSON(500, gin.H{
			"code":    "config.reload_failed",
			"message": "Failed to reload configuration: " + err.Error(),
		})
		return
	}

	c.JSON(200, gin.H{
		"status":  "success",
		"message": "Configuration reloaded successfully",
	})
}
