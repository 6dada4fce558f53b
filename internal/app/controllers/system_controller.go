package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentsvc/internal/middleware"
)

const healthCheckTimeout = 5 * time.Second

// Pinger reports whether the database is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemController serves the greeting, liveness and health endpoints
type SystemController struct {
	db Pinger
}

// NewSystemController creates a new SystemController
func NewSystemController(db Pinger) *SystemController {
	return &SystemController{db: db}
}

// Home returns a plain-text greeting
// @Summary Greeting
// @Tags system
// @Produce plain
// @Success 200 {string} string "Hello, Gin!"
// @Router / [get]
func (c *SystemController) Home(ctx *gin.Context) {
	ctx.String(http.StatusOK, "Hello, Gin!")
}

// Ping is a liveness probe that never touches the database
// @Summary Liveness probe
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (c *SystemController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
}

// Health checks database connectivity
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{} "Service healthy"
// @Failure 503 {object} map[string]interface{} "Database unreachable"
// @Router /health [get]
func (c *SystemController) Health(ctx *gin.Context) {
	checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), healthCheckTimeout)
	defer cancel()

	start := time.Now()
	database := gin.H{"status": "healthy"}
	status, code := "healthy", http.StatusOK

	if err := c.db.Ping(checkCtx); err != nil {
		database = gin.H{"status": "unhealthy", "error": err.Error()}
		status, code = "unhealthy", http.StatusServiceUnavailable
		middleware.GetLogger(ctx).Error().Err(err).Dur("response_time", time.Since(start)).Msg("Database health check failed")
	}
	database["response_time"] = time.Since(start).String()

	ctx.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"checks":    gin.H{"database": database},
	})
}
