package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"mrpproducao/internal/infra"
	"mrpproducao/internal/worker"
)

type HealthHandler struct {
	db      *gorm.DB
	rdb     *redis.Client
	breaker *infra.CircuitBreaker
}

func NewHealthHandler(db *gorm.DB, rdb *redis.Client, breaker *infra.CircuitBreaker) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb, breaker: breaker}
}

// Health reports the status of every dependency. Returns 503 when the
// database or Redis is unreachable; the SMTP breaker state is informational.
func (h *HealthHandler) Health(c *gin.Context) {
	status := http.StatusOK
	report := gin.H{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)}

	dbStatus := "ok"
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		dbStatus = "down"
		status = http.StatusServiceUnavailable
	}
	report["database"] = dbStatus

	redisStatus := "ok"
	if err := h.rdb.Ping(c.Request.Context()).Err(); err != nil {
		redisStatus = "down"
		status = http.StatusServiceUnavailable
	}
	report["redis"] = redisStatus
	report["smtp_breaker"] = h.breaker.State().String()

	if size, err := worker.DLQSize(c.Request.Context(), h.rdb); err == nil {
		report["dlq_size"] = size
	}

	if status != http.StatusOK {
		report["status"] = "degraded"
	}
	c.JSON(status, report)
}
