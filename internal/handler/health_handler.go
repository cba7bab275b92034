package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jointoit/events-api/internal/models"
	"github.com/jointoit/events-api/pkg/database"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewHealthHandler(db *gorm.DB, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	if err := database.Ping(h.db); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.HealthResponse{
			Status: "unavailable",
			Error:  "database unreachable",
		})
	}
	return c.JSON(models.HealthResponse{Status: "ok"})
}
