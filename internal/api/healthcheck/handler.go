package healthcheck

import (
	"context"
	"time"

	"github.com/DGonNine/teacher-management/config"
	"github.com/DGonNine/teacher-management/internal/database"
	"github.com/DGonNine/teacher-management/pkg/apperror"
	"github.com/DGonNine/teacher-management/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
	"gorm.io/gorm"
)

// Handler pings the same pool the repositories use.
type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) ApiHealthCheck(c fiber.Ctx) error {
	return c.SendString("ok")
}

func (h *Handler) DatabaseHealthCheck(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx, h.db); err != nil {
		return apperror.Write(config.ModuleDatabase, c,
			apperror.Wrap(apperror.KindUnavailable, status.DatabaseUnavailable, "database unavailable", err))
	}
	return c.SendString("ok")
}
