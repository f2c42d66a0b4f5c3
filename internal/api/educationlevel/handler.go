package educationlevel

import (
	"context"
	"strconv"

	"github.com/DGonNine/teacher-management/config"
	"github.com/DGonNine/teacher-management/internal/database/model"
	"github.com/DGonNine/teacher-management/pkg/apperror"
	"github.com/DGonNine/teacher-management/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
)

// Source lists and looks up education levels.
type Source interface {
	List(ctx context.Context) ([]model.EducationLevel, error)
	FindByID(ctx context.Context, id int) (*model.EducationLevel, bool, error)
}

type Handler struct {
	src Source
}

func NewHandler(src Source) *Handler {
	return &Handler{src: src}
}

func (h *Handler) List(c fiber.Ctx) error {
	levels, err := h.src.List(c.Context())
	if err != nil {
		return apperror.InternalError(config.ModuleEducationLevel, c, err)
	}
	return c.JSON(levels)
}

func (h *Handler) Get(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperror.BadRequest(config.ModuleEducationLevel, c, status.InvalidParam, "id must be an integer")
	}
	l, found, err := h.src.FindByID(c.Context(), id)
	if err != nil {
		return apperror.InternalError(config.ModuleEducationLevel, c, err)
	}
	if !found {
		return apperror.NotFound(config.ModuleEducationLevel, c, status.EducationLevelNotFound, "education level not found")
	}
	return c.JSON(l)
}
