package teachertype

import (
	"context"
	"strconv"

	"github.com/DGonNine/teacher-management/config"
	"github.com/DGonNine/teacher-management/internal/database/model"
	"github.com/DGonNine/teacher-management/pkg/apperror"
	"github.com/DGonNine/teacher-management/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
)

// Source lists and looks up teacher types.
type Source interface {
	List(ctx context.Context) ([]model.TeacherType, error)
	FindByID(ctx context.Context, id int) (*model.TeacherType, bool, error)
}

type Handler struct {
	src Source
}

func NewHandler(src Source) *Handler {
	return &Handler{src: src}
}

func (h *Handler) List(c fiber.Ctx) error {
	types, err := h.src.List(c.Context())
	if err != nil {
		return apperror.InternalError(config.ModuleTeacherType, c, err)
	}
	return c.JSON(types)
}

func (h *Handler) Get(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperror.BadRequest(config.ModuleTeacherType, c, status.InvalidParam, "id must be an integer")
	}
	t, found, err := h.src.FindByID(c.Context(), id)
	if err != nil {
		return apperror.InternalError(config.ModuleTeacherType, c, err)
	}
	if !found {
		return apperror.NotFound(config.ModuleTeacherType, c, status.TeacherTypeNotFound, "teacher type not found")
	}
	return c.JSON(t)
}
