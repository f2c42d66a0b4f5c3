package teacher

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/DGonNine/teacher-management/config"
	"github.com/DGonNine/teacher-management/internal/core/teacher"
	"github.com/DGonNine/teacher-management/pkg/apperror"
	"github.com/DGonNine/teacher-management/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
)

type Handler struct {
	svc *teacher.Service
}

func NewHandler(svc *teacher.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) List(c fiber.Ctx) error {
	teachers, err := h.svc.List(c.Context())
	if err != nil {
		return apperror.Write(config.ModuleTeacher, c, err)
	}
	return c.JSON(NewResponses(teachers))
}

func (h *Handler) Get(c fiber.Ctx) error {
	t, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return apperror.Write(config.ModuleTeacher, c, err)
	}
	return c.JSON(NewResponse(t))
}

func (h *Handler) Create(c fiber.Ctx) error {
	var req teacher.Request
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return apperror.BadRequest(config.ModuleTeacher, c, status.InvalidRequestBody, "invalid JSON body")
	}
	t, err := h.svc.Create(c.Context(), req)
	if err != nil {
		return apperror.Write(config.ModuleTeacher, c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(NewResponse(t))
}

func (h *Handler) Update(c fiber.Ctx) error {
	var req teacher.Request
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return apperror.BadRequest(config.ModuleTeacher, c, status.InvalidRequestBody, "invalid JSON body")
	}
	t, err := h.svc.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return apperror.Write(config.ModuleTeacher, c, err)
	}
	return c.JSON(NewResponse(t))
}

func (h *Handler) Delete(c fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		return apperror.Write(config.ModuleTeacher, c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) SearchByLastName(c fiber.Ctx) error {
	teachers, err := h.svc.SearchByLastName(c.Context(), c.Query("lastName"))
	if err != nil {
		return apperror.Write(config.ModuleTeacher, c, err)
	}
	return c.JSON(NewResponses(teachers))
}

func (h *Handler) SearchByTeacherType(c fiber.Ctx) error {
	typeID, err := intQuery(c, "teacherType")
	if err != nil {
		return apperror.Write(config.ModuleTeacher, c, err)
	}
	teachers, err := h.svc.SearchByTeacherType(c.Context(), typeID)
	if err != nil {
		return apperror.Write(config.ModuleTeacher, c, err)
	}
	return c.JSON(NewResponses(teachers))
}

func (h *Handler) SearchByEducationLevel(c fiber.Ctx) error {
	levelID, err := intQuery(c, "educationLevel")
	if err != nil {
		return apperror.Write(config.ModuleTeacher, c, err)
	}
	teachers, err := h.svc.SearchByEducationLevel(c.Context(), levelID)
	if err != nil {
		return apperror.Write(config.ModuleTeacher, c, err)
	}
	return c.JSON(NewResponses(teachers))
}

func intQuery(c fiber.Ctx, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, apperror.BadRequestf(status.MissingParams, "%s is required", key)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.BadRequestf(status.InvalidParam, "%s must be an integer", key)
	}
	return v, nil
}
