package teachertype

import (
	"github.com/gofiber/fiber/v3"
)

func RegisterRoutes(r fiber.Router, h *Handler) {
	grp := r.Group("/teacherTypes")

	grp.Get("/", h.List)
	grp.Get("/:id", h.Get)
}
