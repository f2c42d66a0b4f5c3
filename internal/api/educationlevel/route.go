package educationlevel

import (
	"github.com/gofiber/fiber/v3"
)

func RegisterRoutes(r fiber.Router, h *Handler) {
	grp := r.Group("/educationLevels")

	grp.Get("/", h.List)
	grp.Get("/:id", h.Get)
}
