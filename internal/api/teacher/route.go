package teacher

import (
	"github.com/gofiber/fiber/v3"
)

// RegisterRoutes registers teacher routes on the provided router.
// Search routes go first so "search" is never taken as an id.
func RegisterRoutes(r fiber.Router, h *Handler) {
	grp := r.Group("/teachers")

	grp.Get("/search/byLastName", h.SearchByLastName)
	grp.Get("/search/byTeacherType", h.SearchByTeacherType)
	grp.Get("/search/byEducationLevel", h.SearchByEducationLevel)

	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Get("/:id", h.Get)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}
