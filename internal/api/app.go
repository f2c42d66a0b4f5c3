package api

import (
	"github.com/DGonNine/teacher-management/config"
	"github.com/DGonNine/teacher-management/internal/api/educationlevel"
	"github.com/DGonNine/teacher-management/internal/api/healthcheck"
	"github.com/DGonNine/teacher-management/internal/api/teacher"
	"github.com/DGonNine/teacher-management/internal/api/teachertype"
	"github.com/DGonNine/teacher-management/internal/api/upload"
	coreteacher "github.com/DGonNine/teacher-management/internal/core/teacher"
	"github.com/DGonNine/teacher-management/internal/middleware"
	"github.com/DGonNine/teacher-management/internal/services/storage"
	"github.com/DGonNine/teacher-management/pkg/apperror"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/static"
	"gorm.io/gorm"
)

// Deps are the collaborators the HTTP layer is built on.
type Deps struct {
	DB              *gorm.DB
	Teachers        *coreteacher.Service
	TeacherTypes    teachertype.Source
	EducationLevels educationlevel.Source
	Images          storage.Store
}

// NewApp wires middleware and every route onto a new fiber app.
func NewApp(cfg config.Config, deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Server.AppName,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: apperror.ErrorHandler,
	})

	middleware.Setup(app, cfg)

	healthcheck.RegisterRoutes(app, healthcheck.NewHandler(deps.DB))
	teacher.RegisterRoutes(app, teacher.NewHandler(deps.Teachers))
	upload.RegisterRoutes(app, upload.NewHandler(deps.Teachers, deps.Images, cfg.Upload))
	teachertype.RegisterRoutes(app, teachertype.NewHandler(deps.TeacherTypes))
	educationlevel.RegisterRoutes(app, educationlevel.NewHandler(deps.EducationLevels))

	// Images kept on local disk are served back under the public path.
	app.Get(cfg.Upload.PublicPath+"*", static.New(cfg.Upload.LocalDir))

	return app
}
