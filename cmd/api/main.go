package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DGonNine/teacher-management/config"
	"github.com/DGonNine/teacher-management/internal/api"
	"github.com/DGonNine/teacher-management/internal/core/lookup"
	"github.com/DGonNine/teacher-management/internal/core/teacher"
	"github.com/DGonNine/teacher-management/internal/database"
	"github.com/DGonNine/teacher-management/internal/services/storage"
	"github.com/DGonNine/teacher-management/pkg/logger"
)

func main() {
	if err := config.Init(configPath()); err != nil {
		logger.Fatal(err, "failed to load config")
	}
	logger.Configure(config.Cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Init()
	if err != nil {
		logger.Fatal(err, "%v: connect failed", config.ModuleDatabase)
	}
	defer database.Close()

	if config.Cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			logger.Fatal(err, "%v: migrate failed", config.ModuleDatabase)
		}
	}

	images, err := storage.New(ctx, config.Cfg)
	if err != nil {
		logger.Fatal(err, "%v: storage init failed", config.ModuleS3)
	}

	types := lookup.NewTeacherTypeRepository(db)
	levels := lookup.NewEducationLevelRepository(db)
	svc := teacher.NewService(teacher.NewRepository(db), types, levels)

	app := api.NewApp(config.Cfg, api.Deps{
		DB:              db,
		Teachers:        svc,
		TeacherTypes:    types,
		EducationLevels: levels,
		Images:          images,
	})

	go func() {
		<-ctx.Done()
		timeout := time.Duration(config.Cfg.Server.ShutdownTimeout) * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error(err, "%v: shutdown error", config.ModuleServer)
		}
	}()

	addr := fmt.Sprintf(":%d", config.Cfg.Server.Port)
	logger.Info("%v: listening on %s", config.ModuleServer, addr)
	if err := app.Listen(addr); err != nil {
		logger.Error(err, "server error")
	}
}

func configPath() string {
	if p := os.Getenv("APP_CONFIG_FILE"); p != "" {
		return p
	}
	return "config.yaml"
}
