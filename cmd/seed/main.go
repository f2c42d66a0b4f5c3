package main

import (
	"context"
	"os"
	"time"

	"github.com/DGonNine/teacher-management/config"
	"github.com/DGonNine/teacher-management/internal/core/lookup"
	"github.com/DGonNine/teacher-management/internal/database"
	"github.com/DGonNine/teacher-management/pkg/logger"

	"gorm.io/gorm"
)

// connectWithRetry keeps dialing while the database container boots.
func connectWithRetry(cfg config.Config, attempts int, delay time.Duration) (*gorm.DB, error) {
	var lastErr error
	for i := 0; i < attempts; i++ {
		db, err := database.Connect(cfg)
		if err == nil {
			return db, nil
		}
		lastErr = err
		logger.Warn("%v: attempt %d/%d failed: %v", config.ModuleSeed, i+1, attempts, err)
		time.Sleep(delay)
	}
	return nil, lastErr
}

func main() {
	path := "config.yaml"
	if p := os.Getenv("APP_CONFIG_FILE"); p != "" {
		path = p
	}
	if err := config.Init(path); err != nil {
		logger.Fatal(err, "failed to load config")
	}
	logger.Configure(config.Cfg)

	db, err := connectWithRetry(config.Cfg, 20, 2*time.Second)
	if err != nil {
		logger.Fatal(err, "%v: database unreachable", config.ModuleSeed)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal(err, "%v: migrate failed", config.ModuleSeed)
	}
	created, err := lookup.Seed(ctx, db, lookup.DefaultTeacherTypes, lookup.DefaultEducationLevels)
	if err != nil {
		logger.Fatal(err, "%v: seed failed", config.ModuleSeed)
	}
	logger.Info("%v: seeded %d reference rows", config.ModuleSeed, created)
}
