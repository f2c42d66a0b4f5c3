package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/DGonNine/teacher-management/config"
	"github.com/DGonNine/teacher-management/internal/database/model"
	"github.com/DGonNine/teacher-management/pkg/logger"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

var (
	DB *gorm.DB
	mu sync.Mutex
)

func dialector(driver, dsn string) gorm.Dialector {
	if driver == config.DriverPostgres {
		return postgres.Open(dsn)
	}
	return mysql.Open(dsn)
}

// Connect opens the DB, registers read replicas and applies pool configuration.
func Connect(cfg config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(dialector(cfg.Database.Driver, cfg.Dns), &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(logger.GetLogger(), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Database.Driver, err)
	}

	lifetime := time.Duration(cfg.Database.MaxLifetime) * time.Minute

	if len(cfg.Database.Replicas) > 0 {
		replicas := make([]gorm.Dialector, 0, len(cfg.Database.Replicas))
		for _, dsn := range cfg.Database.Replicas {
			replicas = append(replicas, dialector(cfg.Database.Driver, dsn))
		}
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		}).
			SetMaxIdleConns(cfg.Database.MaxIdleConns).
			SetMaxOpenConns(cfg.Database.MaxOpenConns).
			SetConnMaxIdleTime(lifetime).
			SetConnMaxLifetime(lifetime)
		if err := db.Use(resolver); err != nil {
			return nil, fmt.Errorf("register replicas: %w", err)
		}
		logger.Info("%v: %d read replica(s) registered", config.ModuleDatabase, len(replicas))
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxIdleTime(lifetime)
	sqlDB.SetConnMaxLifetime(lifetime)

	return db, nil
}

// Init connects with the global configuration and stores the handle in DB.
func Init() (*gorm.DB, error) {
	mu.Lock()
	defer mu.Unlock()
	db, err := Connect(config.Cfg)
	if err != nil {
		logger.Error(err, "%v: failed to connect to database", config.ModuleDatabase)
		return nil, err
	}
	DB = db
	return db, nil
}

// Migrate creates or updates the tables of every model.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Ping checks the pool behind db. It never replaces or closes the pool.
func Ping(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("database not initialized")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the pool behind DB.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	DB = nil
	return sqlDB.Close()
}
