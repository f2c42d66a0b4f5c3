package main

import (
	"log"

	"github.com/DGonNine/teacher-management/config"
	"github.com/DGonNine/teacher-management/internal/database"
	"github.com/DGonNine/teacher-management/internal/database/model"

	"gorm.io/gen"
)

func main() {
	if err := config.Init("config.yaml"); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(config.Cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:        "internal/database/query",
		ModelPkgPath:   "internal/database/model",
		Mode:           gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:  true,
		FieldCoverable: true,
	})

	g.UseDB(db)

	// Generate typed queries for the hand-written models
	g.ApplyBasic(model.All()...)

	g.Execute()
}
