package lookup

import (
	"context"
	"fmt"

	"github.com/DGonNine/teacher-management/internal/database"
	"github.com/DGonNine/teacher-management/internal/database/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultTeacherTypes and DefaultEducationLevels are the reference rows the
// front-end expects on a fresh database.
var (
	DefaultTeacherTypes = []model.TeacherType{
		{ID: 1, TypeName: "Full-time"},
		{ID: 2, TypeName: "Part-time"},
		{ID: 3, TypeName: "Visiting"},
	}
	DefaultEducationLevels = []model.EducationLevel{
		{ID: 1, LevelName: "Bachelor"},
		{ID: 2, LevelName: "Master"},
		{ID: 3, LevelName: "Doctorate"},
	}
)

// Seed inserts the given reference rows, skipping ids that already exist,
// and reports how many rows were created.
func Seed(ctx context.Context, db *gorm.DB, types []model.TeacherType, levels []model.EducationLevel) (int64, error) {
	var created int64
	err := database.WithTx(ctx, db, func(tx *gorm.DB) error {
		if len(types) > 0 {
			rows := append([]model.TeacherType(nil), types...)
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
			if res.Error != nil {
				return fmt.Errorf("seed teacher types: %w", res.Error)
			}
			created += res.RowsAffected
		}
		if len(levels) > 0 {
			rows := append([]model.EducationLevel(nil), levels...)
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
			if res.Error != nil {
				return fmt.Errorf("seed education levels: %w", res.Error)
			}
			created += res.RowsAffected
		}
		return nil
	})
	return created, err
}
