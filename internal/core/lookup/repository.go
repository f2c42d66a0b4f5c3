package lookup

import (
	"context"

	"github.com/DGonNine/teacher-management/internal/database"
	"github.com/DGonNine/teacher-management/internal/database/model"

	"gorm.io/gorm"
)

// TeacherTypeRepository reads teacher types.
type TeacherTypeRepository struct {
	db *gorm.DB
}

func NewTeacherTypeRepository(db *gorm.DB) *TeacherTypeRepository {
	return &TeacherTypeRepository{db: db}
}

func (r *TeacherTypeRepository) FindByID(ctx context.Context, id int) (*model.TeacherType, bool, error) {
	return database.FindFirst[model.TeacherType](ctx, r.db, "id = ?", id)
}

func (r *TeacherTypeRepository) List(ctx context.Context) ([]model.TeacherType, error) {
	return database.FindAll[model.TeacherType](ctx, r.db, "id")
}

// EducationLevelRepository reads education levels.
type EducationLevelRepository struct {
	db *gorm.DB
}

func NewEducationLevelRepository(db *gorm.DB) *EducationLevelRepository {
	return &EducationLevelRepository{db: db}
}

func (r *EducationLevelRepository) FindByID(ctx context.Context, id int) (*model.EducationLevel, bool, error) {
	return database.FindFirst[model.EducationLevel](ctx, r.db, "id = ?", id)
}

func (r *EducationLevelRepository) List(ctx context.Context) ([]model.EducationLevel, error) {
	return database.FindAll[model.EducationLevel](ctx, r.db, "id")
}
