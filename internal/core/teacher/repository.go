package teacher

import (
	"context"
	"errors"

	"github.com/DGonNine/teacher-management/internal/database"
	"github.com/DGonNine/teacher-management/internal/database/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the gorm-backed Store.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) withRefs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("TeacherType").Preload("EducationLevel")
}

func (r *Repository) find(ctx context.Context, query interface{}, args ...interface{}) ([]model.Teacher, error) {
	out := make([]model.Teacher, 0)
	tx := r.withRefs(ctx)
	if query != nil {
		tx = tx.Where(query, args...)
	}
	if err := tx.Order("teacher_id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) FindAll(ctx context.Context) ([]model.Teacher, error) {
	return r.find(ctx, nil)
}

func (r *Repository) FindByID(ctx context.Context, id string) (*model.Teacher, bool, error) {
	return database.FindFirst[model.Teacher](ctx, r.withRefs(ctx), "teacher_id = ?", id)
}

func (r *Repository) Create(ctx context.Context, t *model.Teacher) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(t).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateTeacher
	}
	return err
}

// Save overwrites every mutable column of an existing row. The id never changes.
func (r *Repository) Save(ctx context.Context, t *model.Teacher) error {
	return r.db.WithContext(ctx).
		Model(&model.Teacher{TeacherID: t.TeacherID}).
		Select("first_name", "last_name", "image", "base_salary", "start_date", "teacher_type_id", "education_level_id").
		Omit(clause.Associations).
		Updates(t).Error
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	_, err := database.DeleteWhere[model.Teacher](ctx, r.db, "teacher_id = ?", id)
	return err
}

// FindByLastName matches case-insensitively anywhere in the last name.
func (r *Repository) FindByLastName(ctx context.Context, lastName string) ([]model.Teacher, error) {
	return r.find(ctx, "LOWER(last_name) LIKE LOWER(?) ESCAPE '"+database.LikeEscape+"'", database.ContainsPattern(lastName))
}

func (r *Repository) FindByTeacherType(ctx context.Context, typeID int) ([]model.Teacher, error) {
	return r.find(ctx, "teacher_type_id = ?", typeID)
}

func (r *Repository) FindByEducationLevel(ctx context.Context, levelID int) ([]model.Teacher, error) {
	return r.find(ctx, "education_level_id = ?", levelID)
}
