package teacher

import (
	"context"
	"errors"

	"github.com/DGonNine/teacher-management/internal/database/model"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of start dates.
const DateLayout = "2006-01-02"

// Request is the create/update payload. Reference ids are pointers so a
// missing field can be told apart from zero.
type Request struct {
	TeacherID        string          `json:"teacherId" validate:"max=20"`
	FirstName        string          `json:"firstName" validate:"max=50"`
	LastName         string          `json:"lastName" validate:"max=50"`
	Image            string          `json:"image" validate:"max=255"`
	BaseSalary       decimal.Decimal `json:"baseSalary"`
	StartDate        string          `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	TeacherTypeID    *int            `json:"teacherTypeId"`
	EducationLevelID *int            `json:"educationLevelId"`
}

// ErrDuplicateTeacher is returned by a Store when Create hits an existing id.
var ErrDuplicateTeacher = errors.New("teacher already exists")

// Store persists teachers. Reads return teachers with both references loaded.
type Store interface {
	FindAll(ctx context.Context) ([]model.Teacher, error)
	FindByID(ctx context.Context, id string) (*model.Teacher, bool, error)
	Create(ctx context.Context, t *model.Teacher) error
	Save(ctx context.Context, t *model.Teacher) error
	Delete(ctx context.Context, id string) error
	FindByLastName(ctx context.Context, lastName string) ([]model.Teacher, error)
	FindByTeacherType(ctx context.Context, typeID int) ([]model.Teacher, error)
	FindByEducationLevel(ctx context.Context, levelID int) ([]model.Teacher, error)
}

type TypeLookup interface {
	FindByID(ctx context.Context, id int) (*model.TeacherType, bool, error)
}

type LevelLookup interface {
	FindByID(ctx context.Context, id int) (*model.EducationLevel, bool, error)
}
