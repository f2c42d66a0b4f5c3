package teacher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DGonNine/teacher-management/config"
	"github.com/DGonNine/teacher-management/internal/database/model"
	"github.com/DGonNine/teacher-management/pkg/apperror"
	"github.com/DGonNine/teacher-management/pkg/apperror/status"
	"github.com/DGonNine/teacher-management/pkg/logger"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

// Sentinels for errors.Is checks; messages on returned errors may carry more detail.
var (
	ErrNotFound              = apperror.NotFoundf(status.TeacherNotFound, "teacher not found")
	ErrInvalidTeacherType    = apperror.BadRequestf(status.InvalidTeacherType, "invalid teacher type id")
	ErrInvalidEducationLevel = apperror.BadRequestf(status.InvalidEducationLevel, "invalid education level id")
	ErrMissingReference      = apperror.BadRequestf(status.MissingReference, "teacherTypeId and educationLevelId are required")
	ErrConflict              = apperror.Conflictf(status.DuplicateTeacher, "teacher already exists")
)

// Service builds and mutates teachers from requests. It holds no state of its own.
type Service struct {
	store    Store
	types    TypeLookup
	levels   LevelLookup
	validate *validator.Validate
}

func NewService(store Store, types TypeLookup, levels LevelLookup) *Service {
	return &Service{
		store:    store,
		types:    types,
		levels:   levels,
		validate: validator.New(),
	}
}

func (s *Service) List(ctx context.Context) ([]model.Teacher, error) {
	teachers, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal("list teachers", err)
	}
	return teachers, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Teacher, error) {
	t, found, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("get teacher", err)
	}
	if !found {
		return nil, apperror.NotFoundf(status.TeacherNotFound, "teacher %s not found", id)
	}
	return t, nil
}

// Create persists a new teacher. Unresolvable references are a bad request.
func (s *Service) Create(ctx context.Context, req Request) (*model.Teacher, error) {
	id := strings.TrimSpace(req.TeacherID)
	if id == "" {
		return nil, s.reject("create", req, apperror.BadRequestf(status.MissingParams, "teacherId is required"))
	}
	req.TeacherID = id
	if err := s.checkRequest(req); err != nil {
		return nil, s.reject("create", req, err)
	}
	typ, lvl, err := s.resolveReferences(ctx, req)
	if err != nil {
		return nil, s.reject("create", req, err)
	}
	startDate, err := parseStartDate(req.StartDate)
	if err != nil {
		return nil, s.reject("create", req, err)
	}

	t := &model.Teacher{TeacherID: id}
	apply(t, req, typ, lvl, startDate)

	if err := s.store.Create(ctx, t); err != nil {
		if errors.Is(err, ErrDuplicateTeacher) {
			return nil, s.reject("create", req, apperror.Conflictf(status.DuplicateTeacher, "teacher %s already exists", id))
		}
		return nil, apperror.Internal("create teacher", err)
	}
	return t, nil
}

// Update overwrites every mutable field of an existing teacher. Nothing is
// written unless the teacher exists and both references resolve.
func (s *Service) Update(ctx context.Context, id string, req Request) (*model.Teacher, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkRequest(req); err != nil {
		return nil, s.reject("update", req, err)
	}
	typ, lvl, err := s.resolveReferences(ctx, req)
	if err != nil {
		return nil, s.reject("update", req, err)
	}
	startDate, err := parseStartDate(req.StartDate)
	if err != nil {
		return nil, s.reject("update", req, err)
	}

	apply(existing, req, typ, lvl, startDate)

	if err := s.store.Save(ctx, existing); err != nil {
		return nil, apperror.Internal("update teacher", err)
	}
	return existing, nil
}

// SetImage records a stored image path on an existing teacher.
func (s *Service) SetImage(ctx context.Context, id string, path string) (*model.Teacher, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Image = path
	if err := s.store.Save(ctx, existing); err != nil {
		return nil, apperror.Internal("set teacher image", err)
	}
	return existing, nil
}

// Delete removes the teacher if present; a missing id is not an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return apperror.Internal("delete teacher", err)
	}
	return nil
}

// SearchByLastName matches lastName as a case-insensitive substring. A blank
// lastName matches every teacher.
func (s *Service) SearchByLastName(ctx context.Context, lastName string) ([]model.Teacher, error) {
	lastName = strings.TrimSpace(lastName)
	if lastName == "" {
		return s.List(ctx)
	}
	teachers, err := s.store.FindByLastName(ctx, lastName)
	if err != nil {
		return nil, apperror.Internal("search teachers by last name", err)
	}
	return teachers, nil
}

func (s *Service) SearchByTeacherType(ctx context.Context, typeID int) ([]model.Teacher, error) {
	teachers, err := s.store.FindByTeacherType(ctx, typeID)
	if err != nil {
		return nil, apperror.Internal("search teachers by type", err)
	}
	return teachers, nil
}

func (s *Service) SearchByEducationLevel(ctx context.Context, levelID int) ([]model.Teacher, error) {
	teachers, err := s.store.FindByEducationLevel(ctx, levelID)
	if err != nil {
		return nil, apperror.Internal("search teachers by education level", err)
	}
	return teachers, nil
}

func (s *Service) checkRequest(req Request) error {
	if err := s.validate.Struct(req); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			fields := make([]string, 0, len(errs))
			for _, e := range errs {
				fields = append(fields, fmt.Sprintf("%s failed '%s'", e.Field(), e.Tag()))
			}
			return apperror.BadRequestf(status.InvalidRequestBody, "invalid teacher: %s", strings.Join(fields, ", "))
		}
		return apperror.BadRequestf(status.InvalidRequestBody, "invalid teacher: %v", err)
	}
	if req.BaseSalary.IsNegative() {
		return apperror.BadRequestf(status.InvalidRequestBody, "baseSalary must not be negative")
	}
	return nil
}

func (s *Service) resolveReferences(ctx context.Context, req Request) (*model.TeacherType, *model.EducationLevel, error) {
	if req.TeacherTypeID == nil || req.EducationLevelID == nil {
		return nil, nil, ErrMissingReference
	}
	typ, found, err := s.types.FindByID(ctx, *req.TeacherTypeID)
	if err != nil {
		return nil, nil, apperror.Internal("lookup teacher type", err)
	}
	if !found {
		return nil, nil, apperror.BadRequestf(status.InvalidTeacherType, "invalid teacher type id %d", *req.TeacherTypeID)
	}
	lvl, found, err := s.levels.FindByID(ctx, *req.EducationLevelID)
	if err != nil {
		return nil, nil, apperror.Internal("lookup education level", err)
	}
	if !found {
		return nil, nil, apperror.BadRequestf(status.InvalidEducationLevel, "invalid education level id %d", *req.EducationLevelID)
	}
	return typ, lvl, nil
}

func (s *Service) reject(op string, req Request, err error) error {
	fields := map[string]interface{}{
		"module":     config.ModuleTeacher,
		"op":         op,
		"teacher_id": req.TeacherID,
		"kind":       apperror.KindOf(err).String(),
		"error":      err.Error(),
	}
	if req.TeacherTypeID != nil {
		fields["teacher_type_id"] = *req.TeacherTypeID
	}
	if req.EducationLevelID != nil {
		fields["education_level_id"] = *req.EducationLevelID
	}
	logger.WithFields(fields).Warn("teacher request rejected")
	return err
}

func parseStartDate(raw string) (*datatypes.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, apperror.BadRequestf(status.InvalidRequestBody, "startDate must be YYYY-MM-DD")
	}
	d := datatypes.Date(parsed)
	return &d, nil
}

func apply(t *model.Teacher, req Request, typ *model.TeacherType, lvl *model.EducationLevel, startDate *datatypes.Date) {
	t.FirstName = req.FirstName
	t.LastName = req.LastName
	t.Image = req.Image
	t.BaseSalary = req.BaseSalary
	t.StartDate = startDate
	t.TeacherTypeID = typ.ID
	t.TeacherType = *typ
	t.EducationLevelID = lvl.ID
	t.EducationLevel = *lvl
}
