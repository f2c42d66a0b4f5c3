package teacher_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DGonNine/teacher-management/internal/core/teacher"
	"github.com/DGonNine/teacher-management/internal/core/teacher/teachertest"
	"github.com/DGonNine/teacher-management/internal/database/model"
	"github.com/DGonNine/teacher-management/pkg/apperror"

	"github.com/shopspring/decimal"
)

func annLee() teacher.Request {
	return teacher.Request{
		TeacherID:        "T1",
		FirstName:        "Ann",
		LastName:         "Lee",
		TeacherTypeID:    teachertest.IntPtr(1),
		EducationLevelID: teachertest.IntPtr(2),
		BaseSalary:       decimal.NewFromInt(500),
		StartDate:        "2024-01-01",
	}
}

func newService(store *teachertest.Store) *teacher.Service {
	return teacher.NewService(store, teachertest.DefaultTypes(), teachertest.DefaultLevels())
}

func TestCreate_ResolvesReferencesAndPersists(t *testing.T) {
	store := teachertest.NewStore()
	svc := newService(store)

	created, err := svc.Create(context.Background(), annLee())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.TeacherID != "T1" || created.TeacherType.TypeName != "Full-time" || created.EducationLevel.LevelName != "Master" {
		t.Fatalf("unexpected teacher: %+v", created)
	}

	got, err := svc.Get(context.Background(), "T1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FirstName != "Ann" || got.LastName != "Lee" || !got.BaseSalary.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("stored fields differ: %+v", got)
	}
	if got.StartDate == nil || time.Time(*got.StartDate).Format(teacher.DateLayout) != "2024-01-01" {
		t.Fatalf("unexpected start date: %v", got.StartDate)
	}
	if got.TeacherTypeID != 1 || got.EducationLevelID != 2 {
		t.Fatalf("unexpected references: %d/%d", got.TeacherTypeID, got.EducationLevelID)
	}
}

func TestCreate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*teacher.Request)
		want   error
		kind   apperror.Kind
	}{
		{
			name:   "unknown teacher type",
			mutate: func(r *teacher.Request) { r.TeacherTypeID = teachertest.IntPtr(99) },
			want:   teacher.ErrInvalidTeacherType,
			kind:   apperror.KindBadRequest,
		},
		{
			name:   "unknown education level",
			mutate: func(r *teacher.Request) { r.EducationLevelID = teachertest.IntPtr(99) },
			want:   teacher.ErrInvalidEducationLevel,
			kind:   apperror.KindBadRequest,
		},
		{
			name:   "missing teacher type",
			mutate: func(r *teacher.Request) { r.TeacherTypeID = nil },
			want:   teacher.ErrMissingReference,
			kind:   apperror.KindBadRequest,
		},
		{
			name:   "blank id",
			mutate: func(r *teacher.Request) { r.TeacherID = "  " },
			kind:   apperror.KindBadRequest,
		},
		{
			name:   "bad date",
			mutate: func(r *teacher.Request) { r.StartDate = "01/01/2024" },
			kind:   apperror.KindBadRequest,
		},
		{
			name:   "negative salary",
			mutate: func(r *teacher.Request) { r.BaseSalary = decimal.NewFromInt(-1) },
			kind:   apperror.KindBadRequest,
		},
		{
			name:   "id too long",
			mutate: func(r *teacher.Request) { r.TeacherID = "T123456789012345678901" },
			kind:   apperror.KindBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := teachertest.NewStore()
			req := annLee()
			tt.mutate(&req)

			_, err := newService(store).Create(context.Background(), req)
			if err == nil {
				t.Fatalf("expected error")
			}
			if got := apperror.KindOf(err); got != tt.kind {
				t.Fatalf("kind = %v, want %v (%v)", got, tt.kind, err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if store.Len() != 0 {
				t.Fatalf("nothing should be stored")
			}
		})
	}
}

func TestCreate_StoresTrimmedID(t *testing.T) {
	store := teachertest.NewStore()
	svc := newService(store)

	req := annLee()
	req.TeacherID = "  T1234567890123456789  "
	created, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("twenty characters after trimming should be accepted: %v", err)
	}
	if created.TeacherID != "T1234567890123456789" {
		t.Fatalf("unexpected id %q", created.TeacherID)
	}
	if _, err := svc.Get(context.Background(), "T1234567890123456789"); err != nil {
		t.Fatalf("get trimmed id: %v", err)
	}
}

func TestCreate_DuplicateIsConflict(t *testing.T) {
	store := teachertest.NewStore()
	svc := newService(store)
	if _, err := svc.Create(context.Background(), annLee()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(context.Background(), annLee())
	if !errors.Is(err, teacher.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreate_StoreFailureIsInternal(t *testing.T) {
	store := teachertest.NewStore()
	store.Fail = true
	_, err := newService(store).Create(context.Background(), annLee())
	if apperror.KindOf(err) != apperror.KindInternal || !errors.Is(err, teachertest.ErrInjected) {
		t.Fatalf("expected internal wrapping the store error, got %v", err)
	}
}

func existing() model.Teacher {
	return model.Teacher{
		TeacherID:        "T1",
		FirstName:        "Ann",
		LastName:         "Lee",
		BaseSalary:       decimal.NewFromInt(500),
		TeacherTypeID:    1,
		TeacherType:      model.TeacherType{ID: 1, TypeName: "Full-time"},
		EducationLevelID: 2,
		EducationLevel:   model.EducationLevel{ID: 2, LevelName: "Master"},
	}
}

func TestUpdate_OverwritesMutableFieldsOnly(t *testing.T) {
	store := teachertest.NewStore(existing())
	req := teacher.Request{
		TeacherID:        "T2",
		FirstName:        "Anna",
		LastName:         "Leeds",
		Image:            "teachers/anna.png",
		BaseSalary:       decimal.RequireFromString("750.50"),
		StartDate:        "2025-02-03",
		TeacherTypeID:    teachertest.IntPtr(2),
		EducationLevelID: teachertest.IntPtr(1),
	}

	updated, err := newService(store).Update(context.Background(), "T1", req)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.TeacherID != "T1" {
		t.Fatalf("id must not change, got %s", updated.TeacherID)
	}
	got, _ := store.Get("T1")
	if got.FirstName != "Anna" || got.LastName != "Leeds" || got.Image != "teachers/anna.png" {
		t.Fatalf("fields not overwritten: %+v", got)
	}
	if got.TeacherType.TypeName != "Part-time" || got.EducationLevel.LevelName != "Bachelor" {
		t.Fatalf("references not replaced: %+v", got)
	}
	if _, ok := store.Get("T2"); ok {
		t.Fatalf("body teacherId must be ignored")
	}
}

func TestUpdate_MissingTeacherIsNotFoundAndCreatesNothing(t *testing.T) {
	store := teachertest.NewStore()
	_, err := newService(store).Update(context.Background(), "nope", annLee())
	if !errors.Is(err, teacher.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("update must not create a record")
	}
}

func TestUpdate_MissingEducationLevelLeavesRecordUnchanged(t *testing.T) {
	store := teachertest.NewStore(existing())
	req := annLee()
	req.FirstName = "Changed"
	req.EducationLevelID = nil

	_, err := newService(store).Update(context.Background(), "T1", req)
	if !errors.Is(err, teacher.ErrMissingReference) {
		t.Fatalf("expected missing reference, got %v", err)
	}
	got, _ := store.Get("T1")
	if got.FirstName != "Ann" || store.Saves != 0 {
		t.Fatalf("record must stay unchanged, got %+v (saves=%d)", got, store.Saves)
	}
}

func TestUpdate_UnresolvableTypeIsBadRequest(t *testing.T) {
	store := teachertest.NewStore(existing())
	req := annLee()
	req.TeacherTypeID = teachertest.IntPtr(42)

	_, err := newService(store).Update(context.Background(), "T1", req)
	if !errors.Is(err, teacher.ErrInvalidTeacherType) {
		t.Fatalf("expected invalid teacher type, got %v", err)
	}
}

func TestDelete_MissingIsNotAnError(t *testing.T) {
	store := teachertest.NewStore(existing())
	svc := newService(store)
	if err := svc.Delete(context.Background(), "ghost"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if err := svc.Delete(context.Background(), "T1"); err != nil {
		t.Fatalf("delete existing: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store")
	}
}

func TestSearches(t *testing.T) {
	other := existing()
	other.TeacherID = "T2"
	other.LastName = "Nguyen"
	other.TeacherTypeID = 2
	other.EducationLevelID = 1
	store := teachertest.NewStore(existing(), other)
	svc := newService(store)
	ctx := context.Background()

	byName, err := svc.SearchByLastName(ctx, "lee")
	if err != nil || len(byName) != 1 || byName[0].TeacherID != "T1" {
		t.Fatalf("by last name: %v %+v", err, byName)
	}
	all, err := svc.SearchByLastName(ctx, " ")
	if err != nil || len(all) != 2 {
		t.Fatalf("blank last name should match everyone: %v %+v", err, all)
	}

	byType, err := svc.SearchByTeacherType(ctx, 2)
	if err != nil || len(byType) != 1 || byType[0].TeacherID != "T2" {
		t.Fatalf("by type: %v %+v", err, byType)
	}

	byLevel, err := svc.SearchByEducationLevel(ctx, 7)
	if err != nil || len(byLevel) != 0 || byLevel == nil {
		t.Fatalf("unknown level should give an empty, non-nil slice: %v %#v", err, byLevel)
	}
}

func TestSetImage(t *testing.T) {
	store := teachertest.NewStore(existing())
	svc := newService(store)

	updated, err := svc.SetImage(context.Background(), "T1", "s3://images/teachers/abc.png")
	if err != nil {
		t.Fatalf("set image: %v", err)
	}
	if updated.Image != "s3://images/teachers/abc.png" {
		t.Fatalf("unexpected image %q", updated.Image)
	}
	if _, err := svc.SetImage(context.Background(), "ghost", "x"); !errors.Is(err, teacher.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
