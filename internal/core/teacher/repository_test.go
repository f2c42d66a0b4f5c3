package teacher_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DGonNine/teacher-management/internal/core/teacher"
	"github.com/DGonNine/teacher-management/internal/database/databasetest"
	"github.com/DGonNine/teacher-management/internal/database/model"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newRepository(t *testing.T) (*teacher.Repository, *gorm.DB) {
	t.Helper()
	db := databasetest.Open(t)
	types := []model.TeacherType{{ID: 1, TypeName: "Full-time"}, {ID: 2, TypeName: "Part-time"}}
	levels := []model.EducationLevel{{ID: 1, LevelName: "Bachelor"}, {ID: 2, LevelName: "Master"}}
	if err := db.Create(&types).Error; err != nil {
		t.Fatalf("seed types: %v", err)
	}
	if err := db.Create(&levels).Error; err != nil {
		t.Fatalf("seed levels: %v", err)
	}
	return teacher.NewRepository(db), db
}

func row(id, lastName string, typeID, levelID int) *model.Teacher {
	return &model.Teacher{
		TeacherID:        id,
		FirstName:        "First " + id,
		LastName:         lastName,
		BaseSalary:       decimal.RequireFromString("1234.50"),
		TeacherTypeID:    typeID,
		EducationLevelID: levelID,
	}
}

func ids(teachers []model.Teacher) []string {
	out := make([]string, 0, len(teachers))
	for _, t := range teachers {
		out = append(out, t.TeacherID)
	}
	return out
}

func sameIDs(got []model.Teacher, want ...string) bool {
	g := ids(got)
	if len(g) != len(want) {
		return false
	}
	for i := range want {
		if g[i] != want[i] {
			return false
		}
	}
	return true
}

func TestRepository_CreateFindOrderAndPreload(t *testing.T) {
	repo, _ := newRepository(t)
	ctx := context.Background()

	start := datatypes.Date(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	t2 := row("T2", "Nguyen", 2, 1)
	t1 := row("T1", "Lee", 1, 2)
	t1.StartDate = &start
	for _, r := range []*model.Teacher{t2, t1} {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("create %s: %v", r.TeacherID, err)
		}
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if !sameIDs(all, "T1", "T2") {
		t.Fatalf("expected teacher_id order, got %v", ids(all))
	}

	got, found, err := repo.FindByID(ctx, "T1")
	if err != nil || !found {
		t.Fatalf("find T1: found=%v err=%v", found, err)
	}
	if got.TeacherType.TypeName != "Full-time" || got.EducationLevel.LevelName != "Master" {
		t.Fatalf("references not preloaded: %+v", got)
	}
	if !got.BaseSalary.Equal(decimal.RequireFromString("1234.50")) {
		t.Fatalf("salary = %s", got.BaseSalary)
	}
	if got.StartDate == nil || time.Time(*got.StartDate).Format(teacher.DateLayout) != "2024-01-01" {
		t.Fatalf("start date = %v", got.StartDate)
	}

	if _, found, err := repo.FindByID(ctx, "ghost"); err != nil || found {
		t.Fatalf("missing id: found=%v err=%v", found, err)
	}
}

func TestRepository_CreateDuplicate(t *testing.T) {
	repo, _ := newRepository(t)
	ctx := context.Background()

	if err := repo.Create(ctx, row("T1", "Lee", 1, 1)); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := repo.Create(ctx, row("T1", "Other", 1, 1))
	if !errors.Is(err, teacher.ErrDuplicateTeacher) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestRepository_WritesLeaveLookupRowsAlone(t *testing.T) {
	repo, db := newRepository(t)
	ctx := context.Background()

	r := row("T1", "Lee", 1, 1)
	r.TeacherType = model.TeacherType{ID: 1, TypeName: "Renamed"}
	if err := repo.Create(ctx, r); err != nil {
		t.Fatalf("create: %v", err)
	}

	r.FirstName = "Anna"
	r.Image = ""
	r.TeacherTypeID = 2
	r.TeacherType = model.TeacherType{ID: 2, TypeName: "Renamed too"}
	r.EducationLevelID = 2
	if err := repo.Save(ctx, r); err != nil {
		t.Fatalf("save: %v", err)
	}

	var types []model.TeacherType
	if err := db.Order("id").Find(&types).Error; err != nil {
		t.Fatalf("load types: %v", err)
	}
	if types[0].TypeName != "Full-time" || types[1].TypeName != "Part-time" {
		t.Fatalf("lookup rows were modified: %+v", types)
	}

	got, _, err := repo.FindByID(ctx, "T1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.FirstName != "Anna" || got.TeacherType.TypeName != "Part-time" || got.EducationLevel.LevelName != "Master" {
		t.Fatalf("save did not apply: %+v", got)
	}
}

func TestRepository_DeleteMissingIsNotAnError(t *testing.T) {
	repo, _ := newRepository(t)
	ctx := context.Background()

	if err := repo.Create(ctx, row("T1", "Lee", 1, 1)); err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, id := range []string{"T1", "T1", "ghost"} {
		if err := repo.Delete(ctx, id); err != nil {
			t.Fatalf("delete %s: %v", id, err)
		}
	}
	if all, _ := repo.FindAll(ctx); len(all) != 0 {
		t.Fatalf("expected no rows, got %v", ids(all))
	}
}

func TestRepository_Searches(t *testing.T) {
	repo, _ := newRepository(t)
	ctx := context.Background()

	for _, r := range []*model.Teacher{
		row("T1", "Lee", 1, 2),
		row("T2", "Ballee", 2, 2),
		row("T3", "Nguyen", 1, 1),
		row("T4", "50%", 2, 1),
		row("T5", "a_b", 2, 1),
		row("T6", "axb", 2, 1),
	} {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("create %s: %v", r.TeacherID, err)
		}
	}

	tests := []struct {
		lastName string
		want     []string
	}{
		{lastName: "LEE", want: []string{"T1", "T2"}},
		{lastName: "guy", want: []string{"T3"}},
		{lastName: "%", want: []string{"T4"}},
		{lastName: "_", want: []string{"T5"}},
		{lastName: "zzz", want: []string{}},
	}
	for _, tt := range tests {
		got, err := repo.FindByLastName(ctx, tt.lastName)
		if err != nil {
			t.Fatalf("by last name %q: %v", tt.lastName, err)
		}
		if !sameIDs(got, tt.want...) {
			t.Errorf("by last name %q: got %v, want %v", tt.lastName, ids(got), tt.want)
		}
	}

	byType, err := repo.FindByTeacherType(ctx, 1)
	if err != nil || !sameIDs(byType, "T1", "T3") {
		t.Fatalf("by type: %v %v", ids(byType), err)
	}
	byLevel, err := repo.FindByEducationLevel(ctx, 2)
	if err != nil || !sameIDs(byLevel, "T1", "T2") {
		t.Fatalf("by level: %v %v", ids(byLevel), err)
	}
	if none, err := repo.FindByEducationLevel(ctx, 9); err != nil || none == nil || len(none) != 0 {
		t.Fatalf("unknown level should give an empty slice: %#v %v", none, err)
	}
}
