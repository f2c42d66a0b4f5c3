package lookup_test

import (
	"context"
	"testing"

	"github.com/DGonNine/teacher-management/internal/core/lookup"
	"github.com/DGonNine/teacher-management/internal/database/databasetest"
	"github.com/DGonNine/teacher-management/internal/database/model"
)

func TestSeedIsIdempotent(t *testing.T) {
	db := databasetest.Open(t)
	ctx := context.Background()

	created, err := lookup.Seed(ctx, db, lookup.DefaultTeacherTypes, lookup.DefaultEducationLevels)
	if err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if created != 6 {
		t.Fatalf("first seed created %d rows, want 6", created)
	}

	extra := append([]model.TeacherType{{ID: 4, TypeName: "Adjunct"}}, lookup.DefaultTeacherTypes...)
	created, err = lookup.Seed(ctx, db, extra, lookup.DefaultEducationLevels)
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if created != 1 {
		t.Fatalf("second seed created %d rows, want 1", created)
	}

	types, err := lookup.NewTeacherTypeRepository(db).List(ctx)
	if err != nil || len(types) != 4 {
		t.Fatalf("list types: %v %+v", err, types)
	}
}

func TestRepositories(t *testing.T) {
	db := databasetest.Open(t)
	ctx := context.Background()
	if _, err := lookup.Seed(ctx, db, lookup.DefaultTeacherTypes, lookup.DefaultEducationLevels); err != nil {
		t.Fatalf("seed: %v", err)
	}

	types := lookup.NewTeacherTypeRepository(db)
	typ, found, err := types.FindByID(ctx, 3)
	if err != nil || !found || typ.TypeName != "Visiting" {
		t.Fatalf("type 3: %+v found=%v err=%v", typ, found, err)
	}
	if _, found, err := types.FindByID(ctx, 99); err != nil || found {
		t.Fatalf("type 99: found=%v err=%v", found, err)
	}

	levels := lookup.NewEducationLevelRepository(db)
	all, err := levels.List(ctx)
	if err != nil || len(all) != 3 || all[0].LevelName != "Bachelor" || all[2].LevelName != "Doctorate" {
		t.Fatalf("levels: %+v %v", all, err)
	}
	if _, found, err := levels.FindByID(ctx, 0); err != nil || found {
		t.Fatalf("level 0: found=%v err=%v", found, err)
	}
}
