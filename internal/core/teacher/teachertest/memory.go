// Package teachertest provides in-memory collaborators for teacher.Service.
package teachertest

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/DGonNine/teacher-management/internal/core/teacher"
	"github.com/DGonNine/teacher-management/internal/database/model"
)

// ErrInjected is returned by collaborators configured to fail.
var ErrInjected = errors.New("injected store failure")

// Store is a map-backed teacher.Store. Set Fail to make every call error.
type Store struct {
	mu       sync.Mutex
	teachers map[string]model.Teacher
	Fail     bool
	Saves    int
}

func NewStore(seed ...model.Teacher) *Store {
	s := &Store{teachers: make(map[string]model.Teacher)}
	for _, t := range seed {
		s.teachers[t.TeacherID] = t
	}
	return s
}

func (s *Store) sorted(keep func(model.Teacher) bool) []model.Teacher {
	out := make([]model.Teacher, 0, len(s.teachers))
	for _, t := range s.teachers {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeacherID < out[j].TeacherID })
	return out
}

func (s *Store) FindAll(ctx context.Context) ([]model.Teacher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return nil, ErrInjected
	}
	return s.sorted(func(model.Teacher) bool { return true }), nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*model.Teacher, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return nil, false, ErrInjected
	}
	t, ok := s.teachers[id]
	if !ok {
		return nil, false, nil
	}
	return &t, true, nil
}

func (s *Store) Create(ctx context.Context, t *model.Teacher) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return ErrInjected
	}
	if _, ok := s.teachers[t.TeacherID]; ok {
		return teacher.ErrDuplicateTeacher
	}
	s.teachers[t.TeacherID] = *t
	s.Saves++
	return nil
}

func (s *Store) Save(ctx context.Context, t *model.Teacher) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return ErrInjected
	}
	s.teachers[t.TeacherID] = *t
	s.Saves++
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return ErrInjected
	}
	delete(s.teachers, id)
	return nil
}

func (s *Store) FindByLastName(ctx context.Context, lastName string) ([]model.Teacher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return nil, ErrInjected
	}
	needle := strings.ToLower(lastName)
	return s.sorted(func(t model.Teacher) bool {
		return strings.Contains(strings.ToLower(t.LastName), needle)
	}), nil
}

func (s *Store) FindByTeacherType(ctx context.Context, typeID int) ([]model.Teacher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return nil, ErrInjected
	}
	return s.sorted(func(t model.Teacher) bool { return t.TeacherTypeID == typeID }), nil
}

func (s *Store) FindByEducationLevel(ctx context.Context, levelID int) ([]model.Teacher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return nil, ErrInjected
	}
	return s.sorted(func(t model.Teacher) bool { return t.EducationLevelID == levelID }), nil
}

// Get returns the stored copy of a teacher, for assertions.
func (s *Store) Get(id string) (model.Teacher, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.teachers[id]
	return t, ok
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.teachers)
}

// Types is a map-backed teacher.TypeLookup.
type Types map[int]model.TeacherType

func (m Types) FindByID(ctx context.Context, id int) (*model.TeacherType, bool, error) {
	t, ok := m[id]
	if !ok {
		return nil, false, nil
	}
	return &t, true, nil
}

func (m Types) List(ctx context.Context) ([]model.TeacherType, error) {
	out := make([]model.TeacherType, 0, len(m))
	for _, t := range m {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Levels is a map-backed teacher.LevelLookup.
type Levels map[int]model.EducationLevel

func (m Levels) FindByID(ctx context.Context, id int) (*model.EducationLevel, bool, error) {
	l, ok := m[id]
	if !ok {
		return nil, false, nil
	}
	return &l, true, nil
}

func (m Levels) List(ctx context.Context) ([]model.EducationLevel, error) {
	out := make([]model.EducationLevel, 0, len(m))
	for _, l := range m {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// DefaultTypes returns TeacherType 1 ("Full-time") and 2 ("Part-time").
func DefaultTypes() Types {
	return Types{
		1: {ID: 1, TypeName: "Full-time"},
		2: {ID: 2, TypeName: "Part-time"},
	}
}

// DefaultLevels returns EducationLevel 1 ("Bachelor") and 2 ("Master").
func DefaultLevels() Levels {
	return Levels{
		1: {ID: 1, LevelName: "Bachelor"},
		2: {ID: 2, LevelName: "Master"},
	}
}

// IntPtr is a small helper for request reference ids.
func IntPtr(v int) *int { return &v }
