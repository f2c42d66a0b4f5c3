package teacher

import (
	"encoding/json"
	"time"

	"github.com/DGonNine/teacher-management/internal/core/teacher"
	"github.com/DGonNine/teacher-management/internal/database/model"
)

// Response is the wire shape of a teacher, with both references nested.
type Response struct {
	TeacherID      string               `json:"teacherId"`
	FirstName      string               `json:"firstName"`
	LastName       string               `json:"lastName"`
	Image          string               `json:"image"`
	BaseSalary     json.Number          `json:"baseSalary"`
	StartDate      *string              `json:"startDate"`
	TeacherType    model.TeacherType    `json:"teacherType"`
	EducationLevel model.EducationLevel `json:"educationLevel"`
}

func NewResponse(t *model.Teacher) Response {
	resp := Response{
		TeacherID:      t.TeacherID,
		FirstName:      t.FirstName,
		LastName:       t.LastName,
		Image:          t.Image,
		BaseSalary:     json.Number(t.BaseSalary.StringFixed(2)),
		TeacherType:    t.TeacherType,
		EducationLevel: t.EducationLevel,
	}
	if t.StartDate != nil {
		s := time.Time(*t.StartDate).Format(teacher.DateLayout)
		resp.StartDate = &s
	}
	return resp
}

func NewResponses(teachers []model.Teacher) []Response {
	out := make([]Response, 0, len(teachers))
	for i := range teachers {
		out = append(out, NewResponse(&teachers[i]))
	}
	return out
}
