package model

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Teacher is keyed by an externally assigned id. Both references are required.
type Teacher struct {
	TeacherID        string          `gorm:"column:teacher_id;primaryKey;size:20"`
	FirstName        string          `gorm:"column:first_name;size:50"`
	LastName         string          `gorm:"column:last_name;size:50;index"`
	Image            string          `gorm:"column:image;size:255"`
	BaseSalary       decimal.Decimal `gorm:"column:base_salary;type:decimal(12,2);not null;default:0"`
	StartDate        *datatypes.Date `gorm:"column:start_date"`
	TeacherTypeID    int             `gorm:"column:teacher_type_id;not null;index"`
	TeacherType      TeacherType     `gorm:"foreignKey:TeacherTypeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	EducationLevelID int             `gorm:"column:education_level_id;not null;index"`
	EducationLevel   EducationLevel  `gorm:"foreignKey:EducationLevelID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Teacher) TableName() string { return "teachers" }

// All lists every model managed by migrations and code generation.
func All() []interface{} {
	return []interface{}{&TeacherType{}, &EducationLevel{}, &Teacher{}}
}
