package model

// TeacherType classifies a teacher, e.g. full-time or visiting.
type TeacherType struct {
	ID       int    `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	TypeName string `json:"typeName" gorm:"column:type_name;size:100;not null;uniqueIndex"`
}

func (TeacherType) TableName() string { return "teacher_types" }
