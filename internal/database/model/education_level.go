package model

type EducationLevel struct {
	ID        int    `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	LevelName string `json:"levelName" gorm:"column:level_name;size:100;not null;uniqueIndex"`
}

func (EducationLevel) TableName() string { return "education_levels" }
