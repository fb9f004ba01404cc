package models

import (
	"gorm.io/gorm"
)

// Program is a degree program owning a set of Program Outcomes
type Program struct {
	gorm.Model
	Code      string           `json:"code" gorm:"type:varchar(32);uniqueIndex;not null"`
	Name      string           `json:"name" gorm:"not null"`
	Outcomes  []ProgramOutcome `json:"outcomes,omitempty" gorm:"foreignKey:ProgramID"`
	IsDeleted bool             `json:"-" gorm:"default:false"`
}

// Semester groups the courses taught in one academic term
type Semester struct {
	gorm.Model
	Name      string `json:"name" gorm:"not null"`
	Year      int    `json:"year"`
	Term      int    `json:"term"` // 1..8
	IsActive  bool   `json:"is_active" gorm:"default:false"`
	IsDeleted bool   `json:"-" gorm:"default:false"`
}

// Course is one course of a program, taught in one semester
type Course struct {
	gorm.Model
	ProgramID  uint            `json:"program_id" gorm:"index;not null"`
	SemesterID uint            `json:"semester_id" gorm:"index;not null"`
	Code       string          `json:"code" gorm:"type:varchar(32);not null"`
	Name       string          `json:"name" gorm:"not null"`
	Outcomes   []CourseOutcome `json:"outcomes,omitempty" gorm:"foreignKey:CourseID"`
	IsDeleted  bool            `json:"-" gorm:"default:false"`
}

// CourseOutcome (CO) is a learning objective of one course
type CourseOutcome struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Code        string `json:"code" gorm:"type:varchar(16);not null"` // CO1, CO2 ...
	Description string `json:"description"`
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}

// ProgramOutcome (PO) is a learning objective of a whole program
type ProgramOutcome struct {
	gorm.Model
	ProgramID   uint   `json:"program_id" gorm:"index;not null"`
	Code        string `json:"code" gorm:"type:varchar(16);not null"` // PO1, PSO1 ...
	Description string `json:"description"`
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}

// CoPoMapping links a CO to a PO with a positive contribution weight (typically 1..3)
type CoPoMapping struct {
	gorm.Model
	CourseID         uint    `json:"course_id" gorm:"index;not null"`
	CourseOutcomeID  uint    `json:"course_outcome_id" gorm:"index;not null"`
	ProgramOutcomeID uint    `json:"program_outcome_id" gorm:"index;not null"`
	Value            float64 `json:"value" gorm:"not null"`
	IsDeleted        bool    `json:"-" gorm:"default:false"`

	Course Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}
