package models

import (
	"gorm.io/gorm"
)

// Assessment types
const (
	AssessmentIA1    = "IA1"
	AssessmentIA2    = "IA2"
	AssessmentEndSem = "ENDSEM"
)

// AssessmentTypes lists every type the CO calculator averages over
var AssessmentTypes = []string{AssessmentIA1, AssessmentIA2, AssessmentEndSem}

// Assessment is one examination instrument of a course
type Assessment struct {
	gorm.Model
	CourseID  uint                 `json:"course_id" gorm:"index;not null"`
	Type      string               `json:"type" gorm:"type:varchar(10);index;not null"` // IA1, IA2, ENDSEM
	Name      string               `json:"name"`
	Questions []AssessmentQuestion `json:"questions,omitempty" gorm:"foreignKey:AssessmentID"`
	IsDeleted bool                 `json:"-" gorm:"default:false"`
}

// AssessmentQuestion is one scorable question; marks are attributed to its Course Outcome
type AssessmentQuestion struct {
	gorm.Model
	AssessmentID    uint    `json:"assessment_id" gorm:"index;not null"`
	QuestionCode    string  `json:"question_code" gorm:"type:varchar(32);not null"` // Q1, Q2a ...
	MaxMarks        float64 `json:"max_marks" gorm:"not null"`
	CourseOutcomeID *uint   `json:"course_outcome_id" gorm:"index"`
	IsDeleted       bool    `json:"-" gorm:"default:false"`
}
