package models

import (
	"time"
)

// AttainmentLevel is the persisted form of a discrete attainment level
type AttainmentLevel string

const (
	Level0 AttainmentLevel = "LEVEL_0"
	Level1 AttainmentLevel = "LEVEL_1"
	Level2 AttainmentLevel = "LEVEL_2"
	Level3 AttainmentLevel = "LEVEL_3"
)

// COAttainment is derived state, upserted by course_outcome_id on every recalculation
type COAttainment struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	CourseOutcomeID uint            `json:"course_outcome_id" gorm:"uniqueIndex;not null"`
	IA1Level        int             `json:"ia1_level" gorm:"not null"`
	IA2Level        int             `json:"ia2_level" gorm:"not null"`
	EndSemLevel     int             `json:"end_sem_level" gorm:"not null"`
	DirectScore     float64         `json:"direct_score"`
	IndirectScore   float64         `json:"indirect_score"`
	FinalScore      float64         `json:"final_score"`
	Level           AttainmentLevel `json:"level" gorm:"type:varchar(10);not null;default:'LEVEL_0'"`
	CalculatedAt    time.Time       `json:"calculated_at"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// POAttainment is derived state, upserted by program_outcome_id on every recalculation
type POAttainment struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	ProgramOutcomeID uint      `json:"program_outcome_id" gorm:"uniqueIndex;not null"`
	DirectScore      float64   `json:"direct_score"`
	IndirectScore    float64   `json:"indirect_score"`
	FinalScore       float64   `json:"final_score"`
	CalculatedAt     time.Time `json:"calculated_at"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (COAttainment) TableName() string {
	return "co_attainments"
}

func (POAttainment) TableName() string {
	return "po_attainments"
}
