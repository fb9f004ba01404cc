package models

import (
	"time"
)

// GlobalConfigID is the primary key of the singleton config row
const GlobalConfigID = 1

// GlobalConfig holds the process-wide attainment thresholds and weights.
// Nil threshold fields fall back to the calculator defaults (60/50/40, target 2.5).
// Weights have no column default so a zero weight is stored as zero.
type GlobalConfig struct {
	ID                   uint      `json:"id" gorm:"primaryKey"`
	CoTargetMarksPercent float64   `json:"co_target_marks_percent" gorm:"not null"`
	IA1Weightage         float64   `json:"ia1_weightage" gorm:"not null"`
	IA2Weightage         float64   `json:"ia2_weightage" gorm:"not null"`
	EndSemWeightage      float64   `json:"end_sem_weightage" gorm:"not null"`
	DirectWeightage      float64   `json:"direct_weightage" gorm:"not null"`
	IndirectWeightage    float64   `json:"indirect_weightage" gorm:"not null"`
	PoTargetLevel        *float64  `json:"po_target_level"`
	Level3Threshold      *float64  `json:"level3_threshold"`
	Level2Threshold      *float64  `json:"level2_threshold"`
	Level1Threshold      *float64  `json:"level1_threshold"`
	UpdatedBy            string    `json:"updated_by"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (GlobalConfig) TableName() string {
	return "global_config"
}
