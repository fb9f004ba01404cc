package models

import (
	"time"
)

// Survey aggregate targets
const (
	SurveyTargetCO = "CO"
	SurveyTargetPO = "PO"
)

// SurveyAggregate is the precomputed indirect (survey) score of one CO or PO
type SurveyAggregate struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	TargetType    string    `json:"target_type" gorm:"type:varchar(2);uniqueIndex:idx_survey_target;not null"` // CO, PO
	TargetID      uint      `json:"target_id" gorm:"uniqueIndex:idx_survey_target;not null"`
	AverageScore  float64   `json:"average_score"`
	ResponseCount int       `json:"response_count"`
	Source        string    `json:"source" gorm:"type:varchar(16);default:'MANUAL'"` // MANUAL, SYNC
	SyncedAt      time.Time `json:"synced_at"`
}
