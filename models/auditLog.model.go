package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Audit actions
const (
	AuditPORecalculated = "PO_RECALCULATED"
)

// Actor used for scheduler-triggered runs
const ActorSystem = "SYSTEM"

// AuditLog records one recalculation run; Summary carries the per-PO results
type AuditLog struct {
	ID          uuid.UUID      `json:"id" gorm:"type:varchar(36);primaryKey"`
	Action      string         `json:"action" gorm:"type:varchar(30);index;not null"`
	EntityType  string         `json:"entity_type" gorm:"type:varchar(20);not null"`
	EntityID    uint           `json:"entity_id" gorm:"index"`
	SemesterID  uint           `json:"semester_id"`
	TriggeredBy string         `json:"triggered_by" gorm:"not null"`
	Summary     datatypes.JSON `json:"summary"`
	CreatedAt   time.Time      `json:"created_at" gorm:"index"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}
