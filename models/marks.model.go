package models

import (
	"time"

	"gorm.io/gorm"
)

// MarksUpload is one entry of an assessment's append-only upload log.
// The entry with the latest UploadedAt is the assessment's current marks.
type MarksUpload struct {
	gorm.Model
	AssessmentID uint      `json:"assessment_id" gorm:"index;not null"`
	UploadedBy   string    `json:"uploaded_by"`
	FileName     string    `json:"file_name"`
	FilePath     string    `json:"file_path"`
	RecordCount  int       `json:"record_count"`
	UploadedAt   time.Time `json:"uploaded_at" gorm:"index;not null"`
}

// StudentMark is one (student, question) mark within an upload
type StudentMark struct {
	ID            uint    `json:"id" gorm:"primaryKey"`
	MarksUploadID uint    `json:"marks_upload_id" gorm:"index;not null"`
	QuestionID    uint    `json:"question_id" gorm:"index;not null"`
	RollNo        string  `json:"roll_no" gorm:"type:varchar(64);index;not null"`
	Marks         float64 `json:"marks" gorm:"not null"`
}

// UploadLog is an assessment's uploads in any order
type UploadLog []MarksUpload

// Current returns the upload that supersedes all others: the latest UploadedAt,
// ties broken by the higher ID. Nil when the log is empty.
func (l UploadLog) Current() *MarksUpload {
	var current *MarksUpload
	for i := range l {
		u := &l[i]
		if current == nil ||
			u.UploadedAt.After(current.UploadedAt) ||
			(u.UploadedAt.Equal(current.UploadedAt) && u.ID > current.ID) {
			current = u
		}
	}
	return current
}
