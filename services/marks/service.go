package marks

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"

	"obe/models"
)

var (
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrInvalidUpload      = errors.New("marks file failed validation")
)

// Store is the data layer consumed by the marks service
type Store interface {
	AssessmentByID(ctx context.Context, assessmentID uint) (*models.Assessment, error)
	QuestionsByAssessment(ctx context.Context, assessmentID uint) ([]models.AssessmentQuestion, error)
	UploadsByAssessment(ctx context.Context, assessmentID uint) (models.UploadLog, error)

	// SaveUpload appends upload to the log and writes its marks atomically
	SaveUpload(ctx context.Context, upload *models.MarksUpload, marks []models.StudentMark) error
}

// Service validates and ingests marks files
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Upload is one marks table submitted for an assessment
type Upload struct {
	AssessmentID uint
	UploadedBy   string
	FileName     string
	FilePath     string
	Headers      []string
	Rows         []map[string]string

	// Archive, when set, stores the raw sheet once the table is known to be valid and
	// returns its path. A failed archive is logged and the upload is stored without a path.
	Archive func() (string, error)
}

// Ingest re-validates the table and, when valid, appends it as the assessment's current upload.
// An invalid table returns ErrInvalidUpload together with the ValidationResult and writes nothing.
func (s *Service) Ingest(ctx context.Context, in Upload) (*models.MarksUpload, *ValidationResult, error) {
	if _, err := s.store.AssessmentByID(ctx, in.AssessmentID); err != nil {
		return nil, nil, err
	}

	res, records, err := s.validate(ctx, in.AssessmentID, in.Headers, in.Rows)
	if err != nil {
		return nil, nil, err
	}
	if !res.Valid {
		return nil, res, ErrInvalidUpload
	}

	filePath := in.FilePath
	if in.Archive != nil {
		path, err := in.Archive()
		if err != nil {
			log.Printf("[MARKS] failed to archive upload for assessment %d: %v", in.AssessmentID, err)
		} else {
			filePath = path
		}
	}

	upload := &models.MarksUpload{
		AssessmentID: in.AssessmentID,
		UploadedBy:   in.UploadedBy,
		FileName:     in.FileName,
		FilePath:     filePath,
		RecordCount:  res.RecordCount,
		UploadedAt:   s.now(),
	}
	marks := make([]models.StudentMark, len(records))
	for i, r := range records {
		marks[i] = models.StudentMark{RollNo: r.RollNo, QuestionID: r.QuestionID, Marks: r.Marks}
	}

	if err := s.store.SaveUpload(ctx, upload, marks); err != nil {
		// the archived sheet belongs to no upload now
		if filePath != "" && filePath != in.FilePath {
			if rmErr := os.Remove(filePath); rmErr != nil {
				log.Printf("[MARKS] failed to remove orphaned archive %s: %v", filePath, rmErr)
			}
		}
		return nil, res, errors.Wrapf(err, "save upload for assessment %d", in.AssessmentID)
	}

	log.Printf("[MARKS] assessment %d: upload %d stored with %d student(s), %d mark(s) by %s",
		in.AssessmentID, upload.ID, res.RecordCount, len(marks), in.UploadedBy)
	return upload, res, nil
}

// UploadEntry is one log entry with the current pointer resolved
type UploadEntry struct {
	models.MarksUpload
	Current bool `json:"current"`
}

// History lists an assessment's upload log, newest first, flagging the current upload
func (s *Service) History(ctx context.Context, assessmentID uint) ([]UploadEntry, error) {
	if _, err := s.store.AssessmentByID(ctx, assessmentID); err != nil {
		return nil, err
	}
	uploads, err := s.store.UploadsByAssessment(ctx, assessmentID)
	if err != nil {
		return nil, errors.Wrapf(err, "load uploads of assessment %d", assessmentID)
	}

	var currentID uint
	if current := uploads.Current(); current != nil {
		currentID = current.ID
	}
	entries := make([]UploadEntry, len(uploads))
	for i, u := range uploads {
		entries[i] = UploadEntry{MarksUpload: u, Current: u.ID == currentID}
	}
	return entries, nil
}
