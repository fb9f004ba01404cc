package marks

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"obe/models"
)

// GormStore is the gorm-backed Store
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) AssessmentByID(ctx context.Context, assessmentID uint) (*models.Assessment, error) {
	var assessment models.Assessment
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", assessmentID, false).
		First(&assessment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(ErrAssessmentNotFound, "assessment %d", assessmentID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load assessment %d", assessmentID)
	}
	return &assessment, nil
}

func (s *GormStore) QuestionsByAssessment(ctx context.Context, assessmentID uint) ([]models.AssessmentQuestion, error) {
	var questions []models.AssessmentQuestion
	err := s.db.WithContext(ctx).
		Where("assessment_id = ? AND is_deleted = ?", assessmentID, false).
		Order("id ASC").
		Find(&questions).Error
	return questions, err
}

func (s *GormStore) UploadsByAssessment(ctx context.Context, assessmentID uint) (models.UploadLog, error) {
	var uploads []models.MarksUpload
	err := s.db.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Order("uploaded_at DESC, id DESC").
		Find(&uploads).Error
	return models.UploadLog(uploads), err
}

func (s *GormStore) SaveUpload(ctx context.Context, upload *models.MarksUpload, marks []models.StudentMark) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(upload).Error; err != nil {
			return err
		}
		if len(marks) == 0 {
			return nil
		}
		for i := range marks {
			marks[i].MarksUploadID = upload.ID
		}
		return tx.CreateInBatches(marks, 500).Error
	})
}
