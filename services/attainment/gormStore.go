package attainment

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"obe/models"
)

// GormStore is the gorm-backed Store
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open gorm connection
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GlobalConfig(ctx context.Context) (*models.GlobalConfig, error) {
	var gc models.GlobalConfig
	err := s.db.WithContext(ctx).First(&gc, models.GlobalConfigID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &gc, nil
}

func (s *GormStore) CourseByID(ctx context.Context, courseID uint) (*models.Course, error) {
	var course models.Course
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", courseID, false).
		First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(ErrCourseNotFound, "course %d", courseID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load course %d", courseID)
	}
	return &course, nil
}

func (s *GormStore) OutcomesByCourse(ctx context.Context, courseID uint) ([]models.CourseOutcome, error) {
	var outcomes []models.CourseOutcome
	err := s.db.WithContext(ctx).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("id ASC").
		Find(&outcomes).Error
	return outcomes, err
}

func (s *GormStore) AssessmentsByCourseAndType(ctx context.Context, courseID uint, assessmentType string) ([]models.Assessment, error) {
	var assessments []models.Assessment
	err := s.db.WithContext(ctx).
		Where("course_id = ? AND type = ? AND is_deleted = ?", courseID, assessmentType, false).
		Order("id ASC").
		Find(&assessments).Error
	return assessments, err
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

func (s *GormStore) MarksByUploadAndQuestions(ctx context.Context, uploadID uint, questionIDs []uint) ([]models.StudentMark, error) {
	var marks []models.StudentMark
	if len(questionIDs) == 0 {
		return marks, nil
	}
	err := s.db.WithContext(ctx).
		Where("marks_upload_id = ? AND question_id IN ?", uploadID, questionIDs).
		Find(&marks).Error
	return marks, err
}

func (s *GormStore) SurveyAggregate(ctx context.Context, targetType string, targetID uint) (*models.SurveyAggregate, error) {
	var agg models.SurveyAggregate
	err := s.db.WithContext(ctx).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		First(&agg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

func (s *GormStore) ProgramWithOutcomes(ctx context.Context, programID uint) (*models.Program, error) {
	var program models.Program
	err := s.db.WithContext(ctx).
		Preload("Outcomes", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("id ASC")
		}).
		Where("id = ? AND is_deleted = ?", programID, false).
		First(&program).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(ErrProgramNotFound, "program %d", programID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load program %d", programID)
	}
	return &program, nil
}

func (s *GormStore) MappingsByProgramOutcome(ctx context.Context, programOutcomeID uint) ([]models.CoPoMapping, error) {
	var mappings []models.CoPoMapping
	err := s.db.WithContext(ctx).
		Joins("JOIN courses ON courses.id = co_po_mappings.course_id AND courses.is_deleted = ?", false).
		Preload("Course").
		Where("co_po_mappings.program_outcome_id = ? AND co_po_mappings.is_deleted = ?", programOutcomeID, false).
		Order("co_po_mappings.course_id ASC, co_po_mappings.id ASC").
		Find(&mappings).Error
	return mappings, err
}

func (s *GormStore) MappingsByProgramOutcomeAndCourse(ctx context.Context, programOutcomeID, courseID uint) ([]models.CoPoMapping, error) {
	var mappings []models.CoPoMapping
	err := s.db.WithContext(ctx).
		Where("program_outcome_id = ? AND course_id = ? AND is_deleted = ?", programOutcomeID, courseID, false).
		Order("id ASC").
		Find(&mappings).Error
	return mappings, err
}

func (s *GormStore) COAttainmentsByOutcomeIDs(ctx context.Context, outcomeIDs []uint) ([]models.COAttainment, error) {
	var attainments []models.COAttainment
	if len(outcomeIDs) == 0 {
		return attainments, nil
	}
	err := s.db.WithContext(ctx).
		Where("course_outcome_id IN ?", outcomeIDs).
		Find(&attainments).Error
	return attainments, err
}

func (s *GormStore) UpsertCOAttainment(ctx context.Context, a *models.COAttainment) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "course_outcome_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"ia1_level", "ia2_level", "end_sem_level",
			"direct_score", "indirect_score", "final_score",
			"level", "calculated_at", "updated_at",
		}),
	}).Create(a).Error
}

func (s *GormStore) UpsertPOAttainment(ctx context.Context, a *models.POAttainment) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "program_outcome_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"direct_score", "indirect_score", "final_score",
			"calculated_at", "updated_at",
		}),
	}).Create(a).Error
}

func (s *GormStore) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// UpsertSurveyAggregate replaces the aggregate of one CO or PO
func (s *GormStore) UpsertSurveyAggregate(ctx context.Context, agg *models.SurveyAggregate) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "target_type"}, {Name: "target_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"average_score", "response_count", "source", "synced_at",
		}),
	}).Create(agg).Error
}

// COAttainmentsByCourse lists the stored CO attainments of a course's outcomes
func (s *GormStore) COAttainmentsByCourse(ctx context.Context, courseID uint) ([]models.COAttainment, error) {
	var attainments []models.COAttainment
	err := s.db.WithContext(ctx).
		Joins("JOIN course_outcomes ON course_outcomes.id = co_attainments.course_outcome_id").
		Where("course_outcomes.course_id = ? AND course_outcomes.is_deleted = ? AND course_outcomes.deleted_at IS NULL", courseID, false).
		Order("co_attainments.course_outcome_id ASC").
		Find(&attainments).Error
	return attainments, err
}

// POAttainmentsByProgram lists the stored PO attainments of a program's outcomes
func (s *GormStore) POAttainmentsByProgram(ctx context.Context, programID uint) ([]models.POAttainment, error) {
	var attainments []models.POAttainment
	err := s.db.WithContext(ctx).
		Joins("JOIN program_outcomes ON program_outcomes.id = po_attainments.program_outcome_id").
		Where("program_outcomes.program_id = ? AND program_outcomes.is_deleted = ? AND program_outcomes.deleted_at IS NULL", programID, false).
		Order("po_attainments.program_outcome_id ASC").
		Find(&attainments).Error
	return attainments, err
}

// CoursesBySemester lists the live courses taught in a semester
func (s *GormStore) CoursesBySemester(ctx context.Context, semesterID uint) ([]models.Course, error) {
	var courses []models.Course
	err := s.db.WithContext(ctx).
		Where("semester_id = ? AND is_deleted = ?", semesterID, false).
		Order("id ASC").
		Find(&courses).Error
	return courses, err
}

// ProgramIDsBySemester lists the distinct programs with a course in a semester
func (s *GormStore) ProgramIDsBySemester(ctx context.Context, semesterID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&models.Course{}).
		Where("semester_id = ? AND is_deleted = ?", semesterID, false).
		Distinct("program_id").
		Order("program_id ASC").
		Pluck("program_id", &ids).Error
	return ids, err
}
