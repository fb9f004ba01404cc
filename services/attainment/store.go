package attainment

import (
	"context"

	"obe/models"
)

// Store is the data layer consumed by the calculators
type Store interface {
	GlobalConfig(ctx context.Context) (*models.GlobalConfig, error)

	CourseByID(ctx context.Context, courseID uint) (*models.Course, error)
	OutcomesByCourse(ctx context.Context, courseID uint) ([]models.CourseOutcome, error)
	AssessmentsByCourseAndType(ctx context.Context, courseID uint, assessmentType string) ([]models.Assessment, error)
	QuestionsByAssessment(ctx context.Context, assessmentID uint) ([]models.AssessmentQuestion, error)
	UploadsByAssessment(ctx context.Context, assessmentID uint) (models.UploadLog, error)
	MarksByUploadAndQuestions(ctx context.Context, uploadID uint, questionIDs []uint) ([]models.StudentMark, error)

	// SurveyAggregate returns nil when no aggregate exists for the target
	SurveyAggregate(ctx context.Context, targetType string, targetID uint) (*models.SurveyAggregate, error)

	ProgramWithOutcomes(ctx context.Context, programID uint) (*models.Program, error)
	MappingsByProgramOutcome(ctx context.Context, programOutcomeID uint) ([]models.CoPoMapping, error)
	MappingsByProgramOutcomeAndCourse(ctx context.Context, programOutcomeID, courseID uint) ([]models.CoPoMapping, error)
	COAttainmentsByOutcomeIDs(ctx context.Context, outcomeIDs []uint) ([]models.COAttainment, error)

	UpsertCOAttainment(ctx context.Context, a *models.COAttainment) error
	UpsertPOAttainment(ctx context.Context, a *models.POAttainment) error
	CreateAuditLog(ctx context.Context, entry *models.AuditLog) error

	// Transaction runs fn against a Store bound to one database transaction
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
