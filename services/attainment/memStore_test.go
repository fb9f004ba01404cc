package attainment

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"obe/models"
)

// memStore is an in-memory Store. Writes made inside Transaction are staged and
// only applied when fn returns nil.
type memStore struct {
	config      *models.GlobalConfig
	courses     map[uint]models.Course
	outcomes    []models.CourseOutcome
	assessments []models.Assessment
	questions   []models.AssessmentQuestion
	uploads     []models.MarksUpload
	marks       []models.StudentMark
	surveys     []models.SurveyAggregate
	programs    map[uint]models.Program
	mappings    []models.CoPoMapping

	coAttainments map[uint]models.COAttainment
	poAttainments map[uint]models.POAttainment
	audits        []models.AuditLog

	failPOUpsert uint
	writes       int
}

func newMemStore() *memStore {
	return &memStore{
		courses:       map[uint]models.Course{},
		programs:      map[uint]models.Program{},
		coAttainments: map[uint]models.COAttainment{},
		poAttainments: map[uint]models.POAttainment{},
	}
}

func withID(id uint) gorm.Model { return gorm.Model{ID: id} }

func (m *memStore) addCourse(id, programID, semesterID uint, code string) {
	m.courses[id] = models.Course{Model: withID(id), ProgramID: programID, SemesterID: semesterID, Code: code}
}

func (m *memStore) addMapping(courseID, coID, poID uint, value float64) {
	m.mappings = append(m.mappings, models.CoPoMapping{
		Model:            withID(uint(len(m.mappings) + 1)),
		CourseID:         courseID,
		CourseOutcomeID:  coID,
		ProgramOutcomeID: poID,
		Value:            value,
		Course:           m.courses[courseID],
	})
}

func (m *memStore) GlobalConfig(ctx context.Context) (*models.GlobalConfig, error) {
	return m.config, nil
}

func (m *memStore) CourseByID(ctx context.Context, courseID uint) (*models.Course, error) {
	c, ok := m.courses[courseID]
	if !ok {
		return nil, ErrCourseNotFound
	}
	return &c, nil
}

func (m *memStore) OutcomesByCourse(ctx context.Context, courseID uint) ([]models.CourseOutcome, error) {
	var out []models.CourseOutcome
	for _, o := range m.outcomes {
		if o.CourseID == courseID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memStore) AssessmentsByCourseAndType(ctx context.Context, courseID uint, assessmentType string) ([]models.Assessment, error) {
	var out []models.Assessment
	for _, a := range m.assessments {
		if a.CourseID == courseID && a.Type == assessmentType {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) QuestionsByAssessment(ctx context.Context, assessmentID uint) ([]models.AssessmentQuestion, error) {
	var out []models.AssessmentQuestion
	for _, q := range m.questions {
		if q.AssessmentID == assessmentID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *memStore) UploadsByAssessment(ctx context.Context, assessmentID uint) (models.UploadLog, error) {
	var out models.UploadLog
	for _, u := range m.uploads {
		if u.AssessmentID == assessmentID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memStore) MarksByUploadAndQuestions(ctx context.Context, uploadID uint, questionIDs []uint) ([]models.StudentMark, error) {
	wanted := map[uint]bool{}
	for _, id := range questionIDs {
		wanted[id] = true
	}
	var out []models.StudentMark
	for _, mk := range m.marks {
		if mk.MarksUploadID == uploadID && wanted[mk.QuestionID] {
			out = append(out, mk)
		}
	}
	return out, nil
}

func (m *memStore) SurveyAggregate(ctx context.Context, targetType string, targetID uint) (*models.SurveyAggregate, error) {
	for _, s := range m.surveys {
		if s.TargetType == targetType && s.TargetID == targetID {
			s := s
			return &s, nil
		}
	}
	return nil, nil
}

func (m *memStore) ProgramWithOutcomes(ctx context.Context, programID uint) (*models.Program, error) {
	p, ok := m.programs[programID]
	if !ok {
		return nil, ErrProgramNotFound
	}
	return &p, nil
}

func (m *memStore) MappingsByProgramOutcome(ctx context.Context, programOutcomeID uint) ([]models.CoPoMapping, error) {
	var out []models.CoPoMapping
	for _, mp := range m.mappings {
		if mp.ProgramOutcomeID == programOutcomeID {
			out = append(out, mp)
		}
	}
	return out, nil
}

func (m *memStore) MappingsByProgramOutcomeAndCourse(ctx context.Context, programOutcomeID, courseID uint) ([]models.CoPoMapping, error) {
	var out []models.CoPoMapping
	for _, mp := range m.mappings {
		if mp.ProgramOutcomeID == programOutcomeID && mp.CourseID == courseID {
			out = append(out, mp)
		}
	}
	return out, nil
}

func (m *memStore) COAttainmentsByOutcomeIDs(ctx context.Context, outcomeIDs []uint) ([]models.COAttainment, error) {
	var out []models.COAttainment
	for _, id := range outcomeIDs {
		if a, ok := m.coAttainments[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) UpsertCOAttainment(ctx context.Context, a *models.COAttainment) error {
	m.coAttainments[a.CourseOutcomeID] = *a
	m.writes++
	return nil
}

func (m *memStore) UpsertPOAttainment(ctx context.Context, a *models.POAttainment) error {
	if m.failPOUpsert != 0 && a.ProgramOutcomeID == m.failPOUpsert {
		return fmt.Errorf("upsert rejected for PO %d", a.ProgramOutcomeID)
	}
	m.poAttainments[a.ProgramOutcomeID] = *a
	m.writes++
	return nil
}

func (m *memStore) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	m.audits = append(m.audits, *entry)
	m.writes++
	return nil
}

func (m *memStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	staged := *m
	staged.coAttainments = map[uint]models.COAttainment{}
	for k, v := range m.coAttainments {
		staged.coAttainments[k] = v
	}
	staged.poAttainments = map[uint]models.POAttainment{}
	for k, v := range m.poAttainments {
		staged.poAttainments[k] = v
	}
	staged.audits = append([]models.AuditLog(nil), m.audits...)

	if err := fn(&staged); err != nil {
		return err
	}
	m.coAttainments = staged.coAttainments
	m.poAttainments = staged.poAttainments
	m.audits = staged.audits
	m.writes = staged.writes
	return nil
}
