package attainment

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obe/models"
)

func newProgramFixture() *memStore {
	m := newMemStore()
	m.config = testConfig()
	m.programs[1] = models.Program{
		Model: withID(1),
		Code:  "BTECH-CS",
		Outcomes: []models.ProgramOutcome{
			{Model: withID(50), ProgramID: 1, Code: "PO1"},
			{Model: withID(51), ProgramID: 1, Code: "PO2"},
		},
	}
	m.addCourse(1, 1, 1, "CS101")
	m.addCourse(2, 1, 1, "CS102")
	m.addCourse(3, 1, 2, "CS201")

	m.coAttainments[10] = models.COAttainment{CourseOutcomeID: 10, FinalScore: 2.0}
	m.coAttainments[11] = models.COAttainment{CourseOutcomeID: 11, FinalScore: 3.0}
	m.coAttainments[20] = models.COAttainment{CourseOutcomeID: 20, FinalScore: 1.0}
	m.coAttainments[30] = models.COAttainment{CourseOutcomeID: 30, FinalScore: 3.0}

	m.addMapping(1, 10, 50, 3)
	m.addMapping(1, 11, 50, 1)
	m.addMapping(2, 20, 50, 2)
	m.addMapping(3, 30, 51, 3)
	return m
}

func TestComputeCourseLevelPOWeightedMean(t *testing.T) {
	m := newProgramFixture()

	v, err := newTestCalculator(m).ComputeCourseLevelPO(context.Background(), 50, 1)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.InDelta(t, 2.25, *v, 1e-9)
}

func TestComputeCourseLevelPONoMappings(t *testing.T) {
	m := newProgramFixture()

	v, err := newTestCalculator(m).ComputeCourseLevelPO(context.Background(), 51, 1)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestComputeCourseLevelPOZeroWeights(t *testing.T) {
	m := newProgramFixture()
	m.mappings = nil
	m.addMapping(1, 10, 50, 0)

	v, err := newTestCalculator(m).ComputeCourseLevelPO(context.Background(), 50, 1)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestComputeCourseLevelPOMissingCOAttainment(t *testing.T) {
	m := newProgramFixture()
	delete(m.coAttainments, 11)

	_, err := newTestCalculator(m).ComputeCourseLevelPO(context.Background(), 50, 1)
	require.Error(t, err)

	var missing *MissingCOAttainmentError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []uint{11}, missing.CourseOutcomeIDs)
	assert.Contains(t, err.Error(), "11")
	assert.True(t, IsPrecondition(err))
}

func TestRecalcProgramPO(t *testing.T) {
	m := newProgramFixture()
	m.surveys = []models.SurveyAggregate{{TargetType: models.SurveyTargetPO, TargetID: 50, AverageScore: 2}}

	run, err := newTestCalculator(m).RecalcProgramPO(context.Background(), 1, 1, "admin@college.edu")
	require.NoError(t, err)

	// PO2 only maps to a course of semester 2
	require.Len(t, run.Results, 1)
	res := run.Results[0]
	assert.Equal(t, uint(50), res.ProgramOutcomeID)
	assert.Equal(t, "PO1", res.Code)
	require.Len(t, res.Courses, 2)
	assert.Equal(t, CourseContribution{CourseID: 1, CourseCode: "CS101", Value: 2.25}, res.Courses[0])
	assert.Equal(t, uint(2), res.Courses[1].CourseID)
	assert.InDelta(t, 1.0, res.Courses[1].Value, 1e-9)

	assert.InDelta(t, 1.625, res.DirectScore, 1e-9)
	assert.InDelta(t, 2.0, res.IndirectScore, 1e-9)
	assert.InDelta(t, 1.625*0.8+2*0.2, res.FinalScore, 1e-9)

	require.Contains(t, m.poAttainments, uint(50))
	assert.NotContains(t, m.poAttainments, uint(51))
	assert.Equal(t, fixedNow, m.poAttainments[50].CalculatedAt)

	require.Len(t, m.audits, 1)
	audit := m.audits[0]
	require.NotNil(t, run.AuditID)
	assert.Equal(t, *run.AuditID, audit.ID)
	assert.Equal(t, models.AuditPORecalculated, audit.Action)
	assert.Equal(t, "admin@college.edu", audit.TriggeredBy)
	assert.Equal(t, uint(1), audit.EntityID)
	assert.Equal(t, uint(1), audit.SemesterID)

	var summary []POResult
	require.NoError(t, json.Unmarshal(audit.Summary, &summary))
	assert.Len(t, summary, 1)
}

func TestRecalcProgramPOOtherSemester(t *testing.T) {
	m := newProgramFixture()

	run, err := newTestCalculator(m).RecalcProgramPO(context.Background(), 1, 2, "")
	require.NoError(t, err)
	require.Len(t, run.Results, 1)
	assert.Equal(t, uint(51), run.Results[0].ProgramOutcomeID)
	assert.InDelta(t, 3.0, run.Results[0].DirectScore, 1e-9)

	assert.NotContains(t, m.poAttainments, uint(50))
	assert.Nil(t, run.AuditID)
	assert.Empty(t, m.audits)
}

func TestRecalcProgramPOAbortsOnMissingCO(t *testing.T) {
	m := newProgramFixture()
	delete(m.coAttainments, 20)

	_, err := newTestCalculator(m).RecalcProgramPO(context.Background(), 1, 1, "admin@college.edu")
	require.Error(t, err)

	var missing *MissingCOAttainmentError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, uint(2), missing.CourseID)
	assert.Empty(t, m.poAttainments)
	assert.Empty(t, m.audits)
}

func TestRecalcProgramPOWritesNothingWhenCommitFails(t *testing.T) {
	m := newProgramFixture()
	m.addMapping(1, 10, 51, 1) // PO2 now has a semester 1 contribution too
	m.failPOUpsert = 51

	_, err := newTestCalculator(m).RecalcProgramPO(context.Background(), 1, 1, "admin@college.edu")
	require.Error(t, err)
	assert.Empty(t, m.poAttainments)
	assert.Empty(t, m.audits)
}

func TestRecalcProgramPOPreconditions(t *testing.T) {
	m := newProgramFixture()
	m.config = nil

	_, err := newTestCalculator(m).RecalcProgramPO(context.Background(), 1, 1, "")
	assert.True(t, errors.Is(err, ErrGlobalConfigNotSet))

	_, err = newTestCalculator(newProgramFixture()).RecalcProgramPO(context.Background(), 9, 1, "")
	assert.True(t, errors.Is(err, ErrProgramNotFound))
}
