package marks

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"obe/models"
)

type fakeStore struct {
	assessments map[uint]models.Assessment
	questions   []models.AssessmentQuestion
	uploads     models.UploadLog
	saved       []models.StudentMark
	saveErr     error
}

func (f *fakeStore) AssessmentByID(ctx context.Context, id uint) (*models.Assessment, error) {
	a, ok := f.assessments[id]
	if !ok {
		return nil, ErrAssessmentNotFound
	}
	return &a, nil
}

func (f *fakeStore) QuestionsByAssessment(ctx context.Context, id uint) ([]models.AssessmentQuestion, error) {
	var out []models.AssessmentQuestion
	for _, q := range f.questions {
		if q.AssessmentID == id {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeStore) UploadsByAssessment(ctx context.Context, id uint) (models.UploadLog, error) {
	var out models.UploadLog
	for _, u := range f.uploads {
		if u.AssessmentID == id {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeStore) SaveUpload(ctx context.Context, upload *models.MarksUpload, marks []models.StudentMark) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	upload.ID = uint(len(f.uploads) + 1)
	f.uploads = append(f.uploads, *upload)
	f.saved = append(f.saved, marks...)
	return nil
}

func coID(id uint) *uint { return &id }

func newFakeStore() *fakeStore {
	return &fakeStore{
		assessments: map[uint]models.Assessment{1: {Model: gorm.Model{ID: 1}, CourseID: 1, Type: models.AssessmentIA1}},
		questions: []models.AssessmentQuestion{
			{Model: gorm.Model{ID: 11}, AssessmentID: 1, QuestionCode: "Q1", MaxMarks: 10, CourseOutcomeID: coID(100)},
			{Model: gorm.Model{ID: 12}, AssessmentID: 1, QuestionCode: "Q2", MaxMarks: 5, CourseOutcomeID: coID(101)},
		},
	}
}

var headers = []string{"RollNo", "Q1", "Q2"}

func TestValidateAcceptsCompleteFile(t *testing.T) {
	svc := NewService(newFakeStore())
	rows := []map[string]string{
		{"RollNo": "R1", "Q1": "8", "Q2": "4.5"},
		{"RollNo": "R2", "Q1": "10", "Q2": "5"},
	}

	res, err := svc.Validate(context.Background(), 1, headers, rows)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Summary.InvalidMarks)
	assert.Equal(t, 2, res.RecordCount)
	require.Len(t, res.Preview, 2)
	assert.Equal(t, "R1", res.Preview[0]["RollNo"])
	assert.Equal(t, 4.5, res.Preview[0]["Q2"])
}

func TestValidateHeaderChecks(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore())
	rows := []map[string]string{{"RollNo": "R1", "Q1": "1", "Q2": "1"}}

	tests := []struct {
		name    string
		headers []string
		message string
	}{
		{"empty headers", nil, "First column must be RollNo"},
		{"wrong first column", []string{"Q1", "RollNo", "Q2"}, "First column must be RollNo"},
		{"unknown question", []string{"RollNo", "Q1", "Q2", "Q9"}, "Unknown question code: Q9"},
		{"duplicate question", []string{"RollNo", "Q1", "q1", "Q2"}, "Duplicate question column: q1"},
		{"missing question", []string{"RollNo", "Q1"}, "Missing question column: Q2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Validate(ctx, 1, tt.headers, rows)
			require.NoError(t, err)
			assert.False(t, res.Valid)
			require.NotEmpty(t, res.Errors)
			assert.Equal(t, 0, res.Errors[0].Row)
			assert.Equal(t, tt.message, res.Errors[0].Message)
			assert.Empty(t, res.Preview)
			assert.Equal(t, 1, res.RecordCount)
		})
	}
}

func TestValidateHeadersAreCaseInsensitive(t *testing.T) {
	svc := NewService(newFakeStore())
	rows := []map[string]string{{"rollno": "R1", " q1 ": "3", "Q2": "2"}}

	res, err := svc.Validate(context.Background(), 1, []string{"rollno", " q1 ", "Q2"}, rows)
	require.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestValidateMissingColumnIgnoresRowContent(t *testing.T) {
	svc := NewService(newFakeStore())
	rows := []map[string]string{{"RollNo": "", "Q1": "abc"}}

	res, err := svc.Validate(context.Background(), 1, []string{"RollNo", "Q1"}, rows)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"Q2"}, res.Summary.MissingQIDs)
	assert.Empty(t, res.Summary.InvalidMarks)
}

func TestValidateUnmappedQuestions(t *testing.T) {
	store := newFakeStore()
	store.questions[1].CourseOutcomeID = nil
	svc := NewService(store)

	res, err := svc.Validate(context.Background(), 1, headers, []map[string]string{{"RollNo": "R1", "Q1": "1", "Q2": "1"}})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"Q2"}, res.Summary.UnmappedQuestions)
	assert.Empty(t, res.Preview)
}

func TestValidateRowErrors(t *testing.T) {
	svc := NewService(newFakeStore())
	rows := []map[string]string{
		{"RollNo": "R1", "Q1": "11", "Q2": "5"},
		{"RollNo": " ", "Q1": "3", "Q2": "2"},
		{"RollNo": "R3", "Q1": "x", "Q2": ""},
		{"RollNo": "R4", "Q1": "-1", "Q2": "1"},
		{"RollNo": "R1", "Q1": "2", "Q2": "2"},
	}

	res, err := svc.Validate(context.Background(), 1, headers, rows)
	require.NoError(t, err)
	assert.False(t, res.Valid)

	require.Len(t, res.Errors, 2)
	assert.Equal(t, ValidationError{Row: 2, Column: "RollNo", Message: "Missing RollNo"}, res.Errors[0])
	assert.Equal(t, 5, res.Errors[1].Row)
	assert.Contains(t, res.Errors[1].Message, "Duplicate RollNo R1")

	require.Len(t, res.Summary.InvalidMarks, 3)
	over := res.Summary.InvalidMarks[0]
	assert.Equal(t, 1, over.Row)
	assert.Equal(t, "Q1", over.Column)
	assert.Equal(t, "11", over.Value)
	assert.Contains(t, over.Message, "exceed max")
	assert.Equal(t, "Marks must be numeric", res.Summary.InvalidMarks[1].Message)
	assert.Equal(t, "Marks cannot be negative", res.Summary.InvalidMarks[2].Message)

	// the preview keeps every processed row, including invalid cells as typed
	require.Len(t, res.Preview, 5)
	assert.Equal(t, 11.0, res.Preview[0]["Q1"])
	assert.Equal(t, "x", res.Preview[2]["Q1"])
	assert.Equal(t, 0.0, res.Preview[2]["Q2"])
}

func TestValidateOverMaxAloneInvalidates(t *testing.T) {
	svc := NewService(newFakeStore())
	rows := []map[string]string{
		{"RollNo": "R1", "Q1": "10", "Q2": "5"},
		{"RollNo": "R2", "Q1": "10", "Q2": "5.5"},
	}

	res, err := svc.Validate(context.Background(), 1, headers, rows)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Empty(t, res.Errors)
	require.Len(t, res.Summary.InvalidMarks, 1)
	assert.Equal(t, "Marks exceed max (5)", res.Summary.InvalidMarks[0].Message)
}

func TestValidatePreviewIsCapped(t *testing.T) {
	svc := NewService(newFakeStore())
	var rows []map[string]string
	for i := 0; i < 25; i++ {
		rows = append(rows, map[string]string{"RollNo": fmt.Sprintf("R%02d", i), "Q1": "1", "Q2": "1"})
	}
	rows[3]["Q1"] = "bad"

	res, err := svc.Validate(context.Background(), 1, headers, rows)
	require.NoError(t, err)
	assert.Len(t, res.Preview, PreviewLimit)
	assert.Equal(t, 25, res.RecordCount)
	assert.Equal(t, "bad", res.Preview[3]["Q1"])
}

func TestValidateUnknownAssessment(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.Validate(context.Background(), 7, headers, nil)
	assert.ErrorIs(t, err, ErrAssessmentNotFound)
}
