package marks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obe/database"
	"obe/models"
)

func TestParseCSV(t *testing.T) {
	input := "\ufeffRollNo, Q1 ,Q2\nR1,8,4\n\n,,\nR2,7\n"

	headers, rows, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"RollNo", "Q1", "Q2"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, map[string]string{"RollNo": "R1", "Q1": "8", "Q2": "4"}, rows[0])
	assert.Equal(t, "", rows[1]["Q2"])
}

func TestParseCSVEmpty(t *testing.T) {
	headers, rows, err := ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, headers)
	assert.Empty(t, rows)
}

func TestIngestRejectsInvalidUpload(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	_, res, err := svc.Ingest(context.Background(), Upload{
		AssessmentID: 1,
		UploadedBy:   "faculty@college.edu",
		Headers:      headers,
		Rows:         []map[string]string{{"RollNo": "R1", "Q1": "12", "Q2": "1"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidUpload))
	require.NotNil(t, res)
	assert.False(t, res.Valid)
	assert.Empty(t, store.uploads)
	assert.Empty(t, store.saved)
}

func TestIngestUnknownAssessment(t *testing.T) {
	svc := NewService(newFakeStore())

	_, _, err := svc.Ingest(context.Background(), Upload{AssessmentID: 42, Headers: headers})
	assert.True(t, errors.Is(err, ErrAssessmentNotFound))
}

func TestIngestAndHistory(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)

	co := models.CourseOutcome{CourseID: 1, Code: "CO1"}
	require.NoError(t, db.Create(&co).Error)
	assessment := models.Assessment{CourseID: 1, Type: models.AssessmentEndSem, Name: "End semester"}
	require.NoError(t, db.Create(&assessment).Error)
	for _, code := range []string{"Q1", "Q2"} {
		q := models.AssessmentQuestion{AssessmentID: assessment.ID, QuestionCode: code, MaxMarks: 10, CourseOutcomeID: &co.ID}
		require.NoError(t, db.Create(&q).Error)
	}

	svc := NewService(NewGormStore(db))
	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }
	ctx := context.Background()

	first, res, err := svc.Ingest(ctx, Upload{
		AssessmentID: assessment.ID,
		UploadedBy:   "faculty@college.edu",
		FileName:     "endsem.csv",
		Headers:      headers,
		Rows: []map[string]string{
			{"RollNo": "R1", "Q1": "8", "Q2": "4"},
			{"RollNo": "R2", "Q1": "", "Q2": "10"},
		},
	})
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, 2, first.RecordCount)

	var stored []models.StudentMark
	require.NoError(t, db.Where("marks_upload_id = ?", first.ID).Order("id").Find(&stored).Error)
	require.Len(t, stored, 4)
	assert.Equal(t, "R2", stored[2].RollNo)
	assert.Equal(t, 0.0, stored[2].Marks)

	clock = clock.Add(time.Hour)
	second, _, err := svc.Ingest(ctx, Upload{
		AssessmentID: assessment.ID,
		UploadedBy:   "faculty@college.edu",
		Headers:      headers,
		Rows:         []map[string]string{{"RollNo": "R1", "Q1": "9", "Q2": "9"}},
	})
	require.NoError(t, err)

	history, err := svc.History(ctx, assessment.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID)
	assert.True(t, history[0].Current)
	assert.False(t, history[1].Current)

	// earlier uploads stay in the log
	var count int64
	require.NoError(t, db.Model(&models.StudentMark{}).Count(&count).Error)
	assert.Equal(t, int64(6), count)
}

func archiveTo(t *testing.T, calls *int) func() (string, error) {
	dir := t.TempDir()
	return func() (string, error) {
		*calls++
		path := filepath.Join(dir, "assessment_1.csv")
		return path, os.WriteFile(path, []byte("RollNo,Q1,Q2\n"), 0o644)
	}
}

func TestIngestArchivesOnlyValidUploads(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	calls := 0

	_, _, err := svc.Ingest(context.Background(), Upload{
		AssessmentID: 1,
		Headers:      headers,
		Rows:         []map[string]string{{"RollNo": "R1", "Q1": "x", "Q2": "1"}},
		Archive:      archiveTo(t, &calls),
	})
	assert.True(t, errors.Is(err, ErrInvalidUpload))
	assert.Equal(t, 0, calls)

	upload, _, err := svc.Ingest(context.Background(), Upload{
		AssessmentID: 1,
		Headers:      headers,
		Rows:         []map[string]string{{"RollNo": "R1", "Q1": "2", "Q2": "1"}},
		Archive:      archiveTo(t, &calls),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.FileExists(t, upload.FilePath)
}

func TestIngestRemovesArchiveWhenSaveFails(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("disk full")
	svc := NewService(store)

	var archived string
	calls := 0
	archive := archiveTo(t, &calls)
	_, _, err := svc.Ingest(context.Background(), Upload{
		AssessmentID: 1,
		Headers:      headers,
		Rows:         []map[string]string{{"RollNo": "R1", "Q1": "2", "Q2": "1"}},
		Archive: func() (string, error) {
			path, err := archive()
			archived = path
			return path, err
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 1, calls)
	assert.NoFileExists(t, archived)
	assert.Empty(t, store.uploads)
}

func TestIngestStoresWithoutPathWhenArchiveFails(t *testing.T) {
	svc := NewService(newFakeStore())

	upload, _, err := svc.Ingest(context.Background(), Upload{
		AssessmentID: 1,
		Headers:      headers,
		Rows:         []map[string]string{{"RollNo": "R1", "Q1": "2", "Q2": "1"}},
		Archive:      func() (string, error) { return "", errors.New("read-only") },
	})
	require.NoError(t, err)
	assert.Empty(t, upload.FilePath)
}
