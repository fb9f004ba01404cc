package marks

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"obe/models"
)

// RollNoHeader must be the first column of every marks file
const RollNoHeader = "RollNo"

// PreviewLimit caps ValidationResult.Preview
const PreviewLimit = 10

// ValidationError is a header-level (Row 0) or row-level problem
type ValidationError struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Message string `json:"message"`
}

// InvalidMark is a cell that cannot be stored as a mark
type InvalidMark struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type Summary struct {
	InvalidMarks      []InvalidMark `json:"invalidMarks"`
	MissingQIDs       []string      `json:"missingQIDs"`
	UnmappedQuestions []string      `json:"unmappedQuestions"`
}

// ValidationResult is the verdict on one uploaded marks table
type ValidationResult struct {
	Valid       bool                     `json:"valid"`
	Errors      []ValidationError        `json:"errors"`
	Preview     []map[string]interface{} `json:"preview"`
	RecordCount int                      `json:"recordCount"`
	Summary     Summary                  `json:"summary"`
}

// record is one accepted (student, question) mark
type record struct {
	RollNo     string
	QuestionID uint
	Marks      float64
}

type column struct {
	header   string
	question models.AssessmentQuestion
}

func newResult(recordCount int) *ValidationResult {
	return &ValidationResult{
		Errors:      []ValidationError{},
		Preview:     []map[string]interface{}{},
		RecordCount: recordCount,
		Summary: Summary{
			InvalidMarks:      []InvalidMark{},
			MissingQIDs:       []string{},
			UnmappedQuestions: []string{},
		},
	}
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate checks headers and rows against the assessment's questions. It never writes.
func (s *Service) Validate(ctx context.Context, assessmentID uint, headers []string, rows []map[string]string) (*ValidationResult, error) {
	if _, err := s.store.AssessmentByID(ctx, assessmentID); err != nil {
		return nil, err
	}
	res, _, err := s.validate(ctx, assessmentID, headers, rows)
	return res, err
}

func (s *Service) validate(ctx context.Context, assessmentID uint, headers []string, rows []map[string]string) (*ValidationResult, []record, error) {
	res := newResult(len(rows))

	if len(headers) == 0 || !strings.EqualFold(strings.TrimSpace(headers[0]), RollNoHeader) {
		res.Errors = append(res.Errors, ValidationError{
			Row:     0,
			Column:  RollNoHeader,
			Message: "First column must be RollNo",
		})
		return res, nil, nil
	}

	questions, err := s.store.QuestionsByAssessment(ctx, assessmentID)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "load questions of assessment %d", assessmentID)
	}
	byCode := make(map[string]models.AssessmentQuestion, len(questions))
	for _, q := range questions {
		byCode[normalizeCode(q.QuestionCode)] = q
	}

	columns := make([]column, 0, len(headers)-1)
	present := make(map[string]bool)
	for _, h := range headers[1:] {
		code := normalizeCode(h)
		q, ok := byCode[code]
		if !ok {
			res.Errors = append(res.Errors, ValidationError{
				Row:     0,
				Column:  h,
				Message: fmt.Sprintf("Unknown question code: %s", strings.TrimSpace(h)),
			})
			continue
		}
		if present[code] {
			res.Errors = append(res.Errors, ValidationError{
				Row:     0,
				Column:  h,
				Message: fmt.Sprintf("Duplicate question column: %s", strings.TrimSpace(h)),
			})
			continue
		}
		present[code] = true
		columns = append(columns, column{header: h, question: q})
	}
	if len(res.Errors) > 0 {
		return res, nil, nil
	}

	for _, q := range questions {
		if !present[normalizeCode(q.QuestionCode)] {
			res.Summary.MissingQIDs = append(res.Summary.MissingQIDs, q.QuestionCode)
			res.Errors = append(res.Errors, ValidationError{
				Row:     0,
				Column:  q.QuestionCode,
				Message: fmt.Sprintf("Missing question column: %s", q.QuestionCode),
			})
		}
	}
	if len(res.Errors) > 0 {
		return res, nil, nil
	}

	for _, q := range questions {
		if q.CourseOutcomeID == nil {
			res.Summary.UnmappedQuestions = append(res.Summary.UnmappedQuestions, q.QuestionCode)
			res.Errors = append(res.Errors, ValidationError{
				Row:     0,
				Column:  q.QuestionCode,
				Message: fmt.Sprintf("Question %s is not mapped to a course outcome", q.QuestionCode),
			})
		}
	}
	if len(res.Errors) > 0 {
		return res, nil, nil
	}

	records := make([]record, 0, len(rows)*len(columns))
	seen := make(map[string]int)
	for i, row := range rows {
		rowNum := i + 1
		rollNo := strings.TrimSpace(row[headers[0]])

		preview := map[string]interface{}{headers[0]: rollNo}

		switch prev, dup := seen[rollNo]; {
		case rollNo == "":
			res.Errors = append(res.Errors, ValidationError{Row: rowNum, Column: RollNoHeader, Message: "Missing RollNo"})
		case dup:
			res.Errors = append(res.Errors, ValidationError{
				Row:     rowNum,
				Column:  RollNoHeader,
				Message: fmt.Sprintf("Duplicate RollNo %s (first seen on row %d)", rollNo, prev),
			})
		default:
			seen[rollNo] = rowNum
		}

		for _, col := range columns {
			raw := strings.TrimSpace(row[col.header])
			value := 0.0
			if raw != "" {
				v, err := strconv.ParseFloat(raw, 64)
				if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
					res.Summary.InvalidMarks = append(res.Summary.InvalidMarks, InvalidMark{
						Row: rowNum, Column: col.header, Value: raw, Message: "Marks must be numeric",
					})
					preview[col.header] = raw
					continue
				}
				value = v
			}
			preview[col.header] = value

			switch {
			case value < 0:
				res.Summary.InvalidMarks = append(res.Summary.InvalidMarks, InvalidMark{
					Row: rowNum, Column: col.header, Value: raw, Message: "Marks cannot be negative",
				})
			case value > col.question.MaxMarks:
				res.Summary.InvalidMarks = append(res.Summary.InvalidMarks, InvalidMark{
					Row:     rowNum,
					Column:  col.header,
					Value:   raw,
					Message: fmt.Sprintf("Marks exceed max (%s)", strconv.FormatFloat(col.question.MaxMarks, 'f', -1, 64)),
				})
			default:
				records = append(records, record{RollNo: rollNo, QuestionID: col.question.ID, Marks: value})
			}
		}

		if len(res.Preview) < PreviewLimit {
			res.Preview = append(res.Preview, preview)
		}
	}

	res.Valid = len(res.Errors) == 0 && len(res.Summary.InvalidMarks) == 0
	if !res.Valid {
		records = nil
	}
	return res, records, nil
}
