package attainment

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"

	"obe/models"
)

// Calculator computes CO and PO attainment on top of a Store
type Calculator struct {
	store Store
	now   func() time.Time
}

// NewCalculator creates a calculator stamping results with the wall clock
func NewCalculator(store Store) *Calculator {
	return &Calculator{store: store, now: time.Now}
}

// COResult is the computed attainment of one Course Outcome
type COResult struct {
	CourseOutcomeID uint     `json:"course_outcome_id"`
	Code            string   `json:"code"`
	IA1Percent      *float64 `json:"ia1_percent"`
	IA2Percent      *float64 `json:"ia2_percent"`
	EndSemPercent   *float64 `json:"end_sem_percent"`
	IA1Level        int      `json:"ia1_level"`
	IA2Level        int      `json:"ia2_level"`
	EndSemLevel     int      `json:"end_sem_level"`
	DirectScore     float64  `json:"direct_score"`
	IndirectScore   float64  `json:"indirect_score"`
	FinalScore      float64  `json:"final_score"`
	Level           Level    `json:"level"`
}

// LoadConfig snapshots the GlobalConfig row for one run
func (c *Calculator) LoadConfig(ctx context.Context) (Config, error) {
	gc, err := c.store.GlobalConfig(ctx)
	if err != nil {
		return Config{}, errors.Wrap(err, "load global config")
	}
	if gc == nil {
		return Config{}, ErrGlobalConfigNotSet
	}
	return ConfigFromModel(*gc), nil
}

// ComputeAssessmentCOPercent returns the percentage of students whose marks on the
// CO's questions of one assessment reach targetMarksPercent of the maximum.
// Nil means the assessment has no question mapped to the CO.
func (c *Calculator) ComputeAssessmentCOPercent(ctx context.Context, assessmentID, coID uint, targetMarksPercent float64) (*float64, error) {
	questions, err := c.store.QuestionsByAssessment(ctx, assessmentID)
	if err != nil {
		return nil, errors.Wrapf(err, "load questions of assessment %d", assessmentID)
	}

	maxByQuestion := make(map[uint]float64)
	var questionIDs []uint
	for _, q := range questions {
		if q.CourseOutcomeID != nil && *q.CourseOutcomeID == coID {
			maxByQuestion[q.ID] = q.MaxMarks
			questionIDs = append(questionIDs, q.ID)
		}
	}
	if len(questionIDs) == 0 {
		return nil, nil
	}

	zero := 0.0
	uploads, err := c.store.UploadsByAssessment(ctx, assessmentID)
	if err != nil {
		return nil, errors.Wrapf(err, "load uploads of assessment %d", assessmentID)
	}
	current := uploads.Current()
	if current == nil {
		return &zero, nil
	}

	marks, err := c.store.MarksByUploadAndQuestions(ctx, current.ID, questionIDs)
	if err != nil {
		return nil, errors.Wrapf(err, "load marks of upload %d", current.ID)
	}

	type tally struct{ obtained, max float64 }
	byStudent := make(map[string]*tally)
	for _, m := range marks {
		t, ok := byStudent[m.RollNo]
		if !ok {
			t = &tally{}
			byStudent[m.RollNo] = t
		}
		t.obtained += m.Marks
		t.max += maxByQuestion[m.QuestionID]
	}

	total, success := 0, 0
	for _, t := range byStudent {
		if t.max <= 0 {
			continue
		}
		total++
		if t.obtained >= t.max*(targetMarksPercent/100) {
			success++
		}
	}
	if total == 0 {
		return &zero, nil
	}

	percent := float64(success) / float64(total) * 100
	return &percent, nil
}

// ComputeAssessmentTypePercentForCO averages ComputeAssessmentCOPercent over every
// assessment of one type. Nil when no assessment of the type contributes.
func (c *Calculator) ComputeAssessmentTypePercentForCO(ctx context.Context, courseID, coID uint, assessmentType string, targetMarksPercent float64) (*float64, error) {
	assessments, err := c.store.AssessmentsByCourseAndType(ctx, courseID, assessmentType)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s assessments of course %d", assessmentType, courseID)
	}

	sum, n := 0.0, 0
	for _, a := range assessments {
		p, err := c.ComputeAssessmentCOPercent(ctx, a.ID, coID, targetMarksPercent)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		sum += *p
		n++
	}
	if n == 0 {
		return nil, nil
	}

	avg := sum / float64(n)
	return &avg, nil
}

// CalcCOAttainment computes every CO of a course and upserts the results.
// All results are computed before anything is written; the upserts share one transaction.
func (c *Calculator) CalcCOAttainment(ctx context.Context, courseID, semesterID uint) ([]COResult, error) {
	cfg, err := c.LoadConfig(ctx)
	if err != nil {
		return nil, err
	}

	course, err := c.store.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if semesterID != 0 && course.SemesterID != semesterID {
		return nil, errors.Wrapf(ErrCourseNotInSemester, "course %d is in semester %d, not %d", courseID, course.SemesterID, semesterID)
	}

	outcomes, err := c.store.OutcomesByCourse(ctx, courseID)
	if err != nil {
		return nil, errors.Wrapf(err, "load outcomes of course %d", courseID)
	}

	results := make([]COResult, 0, len(outcomes))
	for _, co := range outcomes {
		res, err := c.computeCO(ctx, cfg, courseID, co)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	calculatedAt := c.now()
	err = c.store.Transaction(ctx, func(tx Store) error {
		for _, res := range results {
			record := models.COAttainment{
				CourseOutcomeID: res.CourseOutcomeID,
				IA1Level:        res.IA1Level,
				IA2Level:        res.IA2Level,
				EndSemLevel:     res.EndSemLevel,
				DirectScore:     res.DirectScore,
				IndirectScore:   res.IndirectScore,
				FinalScore:      res.FinalScore,
				Level:           res.Level.Model(),
				CalculatedAt:    calculatedAt,
			}
			if err := tx.UpsertCOAttainment(ctx, &record); err != nil {
				return errors.Wrapf(err, "upsert CO attainment %d", res.CourseOutcomeID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[ATTAINMENT] course %d: %d CO attainment record(s) updated", courseID, len(results))
	return results, nil
}

func (c *Calculator) computeCO(ctx context.Context, cfg Config, courseID uint, co models.CourseOutcome) (COResult, error) {
	res := COResult{CourseOutcomeID: co.ID, Code: co.Code}

	percents := make(map[string]*float64, len(models.AssessmentTypes))
	for _, typ := range models.AssessmentTypes {
		p, err := c.ComputeAssessmentTypePercentForCO(ctx, courseID, co.ID, typ, cfg.CoTargetMarksPercent)
		if err != nil {
			return res, err
		}
		percents[typ] = p
	}

	res.IA1Percent = percents[models.AssessmentIA1]
	res.IA2Percent = percents[models.AssessmentIA2]
	res.EndSemPercent = percents[models.AssessmentEndSem]
	res.IA1Level = levelNumber(res.IA1Percent, cfg.Thresholds)
	res.IA2Level = levelNumber(res.IA2Percent, cfg.Thresholds)
	res.EndSemLevel = levelNumber(res.EndSemPercent, cfg.Thresholds)

	res.DirectScore = float64(res.IA1Level)*cfg.IA1Weightage +
		float64(res.IA2Level)*cfg.IA2Weightage +
		float64(res.EndSemLevel)*cfg.EndSemWeightage

	survey, err := c.store.SurveyAggregate(ctx, models.SurveyTargetCO, co.ID)
	if err != nil {
		return res, errors.Wrapf(err, "load survey aggregate of CO %d", co.ID)
	}
	if survey != nil {
		res.IndirectScore = survey.AverageScore
	}

	res.FinalScore = res.DirectScore*cfg.DirectWeightage + res.IndirectScore*cfg.IndirectWeightage
	res.Level = ResolveLevelFromFinalScore(res.FinalScore, cfg.PoTargetLevel)
	return res, nil
}
