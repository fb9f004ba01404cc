package attainment

import (
	"context"
	"encoding/json"
	"log"
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"

	"obe/models"
)

// CourseContribution is one course's aggregated value for a PO
type CourseContribution struct {
	CourseID   uint    `json:"course_id"`
	CourseCode string  `json:"course_code"`
	Value      float64 `json:"value"`
}

// POResult is the computed attainment of one Program Outcome
type POResult struct {
	ProgramOutcomeID uint                 `json:"program_outcome_id"`
	Code             string               `json:"code"`
	DirectScore      float64              `json:"direct_score"`
	IndirectScore    float64              `json:"indirect_score"`
	FinalScore       float64              `json:"final_score"`
	Courses          []CourseContribution `json:"courses"`
}

// PORun is the outcome of one program recalculation
type PORun struct {
	ProgramID  uint       `json:"program_id"`
	SemesterID uint       `json:"semester_id"`
	Results    []POResult `json:"results"`
	AuditID    *uuid.UUID `json:"audit_id,omitempty"`
}

// ComputeCourseLevelPO is the mapping-weighted mean of the final scores of the course's
// COs mapped to the PO. Nil when the course has no mapping to the PO or the weights sum to 0.
func (c *Calculator) ComputeCourseLevelPO(ctx context.Context, programOutcomeID, courseID uint) (*float64, error) {
	mappings, err := c.store.MappingsByProgramOutcomeAndCourse(ctx, programOutcomeID, courseID)
	if err != nil {
		return nil, errors.Wrapf(err, "load mappings of PO %d for course %d", programOutcomeID, courseID)
	}
	if len(mappings) == 0 {
		return nil, nil
	}

	coIDs := make([]uint, 0, len(mappings))
	seen := make(map[uint]bool)
	for _, m := range mappings {
		if !seen[m.CourseOutcomeID] {
			seen[m.CourseOutcomeID] = true
			coIDs = append(coIDs, m.CourseOutcomeID)
		}
	}

	attainments, err := c.store.COAttainmentsByOutcomeIDs(ctx, coIDs)
	if err != nil {
		return nil, errors.Wrap(err, "load CO attainments")
	}
	finalByCO := make(map[uint]float64, len(attainments))
	for _, a := range attainments {
		finalByCO[a.CourseOutcomeID] = a.FinalScore
	}

	var missing []uint
	for _, id := range coIDs {
		if _, ok := finalByCO[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingCOAttainmentError{
			ProgramOutcomeID: programOutcomeID,
			CourseID:         courseID,
			CourseOutcomeIDs: missing,
		}
	}

	weighted, weights := 0.0, 0.0
	for _, m := range mappings {
		weighted += finalByCO[m.CourseOutcomeID] * m.Value
		weights += m.Value
	}
	if weights == 0 {
		return nil, nil
	}

	value := weighted / weights
	return &value, nil
}

// RecalcProgramPO recomputes every PO of a program from the courses of one semester.
// Any failure aborts the whole run before anything is written. When triggeredBy is
// non-empty an audit record summarising the run is written in the same transaction.
func (c *Calculator) RecalcProgramPO(ctx context.Context, programID, semesterID uint, triggeredBy string) (*PORun, error) {
	program, err := c.store.ProgramWithOutcomes(ctx, programID)
	if err != nil {
		return nil, err
	}
	cfg, err := c.LoadConfig(ctx)
	if err != nil {
		return nil, err
	}

	run := &PORun{ProgramID: programID, SemesterID: semesterID, Results: []POResult{}}
	for _, po := range program.Outcomes {
		res, ok, err := c.computePO(ctx, cfg, po, semesterID)
		if err != nil {
			return nil, err
		}
		if ok {
			run.Results = append(run.Results, res)
		}
	}

	calculatedAt := c.now()
	err = c.store.Transaction(ctx, func(tx Store) error {
		for _, res := range run.Results {
			record := models.POAttainment{
				ProgramOutcomeID: res.ProgramOutcomeID,
				DirectScore:      res.DirectScore,
				IndirectScore:    res.IndirectScore,
				FinalScore:       res.FinalScore,
				CalculatedAt:     calculatedAt,
			}
			if err := tx.UpsertPOAttainment(ctx, &record); err != nil {
				return errors.Wrapf(err, "upsert PO attainment %d", res.ProgramOutcomeID)
			}
		}

		if triggeredBy == "" {
			return nil
		}

		summary, err := json.Marshal(run.Results)
		if err != nil {
			return errors.Wrap(err, "encode audit summary")
		}
		entry := models.AuditLog{
			ID:          uuid.New(),
			Action:      models.AuditPORecalculated,
			EntityType:  "PROGRAM",
			EntityID:    programID,
			SemesterID:  semesterID,
			TriggeredBy: triggeredBy,
			Summary:     datatypes.JSON(summary),
			CreatedAt:   calculatedAt,
		}
		if err := tx.CreateAuditLog(ctx, &entry); err != nil {
			return errors.Wrap(err, "write audit log")
		}
		run.AuditID = &entry.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[ATTAINMENT] program %d semester %d: %d PO attainment record(s) updated", programID, semesterID, len(run.Results))
	return run, nil
}

// computePO returns ok=false when no course of the semester contributes to the PO
func (c *Calculator) computePO(ctx context.Context, cfg Config, po models.ProgramOutcome, semesterID uint) (POResult, bool, error) {
	res := POResult{ProgramOutcomeID: po.ID, Code: po.Code}

	mappings, err := c.store.MappingsByProgramOutcome(ctx, po.ID)
	if err != nil {
		return res, false, errors.Wrapf(err, "load mappings of PO %d", po.ID)
	}

	courses := make(map[uint]models.Course)
	for _, m := range mappings {
		if m.Course.SemesterID != semesterID {
			continue
		}
		courses[m.CourseID] = m.Course
	}
	courseIDs := make([]uint, 0, len(courses))
	for id := range courses {
		courseIDs = append(courseIDs, id)
	}
	sort.Slice(courseIDs, func(i, j int) bool { return courseIDs[i] < courseIDs[j] })

	sum := 0.0
	for _, id := range courseIDs {
		value, err := c.ComputeCourseLevelPO(ctx, po.ID, id)
		if err != nil {
			return res, false, err
		}
		if value == nil {
			continue
		}
		res.Courses = append(res.Courses, CourseContribution{
			CourseID:   id,
			CourseCode: courses[id].Code,
			Value:      *value,
		})
		sum += *value
	}
	if len(res.Courses) == 0 {
		return res, false, nil
	}

	res.DirectScore = sum / float64(len(res.Courses))

	survey, err := c.store.SurveyAggregate(ctx, models.SurveyTargetPO, po.ID)
	if err != nil {
		return res, false, errors.Wrapf(err, "load survey aggregate of PO %d", po.ID)
	}
	if survey != nil {
		res.IndirectScore = survey.AverageScore
	}

	res.FinalScore = res.DirectScore*cfg.DirectWeightage + res.IndirectScore*cfg.IndirectWeightage
	return res, true, nil
}
