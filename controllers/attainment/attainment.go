package attainmentController

import (
	"log"

	"obe/database"
	"obe/middleware"
	"obe/models"
	"obe/services/attainment"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

func errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, attainment.ErrCourseNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	case errors.Is(err, attainment.ErrProgramNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Program not found!", nil)
	case attainment.IsPrecondition(err):
		return middleware.JsonResponse(c, fiber.StatusPreconditionFailed, false, err.Error(), nil)
	default:
		log.Printf("[ATTAINMENT] %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to calculate attainment!", nil)
	}
}

// CalculateCourse recomputes CO attainment for every outcome of a course
func CalculateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseId").(uint)
	semesterID := c.Locals("semesterId").(uint)

	calc := attainment.NewCalculator(attainment.NewGormStore(database.Database.Db))
	results, err := calc.CalcCOAttainment(c.UserContext(), courseID, semesterID)
	if err != nil {
		return errorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "CO attainment calculated.", results)
}

// GetCourse returns the stored CO attainment of a course
func GetCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseId").(uint)
	ctx := c.UserContext()
	store := attainment.NewGormStore(database.Database.Db)

	if _, err := store.CourseByID(ctx, courseID); err != nil {
		return errorResponse(c, err)
	}
	outcomes, err := store.OutcomesByCourse(ctx, courseID)
	if err != nil {
		return errorResponse(c, err)
	}
	records, err := store.COAttainmentsByCourse(ctx, courseID)
	if err != nil {
		return errorResponse(c, err)
	}

	byOutcome := make(map[uint]models.COAttainment, len(records))
	for _, r := range records {
		byOutcome[r.CourseOutcomeID] = r
	}
	rows := make([]fiber.Map, 0, len(outcomes))
	for _, co := range outcomes {
		row := fiber.Map{"course_outcome_id": co.ID, "code": co.Code, "attainment": nil}
		if r, ok := byOutcome[co.ID]; ok {
			row["attainment"] = r
		}
		rows = append(rows, row)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "CO attainment.", rows)
}

// CalculateProgram recomputes PO attainment of a program for one semester and records an audit entry
func CalculateProgram(c *fiber.Ctx) error {
	programID := c.Locals("programId").(uint)
	semesterID := c.Locals("semesterId").(uint)

	triggeredBy := middleware.CurrentUserEmail(c)
	if triggeredBy == "" {
		triggeredBy = models.ActorSystem
	}

	calc := attainment.NewCalculator(attainment.NewGormStore(database.Database.Db))
	run, err := calc.RecalcProgramPO(c.UserContext(), programID, semesterID, triggeredBy)
	if err != nil {
		return errorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "PO attainment calculated.", run)
}

// GetProgram returns the stored PO attainment of a program
func GetProgram(c *fiber.Ctx) error {
	programID := c.Locals("programId").(uint)
	ctx := c.UserContext()
	store := attainment.NewGormStore(database.Database.Db)

	program, err := store.ProgramWithOutcomes(ctx, programID)
	if err != nil {
		return errorResponse(c, err)
	}
	records, err := store.POAttainmentsByProgram(ctx, programID)
	if err != nil {
		return errorResponse(c, err)
	}

	byOutcome := make(map[uint]models.POAttainment, len(records))
	for _, r := range records {
		byOutcome[r.ProgramOutcomeID] = r
	}
	rows := make([]fiber.Map, 0, len(program.Outcomes))
	for _, po := range program.Outcomes {
		row := fiber.Map{"program_outcome_id": po.ID, "code": po.Code, "attainment": nil}
		if r, ok := byOutcome[po.ID]; ok {
			row["attainment"] = r
		}
		rows = append(rows, row)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "PO attainment.", rows)
}
