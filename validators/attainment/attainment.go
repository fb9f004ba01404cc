package attainmentValidator

import (
	"obe/middleware"
	"obe/validators"

	"github.com/gofiber/fiber/v2"
)

// Target validates the :id route parameter of a course or program
func Target(localsKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := validators.ParamID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ID!", nil)
		}
		c.Locals(localsKey, id)
		return c.Next()
	}
}

// CourseRun validates the optional semester_id of a course calculation
func CourseRun() fiber.Handler {
	return func(c *fiber.Ctx) error {
		semesterID, ok := validators.QueryID(c, "semester_id")
		if !ok {
			return middleware.ValidationErrorResponse(c, map[string]string{"semester_id": "Invalid semester ID!"})
		}
		c.Locals("semesterId", semesterID)
		return c.Next()
	}
}

// ProgramRun requires semester_id: PO attainment is always computed for one semester
func ProgramRun() fiber.Handler {
	return func(c *fiber.Ctx) error {
		semesterID, ok := validators.QueryID(c, "semester_id")
		if !ok || semesterID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"semester_id": "Semester ID is required!"})
		}
		c.Locals("semesterId", semesterID)
		return c.Next()
	}
}
