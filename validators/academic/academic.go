package academicValidator

import (
	"strings"

	"obe/middleware"
	"obe/validators"

	"github.com/gofiber/fiber/v2"
)

type ProgramRequest struct {
	Code string `json:"code" validate:"required,max=32"`
	Name string `json:"name" validate:"required,min=3"`
}

type SemesterRequest struct {
	Name     string `json:"name" validate:"required"`
	Year     int    `json:"year" validate:"gte=2000,lte=2100"`
	Term     int    `json:"term" validate:"gte=1,lte=8"`
	IsActive bool   `json:"is_active"`
}

type CourseRequest struct {
	ProgramID  uint   `json:"program_id" validate:"required"`
	SemesterID uint   `json:"semester_id" validate:"required"`
	Code       string `json:"code" validate:"required,max=32"`
	Name       string `json:"name" validate:"required,min=3"`
}

type OutcomeRequest struct {
	Code        string `json:"code" validate:"required,max=16"`
	Description string `json:"description"`
}

type MappingRequest struct {
	CourseOutcomeID  uint    `json:"course_outcome_id" validate:"required"`
	ProgramOutcomeID uint    `json:"program_outcome_id" validate:"required"`
	Value            float64 `json:"value" validate:"gt=0"`
}

type AssessmentRequest struct {
	Type string `json:"type" validate:"required,oneof=IA1 IA2 ENDSEM"`
	Name string `json:"name"`
}

type QuestionRequest struct {
	QuestionCode    string  `json:"question_code" validate:"required,max=32"`
	MaxMarks        float64 `json:"max_marks" validate:"gt=0"`
	CourseOutcomeID *uint   `json:"course_outcome_id"`
}

type SurveyRequest struct {
	TargetType    string  `json:"target_type" validate:"required,oneof=CO PO"`
	TargetID      uint    `json:"target_id" validate:"required"`
	AverageScore  float64 `json:"average_score" validate:"gte=0,lte=3"`
	ResponseCount int     `json:"response_count" validate:"gte=0"`
}

// ID validates the :id route parameter and stores it under localsKey
func ID(localsKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := validators.ParamID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ID!", nil)
		}
		c.Locals(localsKey, id)
		return c.Next()
	}
}

// body parses and validates a request body of type T into Locals(localsKey)
func body[T any](localsKey string, normalize func(*T)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(T)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if normalize != nil {
			normalize(reqData)
		}

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals(localsKey, reqData)
		return c.Next()
	}
}

func upper(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

func CreateProgram() fiber.Handler {
	return body("validatedProgram", func(r *ProgramRequest) {
		r.Code = upper(r.Code)
		r.Name = strings.TrimSpace(r.Name)
	})
}

func CreateSemester() fiber.Handler {
	return body("validatedSemester", func(r *SemesterRequest) {
		r.Name = strings.TrimSpace(r.Name)
	})
}

func CreateCourse() fiber.Handler {
	return body("validatedCourse", func(r *CourseRequest) {
		r.Code = upper(r.Code)
		r.Name = strings.TrimSpace(r.Name)
	})
}

func CreateOutcome() fiber.Handler {
	return body("validatedOutcome", func(r *OutcomeRequest) {
		r.Code = upper(r.Code)
		r.Description = strings.TrimSpace(r.Description)
	})
}

func CreateMapping() fiber.Handler {
	return body[MappingRequest]("validatedMapping", nil)
}

func CreateAssessment() fiber.Handler {
	return body("validatedAssessment", func(r *AssessmentRequest) {
		r.Type = upper(r.Type)
		r.Name = strings.TrimSpace(r.Name)
	})
}

func CreateQuestion() fiber.Handler {
	return body("validatedQuestion", func(r *QuestionRequest) {
		r.QuestionCode = strings.TrimSpace(r.QuestionCode)
	})
}

func UpsertSurvey() fiber.Handler {
	return body("validatedSurvey", func(r *SurveyRequest) {
		r.TargetType = upper(r.TargetType)
	})
}

// CourseFilter validates the optional program_id and semester_id query filters
func CourseFilter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		programID, ok := validators.QueryID(c, "program_id")
		if !ok {
			errors["program_id"] = "Invalid program ID!"
		}
		semesterID, ok := validators.QueryID(c, "semester_id")
		if !ok {
			errors["semester_id"] = "Invalid semester ID!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("programId", programID)
		c.Locals("semesterId", semesterID)
		return c.Next()
	}
}
