package academicController

import (
	"log"
	"strings"
	"time"

	"obe/database"
	"obe/middleware"
	"obe/models"
	"obe/services/attainment"
	academicValidator "obe/validators/academic"

	"github.com/gofiber/fiber/v2"
)

func CreateAssessment(c *fiber.Ctx) error {
	courseID := c.Locals("courseId").(uint)
	reqData, ok := c.Locals("validatedAssessment").(*academicValidator.AssessmentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&models.Course{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	assessment := models.Assessment{CourseID: courseID, Type: reqData.Type, Name: reqData.Name}
	if assessment.Name == "" {
		assessment.Name = reqData.Type
	}
	if err := db.Create(&assessment).Error; err != nil {
		log.Printf("Error creating assessment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create assessment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assessment created successfully!", assessment)
}

func ListAssessments(c *fiber.Ctx) error {
	courseID := c.Locals("courseId").(uint)

	var assessments []models.Assessment
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("id ASC").Find(&assessments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assessments!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessment list.", assessments)
}

// CreateQuestion adds a question; its CO, when given, must belong to the assessment's course
func CreateQuestion(c *fiber.Ctx) error {
	assessmentID := c.Locals("assessmentId").(uint)
	reqData, ok := c.Locals("validatedQuestion").(*academicValidator.QuestionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var assessment models.Assessment
	if err := db.Where("id = ? AND is_deleted = ?", assessmentID, false).First(&assessment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assessment not found!", nil)
	}

	if reqData.CourseOutcomeID != nil {
		var co models.CourseOutcome
		if err := db.Where("id = ? AND is_deleted = ?", *reqData.CourseOutcomeID, false).First(&co).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course outcome not found!", nil)
		}
		if co.CourseID != assessment.CourseID {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"course_outcome_id": "Course outcome belongs to a different course than the assessment!",
			})
		}
	}

	var existing []models.AssessmentQuestion
	if err := db.Where("assessment_id = ? AND is_deleted = ?", assessmentID, false).Find(&existing).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}
	for _, q := range existing {
		if strings.EqualFold(q.QuestionCode, reqData.QuestionCode) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Question code already exists for this assessment!", nil)
		}
	}

	question := models.AssessmentQuestion{
		AssessmentID:    assessmentID,
		QuestionCode:    reqData.QuestionCode,
		MaxMarks:        reqData.MaxMarks,
		CourseOutcomeID: reqData.CourseOutcomeID,
	}
	if err := db.Create(&question).Error; err != nil {
		log.Printf("Error creating question: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question created successfully!", question)
}

func ListQuestions(c *fiber.Ctx) error {
	assessmentID := c.Locals("assessmentId").(uint)

	var questions []models.AssessmentQuestion
	if err := database.Database.Db.Where("assessment_id = ? AND is_deleted = ?", assessmentID, false).Order("id ASC").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question list.", questions)
}

// UpsertSurvey records a manually entered survey aggregate for a CO or PO
func UpsertSurvey(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSurvey").(*academicValidator.SurveyRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	var target interface{} = &models.CourseOutcome{}
	if reqData.TargetType == models.SurveyTargetPO {
		target = &models.ProgramOutcome{}
	}
	if err := db.Where("id = ? AND is_deleted = ?", reqData.TargetID, false).First(target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Survey target not found!", nil)
	}

	agg := models.SurveyAggregate{
		TargetType:    reqData.TargetType,
		TargetID:      reqData.TargetID,
		AverageScore:  reqData.AverageScore,
		ResponseCount: reqData.ResponseCount,
		Source:        "MANUAL",
		SyncedAt:      time.Now(),
	}
	if err := attainment.NewGormStore(db).UpsertSurveyAggregate(c.UserContext(), &agg); err != nil {
		log.Printf("Error saving survey aggregate: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save survey aggregate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Survey aggregate saved.", agg)
}
