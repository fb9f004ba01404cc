package academicController

import (
	"log"

	"obe/database"
	"obe/middleware"
	"obe/models"
	academicValidator "obe/validators/academic"

	"github.com/gofiber/fiber/v2"
)

func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*academicValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	if err := db.Where("id = ? AND is_deleted = ?", reqData.ProgramID, false).First(&models.Program{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Program not found!", nil)
	}
	if err := db.Where("id = ? AND is_deleted = ?", reqData.SemesterID, false).First(&models.Semester{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Semester not found!", nil)
	}

	course := models.Course{
		ProgramID:  reqData.ProgramID,
		SemesterID: reqData.SemesterID,
		Code:       reqData.Code,
		Name:       reqData.Name,
	}
	if err := db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

func ListCourses(c *fiber.Ctx) error {
	programID := c.Locals("programId").(uint)
	semesterID := c.Locals("semesterId").(uint)

	query := database.Database.Db.Where("is_deleted = ?", false)
	if programID != 0 {
		query = query.Where("program_id = ?", programID)
	}
	if semesterID != 0 {
		query = query.Where("semester_id = ?", semesterID)
	}

	var courses []models.Course
	if err := query.Order("code ASC").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course list.", courses)
}

func CreateCourseOutcome(c *fiber.Ctx) error {
	courseID := c.Locals("courseId").(uint)
	reqData, ok := c.Locals("validatedOutcome").(*academicValidator.OutcomeRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&models.Course{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if err := db.Where("course_id = ? AND code = ? AND is_deleted = ?", courseID, reqData.Code, false).First(&models.CourseOutcome{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Outcome code already exists for this course!", nil)
	}

	outcome := models.CourseOutcome{CourseID: courseID, Code: reqData.Code, Description: reqData.Description}
	if err := db.Create(&outcome).Error; err != nil {
		log.Printf("Error creating course outcome: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course outcome!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course outcome created successfully!", outcome)
}

func ListCourseOutcomes(c *fiber.Ctx) error {
	courseID := c.Locals("courseId").(uint)

	var outcomes []models.CourseOutcome
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("id ASC").Find(&outcomes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course outcomes!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course outcome list.", outcomes)
}

// CreateMapping links a CO to a PO of the course's own program
func CreateMapping(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedMapping").(*academicValidator.MappingRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var co models.CourseOutcome
	if err := db.Where("id = ? AND is_deleted = ?", reqData.CourseOutcomeID, false).First(&co).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course outcome not found!", nil)
	}
	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", co.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	var po models.ProgramOutcome
	if err := db.Where("id = ? AND is_deleted = ?", reqData.ProgramOutcomeID, false).First(&po).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Program outcome not found!", nil)
	}
	if po.ProgramID != course.ProgramID {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"program_outcome_id": "Program outcome belongs to a different program than the course!",
		})
	}

	var mapping models.CoPoMapping
	err := db.Where("course_outcome_id = ? AND program_outcome_id = ? AND is_deleted = ?", co.ID, po.ID, false).First(&mapping).Error
	if err == nil {
		mapping.Value = reqData.Value
		if err := db.Save(&mapping).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update mapping!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Mapping updated successfully!", mapping)
	}

	mapping = models.CoPoMapping{
		CourseID:         course.ID,
		CourseOutcomeID:  co.ID,
		ProgramOutcomeID: po.ID,
		Value:            reqData.Value,
	}
	if err := db.Create(&mapping).Error; err != nil {
		log.Printf("Error creating mapping: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create mapping!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Mapping created successfully!", mapping)
}

func ListCourseMappings(c *fiber.Ctx) error {
	courseID := c.Locals("courseId").(uint)

	var mappings []models.CoPoMapping
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("course_outcome_id ASC, program_outcome_id ASC").Find(&mappings).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch mappings!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Mapping list.", mappings)
}

func DeleteMapping(c *fiber.Ctx) error {
	mappingID := c.Locals("mappingId").(uint)

	result := database.Database.Db.Model(&models.CoPoMapping{}).
		Where("id = ? AND is_deleted = ?", mappingID, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete mapping!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Mapping not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Mapping deleted successfully!", nil)
}
