package academicController

import (
	"log"

	"obe/database"
	"obe/middleware"
	"obe/models"
	academicValidator "obe/validators/academic"

	"github.com/gofiber/fiber/v2"
)

func CreateProgram(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedProgram").(*academicValidator.ProgramRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	if err := db.Where("code = ? AND is_deleted = ?", reqData.Code, false).First(&models.Program{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Program code already exists!", nil)
	}

	program := models.Program{Code: reqData.Code, Name: reqData.Name}
	if err := db.Create(&program).Error; err != nil {
		log.Printf("Error creating program: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create program!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Program created successfully!", program)
}

func ListPrograms(c *fiber.Ctx) error {
	var programs []models.Program
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("code ASC").Find(&programs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch programs!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Program list.", programs)
}

func CreateProgramOutcome(c *fiber.Ctx) error {
	programID := c.Locals("programId").(uint)
	reqData, ok := c.Locals("validatedOutcome").(*academicValidator.OutcomeRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	if err := db.Where("id = ? AND is_deleted = ?", programID, false).First(&models.Program{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Program not found!", nil)
	}
	if err := db.Where("program_id = ? AND code = ? AND is_deleted = ?", programID, reqData.Code, false).First(&models.ProgramOutcome{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Outcome code already exists for this program!", nil)
	}

	outcome := models.ProgramOutcome{ProgramID: programID, Code: reqData.Code, Description: reqData.Description}
	if err := db.Create(&outcome).Error; err != nil {
		log.Printf("Error creating program outcome: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create program outcome!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Program outcome created successfully!", outcome)
}

func ListProgramOutcomes(c *fiber.Ctx) error {
	programID := c.Locals("programId").(uint)

	var outcomes []models.ProgramOutcome
	if err := database.Database.Db.Where("program_id = ? AND is_deleted = ?", programID, false).Order("id ASC").Find(&outcomes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch program outcomes!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Program outcome list.", outcomes)
}

func CreateSemester(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSemester").(*academicValidator.SemesterRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	semester := models.Semester{Name: reqData.Name, Year: reqData.Year, Term: reqData.Term, IsActive: reqData.IsActive}
	if err := database.Database.Db.Create(&semester).Error; err != nil {
		log.Printf("Error creating semester: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create semester!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Semester created successfully!", semester)
}

func ListSemesters(c *fiber.Ctx) error {
	var semesters []models.Semester
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("year DESC, term DESC").Find(&semesters).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch semesters!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Semester list.", semesters)
}
