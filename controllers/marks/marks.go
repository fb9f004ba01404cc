package marksController

import (
	"log"

	"obe/config"
	"obe/database"
	"obe/middleware"
	"obe/services/marks"
	"obe/utils"
	marksValidator "obe/validators/marks"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

func service() *marks.Service {
	return marks.NewService(marks.NewGormStore(database.Database.Db))
}

func errorResponse(c *fiber.Ctx, err error, res *marks.ValidationResult) error {
	switch {
	case errors.Is(err, marks.ErrAssessmentNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assessment not found!", nil)
	case errors.Is(err, marks.ErrInvalidUpload):
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Marks file failed validation!", res)
	default:
		log.Printf("[MARKS] %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process marks!", nil)
	}
}

// ValidateMarks is a dry run: it returns the ValidationResult and stores nothing
func ValidateMarks(c *fiber.Ctx) error {
	assessmentID := c.Locals("assessmentId").(uint)
	table, ok := c.Locals("validatedMarksTable").(*marksValidator.MarksTable)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	res, err := service().Validate(c.UserContext(), assessmentID, table.Headers, table.Rows)
	if err != nil {
		return errorResponse(c, err, nil)
	}

	message := "Marks file is valid."
	if !res.Valid {
		message = "Marks file has errors."
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, res)
}

// UploadMarks validates the sheet and, when valid, stores it as the assessment's current marks.
// The raw sheet is archived under UPLOAD_DIR only for valid uploads.
func UploadMarks(c *fiber.Ctx) error {
	assessmentID := c.Locals("assessmentId").(uint)
	table, ok := c.Locals("validatedMarksTable").(*marksValidator.MarksTable)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	uploadDir := config.AppConfig.UploadDir
	upload, res, err := service().Ingest(c.UserContext(), marks.Upload{
		AssessmentID: assessmentID,
		UploadedBy:   middleware.CurrentUserEmail(c),
		FileName:     table.FileName,
		Headers:      table.Headers,
		Rows:         table.Rows,
		Archive: func() (string, error) {
			// Keep the original file when one was posted, otherwise write the JSON table as CSV
			if table.File != nil {
				return utils.SaveUploadedFile(table.File, uploadDir, assessmentID)
			}
			return utils.SaveTable(table.Headers, table.Rows, uploadDir, assessmentID)
		},
	})
	if err != nil {
		return errorResponse(c, err, res)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Marks uploaded successfully!", fiber.Map{
		"upload":     upload,
		"validation": res,
	})
}

// UploadHistory lists the assessment's upload log with the current upload flagged
func UploadHistory(c *fiber.Ctx) error {
	assessmentID := c.Locals("assessmentId").(uint)

	history, err := service().History(c.UserContext(), assessmentID)
	if err != nil {
		return errorResponse(c, err, nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Upload history.", history)
}
