package marksRoutes

import (
	controllers "obe/controllers/marks"
	"obe/middleware"
	"obe/models"
	validators "obe/validators/marks"

	"github.com/gofiber/fiber/v2"
)

func SetupMarksRoutes(app *fiber.App) {
	marksGroup := app.Group("/marks", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin, models.RoleFaculty))

	marksGroup.Post("/assessment/:id/validate", validators.AssessmentID(), validators.Table(), controllers.ValidateMarks)
	marksGroup.Post("/assessment/:id/upload", validators.AssessmentID(), validators.Table(), controllers.UploadMarks)
	marksGroup.Get("/assessment/:id/uploads", validators.AssessmentID(), controllers.UploadHistory)
}
