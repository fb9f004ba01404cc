package attainmentRoutes

import (
	controllers "obe/controllers/attainment"
	"obe/middleware"
	"obe/models"
	validators "obe/validators/attainment"

	"github.com/gofiber/fiber/v2"
)

func SetupAttainmentRoutes(app *fiber.App) {
	attainmentGroup := app.Group("/attainment", middleware.JWTMiddleware)
	staff := middleware.RequireRole(models.RoleAdmin, models.RoleFaculty)

	attainmentGroup.Post("/course/:id/calculate", staff, validators.Target("courseId"), validators.CourseRun(), controllers.CalculateCourse)
	attainmentGroup.Get("/course/:id", validators.Target("courseId"), controllers.GetCourse)

	attainmentGroup.Post("/program/:id/calculate", middleware.RequireRole(models.RoleAdmin), validators.Target("programId"), validators.ProgramRun(), controllers.CalculateProgram)
	attainmentGroup.Get("/program/:id", validators.Target("programId"), controllers.GetProgram)
}
