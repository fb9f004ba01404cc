package academicRoutes

import (
	controllers "obe/controllers/academic"
	"obe/middleware"
	"obe/models"
	validators "obe/validators/academic"

	"github.com/gofiber/fiber/v2"
)

// SetupAcademicRoutes registers program, semester, course, outcome, mapping and assessment setup
func SetupAcademicRoutes(app *fiber.App) {
	academicGroup := app.Group("/academic", middleware.JWTMiddleware)
	admin := middleware.RequireRole(models.RoleAdmin)

	// Programs and Program Outcomes
	academicGroup.Post("/program", admin, validators.CreateProgram(), controllers.CreateProgram)
	academicGroup.Get("/program/list", controllers.ListPrograms)
	academicGroup.Post("/program/:id/outcome", admin, validators.ID("programId"), validators.CreateOutcome(), controllers.CreateProgramOutcome)
	academicGroup.Get("/program/:id/outcomes", validators.ID("programId"), controllers.ListProgramOutcomes)

	// Semesters
	academicGroup.Post("/semester", admin, validators.CreateSemester(), controllers.CreateSemester)
	academicGroup.Get("/semester/list", controllers.ListSemesters)

	// Courses and Course Outcomes
	academicGroup.Post("/course", admin, validators.CreateCourse(), controllers.CreateCourse)
	academicGroup.Get("/course/list", validators.CourseFilter(), controllers.ListCourses)
	academicGroup.Post("/course/:id/outcome", admin, validators.ID("courseId"), validators.CreateOutcome(), controllers.CreateCourseOutcome)
	academicGroup.Get("/course/:id/outcomes", validators.ID("courseId"), controllers.ListCourseOutcomes)

	// CO -> PO mappings
	academicGroup.Post("/mapping", admin, validators.CreateMapping(), controllers.CreateMapping)
	academicGroup.Get("/course/:id/mappings", validators.ID("courseId"), controllers.ListCourseMappings)
	academicGroup.Delete("/mapping/:id", admin, validators.ID("mappingId"), controllers.DeleteMapping)

	// Assessments and questions
	academicGroup.Post("/course/:id/assessment", admin, validators.ID("courseId"), validators.CreateAssessment(), controllers.CreateAssessment)
	academicGroup.Get("/course/:id/assessments", validators.ID("courseId"), controllers.ListAssessments)
	academicGroup.Post("/assessment/:id/question", admin, validators.ID("assessmentId"), validators.CreateQuestion(), controllers.CreateQuestion)
	academicGroup.Get("/assessment/:id/questions", validators.ID("assessmentId"), controllers.ListQuestions)

	// Indirect (survey) scores
	academicGroup.Put("/survey", admin, validators.UpsertSurvey(), controllers.UpsertSurvey)
}
