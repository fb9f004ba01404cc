package auditRoutes

import (
	controllers "obe/controllers/audit"
	"obe/middleware"
	"obe/models"
	validators "obe/validators/audit"

	"github.com/gofiber/fiber/v2"
)

func SetupAuditRoutes(app *fiber.App) {
	auditGroup := app.Group("/audit", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))

	auditGroup.Get("/logs", validators.List(), controllers.ListAuditLogs)
}
