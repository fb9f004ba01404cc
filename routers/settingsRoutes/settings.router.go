package settingsRoutes

import (
	controllers "obe/controllers/settings"
	"obe/middleware"
	"obe/models"
	validators "obe/validators/settings"

	"github.com/gofiber/fiber/v2"
)

func SetupSettingsRoutes(app *fiber.App) {
	configGroup := app.Group("/config", middleware.JWTMiddleware)

	configGroup.Get("/global", controllers.GetGlobalConfig)
	configGroup.Put("/global", middleware.RequireRole(models.RoleAdmin), validators.UpdateGlobalConfig(), controllers.UpdateGlobalConfig)
}
