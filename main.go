package main

import (
	"log"

	"obe/config"
	"obe/database"
	"obe/middleware"
	"obe/routers/academicRoutes"
	"obe/routers/attainmentRoutes"
	"obe/routers/auditRoutes"
	"obe/routers/authRoutes"
	"obe/routers/marksRoutes"
	"obe/routers/settingsRoutes"
	"obe/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupApp builds the fiber app with middleware and every route group
func SetupApp() *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // marks CSVs
	})

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Use(middleware.GlobalRateLimiter())

	authRoutes.SetupAuthRoutes(app)
	academicRoutes.SetupAcademicRoutes(app)
	marksRoutes.SetupMarksRoutes(app)
	attainmentRoutes.SetupAttainmentRoutes(app)
	settingsRoutes.SetupSettingsRoutes(app)
	auditRoutes.SetupAuditRoutes(app)

	return app
}

func main() {
	config.LoadConfig()
	database.ConnectDb()

	scheduler, err := utils.InitializeSchedulers(database.Database.Db, config.AppConfig)
	if err != nil {
		log.Fatalf("Failed to start schedulers: %v", err)
	}
	defer scheduler.Stop()

	app := SetupApp()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
