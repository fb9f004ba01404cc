package settingsController

import (
	"log"

	"obe/database"
	"obe/middleware"
	"obe/models"
	"obe/services/attainment"
	settingsValidator "obe/validators/settings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// GetGlobalConfig returns the stored row and the effective values a calculation would use
func GetGlobalConfig(c *fiber.Ctx) error {
	calc := attainment.NewCalculator(attainment.NewGormStore(database.Database.Db))
	effective, err := calc.LoadConfig(c.UserContext())
	if err != nil {
		if attainment.IsPrecondition(err) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, err.Error(), nil)
		}
		log.Printf("Error loading global config: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load global config!", nil)
	}

	var stored models.GlobalConfig
	if err := database.Database.Db.First(&stored, models.GlobalConfigID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load global config!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Global config.", fiber.Map{
		"config":    stored,
		"effective": effective,
	})
}

// UpdateGlobalConfig replaces the singleton row; later calculations pick it up
func UpdateGlobalConfig(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedGlobalConfig").(*settingsValidator.GlobalConfigRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	gc := models.GlobalConfig{
		ID:                   models.GlobalConfigID,
		CoTargetMarksPercent: reqData.CoTargetMarksPercent,
		IA1Weightage:         reqData.IA1Weightage,
		IA2Weightage:         reqData.IA2Weightage,
		EndSemWeightage:      reqData.EndSemWeightage,
		DirectWeightage:      reqData.DirectWeightage,
		IndirectWeightage:    reqData.IndirectWeightage,
		PoTargetLevel:        reqData.PoTargetLevel,
		Level3Threshold:      reqData.Level3Threshold,
		Level2Threshold:      reqData.Level2Threshold,
		Level1Threshold:      reqData.Level1Threshold,
		UpdatedBy:            middleware.CurrentUserEmail(c),
	}

	err := database.Database.Db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&gc).Error
	if err != nil {
		log.Printf("Error saving global config: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save global config!", nil)
	}

	log.Printf("[CONFIG] global config updated by %s", gc.UpdatedBy)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Global config updated.", gc)
}
