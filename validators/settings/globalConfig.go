package settingsValidator

import (
	"math"

	"obe/middleware"
	"obe/services/attainment"
	"obe/validators"

	"github.com/gofiber/fiber/v2"
)

// weightTolerance is how far a weight group may drift from summing to 1
const weightTolerance = 0.001

type GlobalConfigRequest struct {
	CoTargetMarksPercent float64  `json:"co_target_marks_percent" validate:"gt=0,lte=100"`
	IA1Weightage         float64  `json:"ia1_weightage" validate:"gte=0,lte=1"`
	IA2Weightage         float64  `json:"ia2_weightage" validate:"gte=0,lte=1"`
	EndSemWeightage      float64  `json:"end_sem_weightage" validate:"gte=0,lte=1"`
	DirectWeightage      float64  `json:"direct_weightage" validate:"gte=0,lte=1"`
	IndirectWeightage    float64  `json:"indirect_weightage" validate:"gte=0,lte=1"`
	PoTargetLevel        *float64 `json:"po_target_level" validate:"omitempty,gt=0,lte=3"`
	Level3Threshold      *float64 `json:"level3_threshold" validate:"omitempty,gte=0,lte=100"`
	Level2Threshold      *float64 `json:"level2_threshold" validate:"omitempty,gte=0,lte=100"`
	Level1Threshold      *float64 `json:"level1_threshold" validate:"omitempty,gte=0,lte=100"`
}

// crossFieldErrors checks the rules struct tags cannot express
func crossFieldErrors(r *GlobalConfigRequest) map[string]string {
	errors := make(map[string]string)

	if math.Abs(r.IA1Weightage+r.IA2Weightage+r.EndSemWeightage-1) > weightTolerance {
		errors["assessment_weightage"] = "IA1, IA2 and end semester weightages must sum to 1!"
	}
	if math.Abs(r.DirectWeightage+r.IndirectWeightage-1) > weightTolerance {
		errors["direct_indirect_weightage"] = "Direct and indirect weightages must sum to 1!"
	}

	t := attainment.DefaultThresholds
	if r.Level3Threshold != nil {
		t.Level3 = *r.Level3Threshold
	}
	if r.Level2Threshold != nil {
		t.Level2 = *r.Level2Threshold
	}
	if r.Level1Threshold != nil {
		t.Level1 = *r.Level1Threshold
	}
	if !(t.Level3 > t.Level2 && t.Level2 > t.Level1) {
		errors["thresholds"] = "Level thresholds must be strictly descending (level3 > level2 > level1)!"
	}
	return errors
}

// UpdateGlobalConfig validator middleware
func UpdateGlobalConfig() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(GlobalConfigRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := validators.Struct(reqData)
		if len(errors) == 0 {
			errors = crossFieldErrors(reqData)
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedGlobalConfig", reqData)
		return c.Next()
	}
}
