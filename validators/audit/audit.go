package auditValidator

import (
	"obe/middleware"
	"obe/utils"

	"github.com/gofiber/fiber/v2"
)

type ListRequest struct {
	Date  string `query:"date"`
	Page  int    `query:"page"`
	Limit int    `query:"limit"`
}

// List validates the audit log filters; page and limit default to 1 and 20
func List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ListRequest)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if _, _, err := utils.DayWindow(reqData.Date); err != nil {
			errors["date"] = "Date must be in YYYY-MM-DD format!"
		}
		if reqData.Page == 0 {
			reqData.Page = 1
		} else if reqData.Page < 0 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit == 0 {
			reqData.Limit = 20
		} else if reqData.Limit < 0 || reqData.Limit > 100 {
			errors["limit"] = "Limit must be between 1 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAuditList", reqData)
		return c.Next()
	}
}
