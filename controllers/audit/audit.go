package auditController

import (
	"obe/database"
	"obe/middleware"
	"obe/models"
	"obe/utils"
	auditValidator "obe/validators/audit"

	"github.com/gofiber/fiber/v2"
)

// ListAuditLogs lists the recalculation audit records of one day, newest first
func ListAuditLogs(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAuditList").(*auditValidator.ListRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	start, end, err := utils.DayWindow(reqData.Date)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid date!", nil)
	}

	query := database.Database.Db.Model(&models.AuditLog{}).Where("created_at BETWEEN ? AND ?", start, end)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch audit logs!", nil)
	}

	var logs []models.AuditLog
	offset := (reqData.Page - 1) * reqData.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(reqData.Limit).Find(&logs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch audit logs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Audit log list.", fiber.Map{
		"logs": logs,
		"pagination": fiber.Map{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	})
}
