package auditLogController

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"time"

	"slotbook/database"
	"slotbook/middleware"
	"slotbook/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func applyFilters(query *gorm.DB, c *fiber.Ctx) *gorm.DB {
	if startDate := c.Query("startDate"); startDate != "" {
		query = query.Where("created_at >= ?", startDate)
	}
	if endDate := c.Query("endDate"); endDate != "" {
		query = query.Where("created_at <= ?", endDate)
	}
	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}
	if entityType := c.Query("entityType"); entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}
	if adminID := c.Query("adminId"); adminID != "" {
		query = query.Where("admin_id = ?", adminID)
	}
	return query
}

// GetAuditLogs lists audit entries, newest first, with filters and
// pagination.
func GetAuditLogs(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := applyFilters(database.Database.Db.Model(&models.AuditLog{}), c)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("Error counting audit logs: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch audit logs!", nil)
	}

	var logs []models.AuditLog
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&logs).Error; err != nil {
		log.Printf("Error fetching audit logs: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch audit logs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Audit logs fetched successfully.", fiber.Map{
		"logs":   logs,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// GetAuditStats aggregates audit entries by action and entity type.
func GetAuditStats(c *fiber.Ctx) error {
	query := applyFilters(database.Database.Db.Model(&models.AuditLog{}), c)

	var logs []models.AuditLog
	if err := query.Order("created_at DESC").Find(&logs).Error; err != nil {
		log.Printf("Error fetching audit logs for stats: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch audit stats!", nil)
	}

	actionsByType := map[string]int{}
	actionsByEntity := map[string]int{}
	for _, entry := range logs {
		actionsByType[entry.Action]++
		actionsByEntity[entry.EntityType]++
	}

	recent := logs
	if len(recent) > 10 {
		recent = recent[:10]
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Audit stats fetched successfully.", fiber.Map{
		"totalActions":    len(logs),
		"actionsByType":   actionsByType,
		"actionsByEntity": actionsByEntity,
		"recentActions":   recent,
	})
}

// ExportAuditLogs streams the filtered audit trail as a CSV attachment.
func ExportAuditLogs(c *fiber.Ctx) error {
	query := applyFilters(database.Database.Db.Model(&models.AuditLog{}), c)

	var logs []models.AuditLog
	if err := query.Order("created_at DESC").Find(&logs).Error; err != nil {
		log.Printf("Error fetching audit logs for export: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to export audit logs!", nil)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{"Date/Time", "Admin Username", "Action", "Entity Type", "Entity ID", "IP Address", "Old Values", "New Values"})
	for _, entry := range logs {
		_ = w.Write([]string{
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
			entry.AdminUsername,
			entry.Action,
			entry.EntityType,
			entry.EntityID,
			entry.IPAddress,
			string(entry.OldValues),
			string(entry.NewValues),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Printf("Error writing audit CSV: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to export audit logs!", nil)
	}

	filename := fmt.Sprintf("audit_logs_%d.csv", time.Now().Unix())
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+filename)
	return c.Send(buf.Bytes())
}
