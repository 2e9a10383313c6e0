package handlers

import (
	"fmt"
	"net/http"
	"time"

	"edujournal/internal/models"
	"edujournal/internal/repository"
	"edujournal/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportHandler представляет обработчик отчетов, выгрузок и журнала изменений
type ReportHandler struct {
	statsService     *services.StatsService
	exportService    *services.ExportService
	dashboardService *services.DashboardService
	auditRepo        repository.AuditLogRepository
}

// NewReportHandler создает новый обработчик отчетов
func NewReportHandler(
	statsService *services.StatsService,
	exportService *services.ExportService,
	dashboardService *services.DashboardService,
	auditRepo repository.AuditLogRepository,
) *ReportHandler {
	return &ReportHandler{
		statsService:     statsService,
		exportService:    exportService,
		dashboardService: dashboardService,
		auditRepo:        auditRepo,
	}
}

// Dashboard возвращает счетчики стартовой панели по роли запроса
func (h *ReportHandler) Dashboard(c *gin.Context) {
	summary, err := h.dashboardService.Summary(currentActor(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// CourseStats возвращает агрегаты посещаемости курса
func (h *ReportHandler) CourseStats(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course ID"})
		return
	}

	stats, err := h.statsService.CourseStats(courseID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// StudentPercentage возвращает процент посещаемости ученика на курсе
func (h *ReportHandler) StudentPercentage(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student ID"})
		return
	}
	courseID, err := uuid.Parse(c.Query("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course_id is required"})
		return
	}

	percent, err := h.statsService.AttendancePercentage(studentID, courseID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"student_id": studentID,
		"course_id":  courseID,
		"percentage": percent,
	})
}

// StudentReport возвращает сводку ученика по всем его курсам
func (h *ReportHandler) StudentReport(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student ID"})
		return
	}

	report, err := h.statsService.StudentReport(studentID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"student_id": studentID, "courses": report})
}

// Export выгружает посещаемость по фильтрам запроса.
// Параметр format выбирает форму: csv (по умолчанию), json или xlsx.
func (h *ReportHandler) Export(c *gin.Context) {
	filter, err := attendanceFilterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.exportService.Rows(*filter)
	if err != nil {
		abortWithError(c, err)
		return
	}

	stamp := time.Now().Format("2006-01-02")
	switch c.DefaultQuery("format", "csv") {
	case "json":
		c.JSON(http.StatusOK, rows)
	case "xlsx":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=attendance_%s.xlsx", stamp))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := h.exportService.WriteXLSX(c.Writer, rows); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	case "csv":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=attendance_%s.csv", stamp))
		c.Header("Content-Type", "text/csv")
		if err := h.exportService.WriteCSV(c.Writer, rows); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown format, expected csv, json or xlsx"})
	}
}

// AuditLogs возвращает журнал изменений посещаемости, свежие первыми.
// Фильтры: action, user_id, course_name, limit.
func (h *ReportHandler) AuditLogs(c *gin.Context) {
	filter := repository.AuditFilter{
		CourseName: c.Query("course_name"),
	}

	if v := c.Query("action"); v != "" {
		action := models.AuditAction(v)
		filter.Action = &action
	}
	if v := c.Query("user_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
			return
		}
		filter.UserID = &id
	}
	if v := c.Query("limit"); v != "" {
		if _, err := fmt.Sscanf(v, "%d", &filter.Limit); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
	}

	entries, err := h.auditRepo.List(filter)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}

// AttendanceHistory возвращает записи журнала одной отметки, старые первыми
func (h *ReportHandler) AttendanceHistory(c *gin.Context) {
	attendanceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid attendance ID"})
		return
	}

	entries, err := h.auditRepo.ListByAttendance(attendanceID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}
