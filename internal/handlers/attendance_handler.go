package handlers

import (
	"fmt"
	"net/http"
	"time"

	"edujournal/internal/repository"
	"edujournal/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AttendanceHandler представляет обработчик посещаемости
type AttendanceHandler struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceHandler создает новый обработчик посещаемости
func NewAttendanceHandler(attendanceService *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
	}
}

// MarkAttendanceRequest представляет запрос отметки одного ученика
type MarkAttendanceRequest struct {
	StudentID uuid.UUID `json:"student_id" binding:"required"`
	CourseID  uuid.UUID `json:"course_id" binding:"required"`
	Date      string    `json:"date" binding:"required"` // YYYY-MM-DD
	Status    *bool     `json:"status" binding:"required"`
	Notes     string    `json:"notes"`
}

// BulkMarkAttendanceRequest представляет запрос массовой отметки курса
type BulkMarkAttendanceRequest struct {
	CourseID uuid.UUID          `json:"course_id" binding:"required"`
	Date     string             `json:"date" binding:"required"` // YYYY-MM-DD
	Roster   map[uuid.UUID]bool `json:"roster" binding:"required"`
}

// parseDate разбирает дату формата YYYY-MM-DD
func parseDate(value string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return date, nil
}

// Mark отмечает одного ученика. Существующая отметка по ключу
// (ученик, курс, дата) обновляется на месте.
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.attendanceService.Mark(&services.MarkRequest{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Date:      date,
		Status:    *req.Status,
		Actor:     currentActor(c),
		IPAddress: c.ClientIP(),
		Notes:     req.Notes,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, result)
}

// Create отмечает одного ученика без права обновления: существующая
// отметка по ключу дает конфликт
func (h *AttendanceHandler) Create(c *gin.Context) {
	var req MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.attendanceService.Mark(&services.MarkRequest{
		StudentID:  req.StudentID,
		CourseID:   req.CourseID,
		Date:       date,
		Status:     *req.Status,
		Actor:      currentActor(c),
		IPAddress:  c.ClientIP(),
		Notes:      req.Notes,
		CreateOnly: true,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// MarkBulk применяет список отметок курса за дату одной транзакцией
func (h *AttendanceHandler) MarkBulk(c *gin.Context) {
	var req BulkMarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	marked, err := h.attendanceService.MarkBulk(&services.BulkMarkRequest{
		CourseID:  req.CourseID,
		Date:      date,
		Roster:    req.Roster,
		Actor:     currentActor(c),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"marked": marked})
}

// Delete удаляет отметку (только администратор)
func (h *AttendanceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid attendance ID"})
		return
	}

	if err := h.attendanceService.Delete(id, currentActor(c), c.ClientIP(), c.Query("notes")); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "attendance deleted"})
}

// List возвращает отметки по фильтрам запроса:
// course_id, student_id, date_from, date_to, status
func (h *AttendanceHandler) List(c *gin.Context) {
	filter, err := attendanceFilterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records, err := h.attendanceService.Filter(*filter)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"attendance": records, "count": len(records)})
}

// attendanceFilterFromQuery собирает фильтр выборки из query-параметров
func attendanceFilterFromQuery(c *gin.Context) (*repository.AttendanceFilter, error) {
	filter := &repository.AttendanceFilter{}

	if v := c.Query("course_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("invalid course_id")
		}
		filter.CourseID = &id
	}
	if v := c.Query("student_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("invalid student_id")
		}
		filter.StudentID = &id
	}
	if v := c.Query("date_from"); v != "" {
		date, err := parseDate(v)
		if err != nil {
			return nil, err
		}
		date = services.DateOnly(date)
		filter.DateFrom = &date
	}
	if v := c.Query("date_to"); v != "" {
		date, err := parseDate(v)
		if err != nil {
			return nil, err
		}
		date = services.DateOnly(date)
		filter.DateTo = &date
	}
	if v := c.Query("status"); v != "" {
		status := v == "present" || v == "true" || v == "1"
		filter.Status = &status
	}

	return filter, nil
}
