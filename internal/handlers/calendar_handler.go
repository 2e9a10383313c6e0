package handlers

import (
	"net/http"

	"edujournal/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CalendarHandler представляет обработчик заданий и событий календаря
type CalendarHandler struct {
	assignmentService *services.AssignmentService
	eventService      *services.EventService
}

// NewCalendarHandler создает новый обработчик календаря
func NewCalendarHandler(
	assignmentService *services.AssignmentService,
	eventService *services.EventService,
) *CalendarHandler {
	return &CalendarHandler{
		assignmentService: assignmentService,
		eventService:      eventService,
	}
}

// CreateAssignmentRequest представляет запрос создания задания
type CreateAssignmentRequest struct {
	CourseID    uuid.UUID `json:"course_id" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	DueDate     string    `json:"due_date"` // YYYY-MM-DD
}

// CreateEventRequest представляет запрос создания события
type CreateEventRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	CourseID    *uuid.UUID `json:"course_id"`
	StartDate   string     `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate     string     `json:"end_date" binding:"required"`   // YYYY-MM-DD
}

// CreateAssignment создает задание курса
func (h *CalendarHandler) CreateAssignment(c *gin.Context) {
	var req CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	create := &services.CreateAssignmentRequest{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		Actor:       currentActor(c),
	}
	if req.DueDate != "" {
		due, err := parseDate(req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		create.DueDate = &due
	}

	assignment, err := h.assignmentService.Create(create)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

// ListAssignments возвращает задания курса
func (h *CalendarHandler) ListAssignments(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course ID"})
		return
	}

	assignments, err := h.assignmentService.ListByCourse(courseID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assignments": assignments, "count": len(assignments)})
}

// DeleteAssignment удаляет задание
func (h *CalendarHandler) DeleteAssignment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment ID"})
		return
	}

	if err := h.assignmentService.Delete(id, currentActor(c)); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "assignment deleted"})
}

// CreateEvent создает событие календаря
func (h *CalendarHandler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventService.Create(&services.CreateEventRequest{
		Title:       req.Title,
		Description: req.Description,
		CourseID:    req.CourseID,
		StartDate:   start,
		EndDate:     end,
		Actor:       currentActor(c),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// ListEvents возвращает события в интервале [from, to]
func (h *CalendarHandler) ListEvents(c *gin.Context) {
	from, err := parseDate(c.DefaultQuery("from", "0001-01-01"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	to, err := parseDate(c.DefaultQuery("to", "9999-12-31"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := h.eventService.ListInRange(from, to)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}

// DeleteEvent удаляет событие
func (h *CalendarHandler) DeleteEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	if err := h.eventService.Delete(id, currentActor(c)); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}
