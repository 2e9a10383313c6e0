package handlers

import (
	"net/http"
	"time"

	"edujournal/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GradeHandler представляет обработчик оценок
type GradeHandler struct {
	gradeService *services.GradeService
}

// NewGradeHandler создает новый обработчик оценок
func NewGradeHandler(gradeService *services.GradeService) *GradeHandler {
	return &GradeHandler{
		gradeService: gradeService,
	}
}

// CreateGradeRequest представляет запрос выставления оценки
type CreateGradeRequest struct {
	StudentID      uuid.UUID `json:"student_id" binding:"required"`
	CourseID       uuid.UUID `json:"course_id" binding:"required"`
	AssignmentName string    `json:"assignment_name" binding:"required"`
	Score          float64   `json:"score"`
	MaxScore       float64   `json:"max_score" binding:"required"`
	Letter         string    `json:"letter"`
	DueDate        string    `json:"due_date"` // YYYY-MM-DD
}

// UpdateGradeRequest представляет запрос правки оценки. Отсутствующее
// поле letter сохраняет текущую букву, пустое перевычисляет ее из баллов.
type UpdateGradeRequest struct {
	Score    float64 `json:"score"`
	MaxScore float64 `json:"max_score" binding:"required"`
	Letter   *string `json:"letter"`
}

// Create выставляет оценку
func (h *GradeHandler) Create(c *gin.Context) {
	var req CreateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	create := &services.CreateGradeRequest{
		StudentID:      req.StudentID,
		CourseID:       req.CourseID,
		AssignmentName: req.AssignmentName,
		Score:          req.Score,
		MaxScore:       req.MaxScore,
		Letter:         req.Letter,
		Actor:          currentActor(c),
	}
	if req.DueDate != "" {
		due, err := parseDate(req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		create.DueDate = &due
	}
	now := time.Now()
	create.SubmittedAt = &now

	grade, err := h.gradeService.Create(create)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, grade)
}

// Update правит оценку
func (h *GradeHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid grade ID"})
		return
	}

	var req UpdateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	grade, err := h.gradeService.Update(&services.UpdateGradeRequest{
		GradeID:     id,
		Score:       req.Score,
		MaxScore:    req.MaxScore,
		Letter:      req.Letter,
		SubmittedAt: &now,
		Actor:       currentActor(c),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, grade)
}

// MyGrades возвращает оценки ученика, привязанного к текущей учетной записи
func (h *GradeHandler) MyGrades(c *gin.Context) {
	actor := currentActor(c)
	if actor == nil || !actor.IsStudent() {
		c.JSON(http.StatusForbidden, gin.H{"error": "no student profile for this account"})
		return
	}

	grades, err := h.gradeService.ListByStudent(*actor.StudentID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"grades": grades, "count": len(grades)})
}

// ListByStudent возвращает оценки ученика
func (h *GradeHandler) ListByStudent(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student ID"})
		return
	}

	grades, err := h.gradeService.ListByStudent(studentID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"grades": grades, "count": len(grades)})
}

// ListByCourse возвращает оценки по курсу
func (h *GradeHandler) ListByCourse(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course ID"})
		return
	}

	grades, err := h.gradeService.ListByCourse(courseID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"grades": grades, "count": len(grades)})
}
