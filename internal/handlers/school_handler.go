package handlers

import (
	"net/http"

	"edujournal/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SchoolHandler представляет обработчик справочников школы
type SchoolHandler struct {
	schoolService *services.SchoolService
}

// NewSchoolHandler создает новый обработчик справочников
func NewSchoolHandler(schoolService *services.SchoolService) *SchoolHandler {
	return &SchoolHandler{
		schoolService: schoolService,
	}
}

// StudentRequest представляет запрос создания или правки ученика
type StudentRequest struct {
	Name   string     `json:"name" binding:"required"`
	RollNo int        `json:"roll_no" binding:"required,min=1"`
	Email  string     `json:"email"`
	DOB    string     `json:"dob"` // YYYY-MM-DD
	UserID *uuid.UUID `json:"user_id"`
}

// TeacherRequest представляет запрос создания или правки преподавателя
type TeacherRequest struct {
	Name    string     `json:"name" binding:"required"`
	Email   string     `json:"email"`
	Subject string     `json:"subject"`
	UserID  *uuid.UUID `json:"user_id"`
}

// CourseRequest представляет запрос создания или правки курса
type CourseRequest struct {
	Name      string    `json:"name" binding:"required"`
	Code      *string   `json:"code"`
	TeacherID uuid.UUID `json:"teacher_id" binding:"required"`
}

// CreateStudent создает ученика
func (h *SchoolHandler) CreateStudent(c *gin.Context) {
	var req StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	create := &services.CreateStudentRequest{
		Name:   req.Name,
		RollNo: req.RollNo,
		Email:  req.Email,
		UserID: req.UserID,
	}
	if req.DOB != "" {
		dob, err := parseDate(req.DOB)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		create.DOB = dob
	}

	student, err := h.schoolService.CreateStudent(create)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, student)
}

// GetStudent возвращает ученика с его курсами
func (h *SchoolHandler) GetStudent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student ID"})
		return
	}

	student, err := h.schoolService.GetStudent(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// ListStudents возвращает всех учеников по возрастанию номера в журнале
func (h *SchoolHandler) ListStudents(c *gin.Context) {
	students, err := h.schoolService.ListStudents()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": students, "count": len(students)})
}

// UpdateStudent правит данные ученика
func (h *SchoolHandler) UpdateStudent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student ID"})
		return
	}

	var req StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student, err := h.schoolService.GetStudent(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	student.Name = req.Name
	student.RollNo = req.RollNo
	student.Email = req.Email
	if req.DOB != "" {
		dob, err := parseDate(req.DOB)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		student.DOB = services.DateOnly(dob)
	}
	if req.UserID != nil {
		student.UserID = req.UserID
	}

	if err := h.schoolService.UpdateStudent(student); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// DeleteStudent удаляет ученика
func (h *SchoolHandler) DeleteStudent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student ID"})
		return
	}

	if err := h.schoolService.DeleteStudent(id); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "student deleted"})
}

// CreateTeacher создает преподавателя
func (h *SchoolHandler) CreateTeacher(c *gin.Context) {
	var req TeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	teacher, err := h.schoolService.CreateTeacher(req.Name, req.Email, req.Subject, req.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, teacher)
}

// GetTeacher возвращает преподавателя с его курсами
func (h *SchoolHandler) GetTeacher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid teacher ID"})
		return
	}

	teacher, err := h.schoolService.GetTeacher(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, teacher)
}

// ListTeachers возвращает всех преподавателей
func (h *SchoolHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.schoolService.ListTeachers()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teachers": teachers, "count": len(teachers)})
}

// UpdateTeacher правит данные преподавателя
func (h *SchoolHandler) UpdateTeacher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid teacher ID"})
		return
	}

	var req TeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	teacher, err := h.schoolService.GetTeacher(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	teacher.Name = req.Name
	teacher.Email = req.Email
	teacher.Subject = req.Subject
	if req.UserID != nil {
		teacher.UserID = req.UserID
	}

	if err := h.schoolService.UpdateTeacher(teacher); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, teacher)
}

// DeleteTeacher удаляет преподавателя
func (h *SchoolHandler) DeleteTeacher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid teacher ID"})
		return
	}

	if err := h.schoolService.DeleteTeacher(id); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "teacher deleted"})
}

// CreateCourse создает курс
func (h *SchoolHandler) CreateCourse(c *gin.Context) {
	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course, err := h.schoolService.CreateCourse(req.Name, req.Code, req.TeacherID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

// GetCourse возвращает курс с преподавателем и учениками
func (h *SchoolHandler) GetCourse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course ID"})
		return
	}

	course, err := h.schoolService.GetCourse(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// ListCourses возвращает все курсы
func (h *SchoolHandler) ListCourses(c *gin.Context) {
	courses, err := h.schoolService.ListCourses()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses, "count": len(courses)})
}

// UpdateCourse правит курс
func (h *SchoolHandler) UpdateCourse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course ID"})
		return
	}

	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course, err := h.schoolService.GetCourse(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	course.Name = req.Name
	course.Code = req.Code
	course.TeacherID = req.TeacherID

	if err := h.schoolService.UpdateCourse(course); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// DeleteCourse удаляет курс
func (h *SchoolHandler) DeleteCourse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course ID"})
		return
	}

	if err := h.schoolService.DeleteCourse(id); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "course deleted"})
}

// Enroll зачисляет ученика на курс. Повторный вызов не ошибка.
func (h *SchoolHandler) Enroll(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course ID"})
		return
	}
	studentID, err := uuid.Parse(c.Param("student_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student ID"})
		return
	}

	if err := h.schoolService.Enroll(courseID, studentID); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "student enrolled"})
}

// Unenroll отчисляет ученика с курса
func (h *SchoolHandler) Unenroll(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course ID"})
		return
	}
	studentID, err := uuid.Parse(c.Param("student_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student ID"})
		return
	}

	if err := h.schoolService.Unenroll(courseID, studentID); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "student unenrolled"})
}
