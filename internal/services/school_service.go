package services

import (
	"fmt"
	"time"

	"edujournal/internal/models"
	"edujournal/internal/repository"

	"github.com/google/uuid"
)

// SchoolService управляет справочниками школы: учениками,
// преподавателями, курсами и зачислением
type SchoolService struct {
	studentRepo repository.StudentRepository
	teacherRepo repository.TeacherRepository
	courseRepo  repository.CourseRepository
}

// NewSchoolService создает новый сервис справочников
func NewSchoolService(
	studentRepo repository.StudentRepository,
	teacherRepo repository.TeacherRepository,
	courseRepo repository.CourseRepository,
) *SchoolService {
	return &SchoolService{
		studentRepo: studentRepo,
		teacherRepo: teacherRepo,
		courseRepo:  courseRepo,
	}
}

// CreateStudentRequest представляет запрос на создание ученика
type CreateStudentRequest struct {
	Name   string
	RollNo int
	Email  string
	DOB    time.Time
	UserID *uuid.UUID
}

// CreateStudent создает ученика. Номер в журнале уникален.
func (s *SchoolService) CreateStudent(req *CreateStudentRequest) (*models.Student, error) {
	if req.Name == "" || req.RollNo <= 0 {
		return nil, fmt.Errorf("%w: name and positive roll number are required", ErrValidationFailed)
	}

	if _, err := s.studentRepo.GetByRollNo(req.RollNo); err == nil {
		return nil, fmt.Errorf("%w: roll number %d already taken", ErrValidationFailed, req.RollNo)
	}

	student := &models.Student{
		Name:   req.Name,
		RollNo: req.RollNo,
		Email:  req.Email,
		DOB:    DateOnly(req.DOB),
		UserID: req.UserID,
	}

	if err := s.studentRepo.Create(student); err != nil {
		if isDuplicate(err) {
			return nil, fmt.Errorf("%w: roll number %d already taken", ErrValidationFailed, req.RollNo)
		}
		return nil, fmt.Errorf("failed to create student: %w", err)
	}
	return student, nil
}

// GetStudent получает ученика по ID
func (s *SchoolService) GetStudent(id uuid.UUID) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("student: %w", ErrNotFound)
		}
		return nil, err
	}
	return student, nil
}

// ListStudents возвращает всех учеников по возрастанию номера в журнале
func (s *SchoolService) ListStudents() ([]models.Student, error) {
	return s.studentRepo.List()
}

// UpdateStudent обновляет данные ученика
func (s *SchoolService) UpdateStudent(student *models.Student) error {
	if student.Name == "" || student.RollNo <= 0 {
		return fmt.Errorf("%w: name and positive roll number are required", ErrValidationFailed)
	}
	if err := s.studentRepo.Update(student); err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%w: roll number %d already taken", ErrValidationFailed, student.RollNo)
		}
		return fmt.Errorf("failed to update student: %w", err)
	}
	return nil
}

// DeleteStudent удаляет ученика вместе с его посещаемостью и оценками
func (s *SchoolService) DeleteStudent(id uuid.UUID) error {
	if _, err := s.GetStudent(id); err != nil {
		return err
	}
	return s.studentRepo.Delete(id)
}

// CreateTeacher создает преподавателя
func (s *SchoolService) CreateTeacher(name, email, subject string, userID *uuid.UUID) (*models.Teacher, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: teacher name is required", ErrValidationFailed)
	}

	teacher := &models.Teacher{
		Name:    name,
		Email:   email,
		Subject: subject,
		UserID:  userID,
	}
	if err := s.teacherRepo.Create(teacher); err != nil {
		return nil, fmt.Errorf("failed to create teacher: %w", err)
	}
	return teacher, nil
}

// GetTeacher получает преподавателя по ID
func (s *SchoolService) GetTeacher(id uuid.UUID) (*models.Teacher, error) {
	teacher, err := s.teacherRepo.GetByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("teacher: %w", ErrNotFound)
		}
		return nil, err
	}
	return teacher, nil
}

// ListTeachers возвращает всех преподавателей
func (s *SchoolService) ListTeachers() ([]models.Teacher, error) {
	return s.teacherRepo.List()
}

// UpdateTeacher обновляет данные преподавателя
func (s *SchoolService) UpdateTeacher(teacher *models.Teacher) error {
	if teacher.Name == "" {
		return fmt.Errorf("%w: teacher name is required", ErrValidationFailed)
	}
	return s.teacherRepo.Update(teacher)
}

// DeleteTeacher удаляет преподавателя вместе с его курсами
func (s *SchoolService) DeleteTeacher(id uuid.UUID) error {
	if _, err := s.GetTeacher(id); err != nil {
		return err
	}
	return s.teacherRepo.Delete(id)
}

// CreateCourse создает курс, принадлежащий преподавателю
func (s *SchoolService) CreateCourse(name string, code *string, teacherID uuid.UUID) (*models.Course, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: course name is required", ErrValidationFailed)
	}

	if _, err := s.teacherRepo.GetByID(teacherID); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("teacher: %w", ErrNotFound)
		}
		return nil, err
	}

	course := &models.Course{
		Name:      name,
		Code:      code,
		TeacherID: teacherID,
	}
	if err := s.courseRepo.Create(course); err != nil {
		if isDuplicate(err) {
			return nil, fmt.Errorf("%w: course code already taken", ErrValidationFailed)
		}
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	return course, nil
}

// GetCourse получает курс по ID
func (s *SchoolService) GetCourse(id uuid.UUID) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("course: %w", ErrNotFound)
		}
		return nil, err
	}
	return course, nil
}

// ListCourses возвращает все курсы
func (s *SchoolService) ListCourses() ([]models.Course, error) {
	return s.courseRepo.List()
}

// ListCoursesByTeacher возвращает курсы преподавателя
func (s *SchoolService) ListCoursesByTeacher(teacherID uuid.UUID) ([]models.Course, error) {
	return s.courseRepo.ListByTeacher(teacherID)
}

// UpdateCourse обновляет курс
func (s *SchoolService) UpdateCourse(course *models.Course) error {
	if course.Name == "" {
		return fmt.Errorf("%w: course name is required", ErrValidationFailed)
	}
	if err := s.courseRepo.Update(course); err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%w: course code already taken", ErrValidationFailed)
		}
		return fmt.Errorf("failed to update course: %w", err)
	}
	return nil
}

// DeleteCourse удаляет курс вместе с его посещаемостью, оценками,
// заданиями и событиями
func (s *SchoolService) DeleteCourse(id uuid.UUID) error {
	if _, err := s.GetCourse(id); err != nil {
		return err
	}
	return s.courseRepo.Delete(id)
}

// Enroll зачисляет ученика на курс. Повторное зачисление не ошибка.
func (s *SchoolService) Enroll(courseID, studentID uuid.UUID) error {
	if _, err := s.GetCourse(courseID); err != nil {
		return err
	}
	if _, err := s.GetStudent(studentID); err != nil {
		return err
	}
	return s.courseRepo.Enroll(courseID, studentID)
}

// Unenroll отчисляет ученика с курса
func (s *SchoolService) Unenroll(courseID, studentID uuid.UUID) error {
	if _, err := s.GetCourse(courseID); err != nil {
		return err
	}
	return s.courseRepo.Unenroll(courseID, studentID)
}
