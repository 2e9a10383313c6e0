package services

import (
	"fmt"
	"time"

	"edujournal/internal/models"
	"edujournal/internal/repository"

	"github.com/google/uuid"
)

// AssignmentService управляет заданиями курсов
type AssignmentService struct {
	assignmentRepo repository.AssignmentRepository
	courseRepo     repository.CourseRepository
}

// NewAssignmentService создает новый сервис заданий
func NewAssignmentService(assignmentRepo repository.AssignmentRepository, courseRepo repository.CourseRepository) *AssignmentService {
	return &AssignmentService{assignmentRepo: assignmentRepo, courseRepo: courseRepo}
}

// CreateAssignmentRequest представляет запрос на создание задания
type CreateAssignmentRequest struct {
	CourseID    uuid.UUID
	Title       string
	Description string
	DueDate     *time.Time
	Actor       *Actor
}

// Create создает задание курса
func (s *AssignmentService) Create(req *CreateAssignmentRequest) (*models.Assignment, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: assignment title is required", ErrValidationFailed)
	}

	course, err := s.courseRepo.GetByID(req.CourseID)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("course: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if !req.Actor.OwnsCourse(course) {
		return nil, fmt.Errorf("%w: only the course teacher or an admin can create assignments", ErrForbidden)
	}

	assignment := &models.Assignment{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		CreatedByID: req.Actor.UserID(),
	}
	if err := s.assignmentRepo.Create(assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}
	return assignment, nil
}

// ListByCourse возвращает задания курса по сроку сдачи
func (s *AssignmentService) ListByCourse(courseID uuid.UUID) ([]models.Assignment, error) {
	return s.assignmentRepo.ListByCourse(courseID)
}

// Delete удаляет задание
func (s *AssignmentService) Delete(assignmentID uuid.UUID, actor *Actor) error {
	assignment, err := s.assignmentRepo.GetByID(assignmentID)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("assignment: %w", ErrNotFound)
		}
		return err
	}

	course, err := s.courseRepo.GetByID(assignment.CourseID)
	if err == nil && !actor.OwnsCourse(course) {
		return fmt.Errorf("%w: only the course teacher or an admin can delete assignments", ErrForbidden)
	}

	return s.assignmentRepo.Delete(assignmentID)
}
