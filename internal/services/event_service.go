package services

import (
	"fmt"
	"time"

	"edujournal/internal/models"
	"edujournal/internal/repository"

	"github.com/google/uuid"
)

// EventService управляет событиями календаря школы
type EventService struct {
	eventRepo  repository.EventRepository
	courseRepo repository.CourseRepository
}

// NewEventService создает новый сервис событий
func NewEventService(eventRepo repository.EventRepository, courseRepo repository.CourseRepository) *EventService {
	return &EventService{eventRepo: eventRepo, courseRepo: courseRepo}
}

// CreateEventRequest представляет запрос на создание события.
// CourseID пустой для общешкольных событий.
type CreateEventRequest struct {
	Title       string
	Description string
	CourseID    *uuid.UUID
	StartDate   time.Time
	EndDate     time.Time
	Actor       *Actor
}

// Create создает событие. Событие курса может создать только его
// преподаватель или администратор, общешкольное — только администратор.
func (s *EventService) Create(req *CreateEventRequest) (*models.Event, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: event title is required", ErrValidationFailed)
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrValidationFailed)
	}

	if req.CourseID != nil {
		course, err := s.courseRepo.GetByID(*req.CourseID)
		if err != nil {
			if isNotFound(err) {
				return nil, fmt.Errorf("course: %w", ErrNotFound)
			}
			return nil, fmt.Errorf("failed to load course: %w", err)
		}
		if !req.Actor.OwnsCourse(course) {
			return nil, fmt.Errorf("%w: only the course teacher or an admin can create course events", ErrForbidden)
		}
	} else if !req.Actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only an admin can create school-wide events", ErrForbidden)
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		CourseID:    req.CourseID,
		StartDate:   DateOnly(req.StartDate),
		EndDate:     DateOnly(req.EndDate),
		CreatedByID: req.Actor.UserID(),
	}
	if err := s.eventRepo.Create(event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

// ListInRange возвращает события, пересекающие интервал [from, to]
func (s *EventService) ListInRange(from, to time.Time) ([]models.Event, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end is before range start", ErrValidationFailed)
	}
	return s.eventRepo.ListInRange(from, to)
}

// ListByCourse возвращает события курса
func (s *EventService) ListByCourse(courseID uuid.UUID) ([]models.Event, error) {
	return s.eventRepo.ListByCourse(courseID)
}

// Delete удаляет событие
func (s *EventService) Delete(eventID uuid.UUID, actor *Actor) error {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("event: %w", ErrNotFound)
		}
		return err
	}

	if event.CourseID != nil {
		course, err := s.courseRepo.GetByID(*event.CourseID)
		if err != nil {
			if isNotFound(err) {
				return fmt.Errorf("course: %w", ErrNotFound)
			}
			return fmt.Errorf("failed to load course: %w", err)
		}
		if !actor.OwnsCourse(course) {
			return fmt.Errorf("%w: only the course teacher or an admin can delete course events", ErrForbidden)
		}
	} else if !actor.IsAdmin() {
		return fmt.Errorf("%w: only an admin can delete school-wide events", ErrForbidden)
	}

	return s.eventRepo.Delete(eventID)
}
