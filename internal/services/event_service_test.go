package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"edujournal/internal/models"
	"edujournal/internal/repository"

	"github.com/google/uuid"
)

// unavailableCourseRepo имитирует недоступное хранилище курсов
type unavailableCourseRepo struct {
	repository.CourseRepository
}

func (unavailableCourseRepo) GetByID(id uuid.UUID) (*models.Course, error) {
	return nil, fmt.Errorf("course storage unavailable")
}

func TestEventDeleteOwnershipRules(t *testing.T) {
	env := newTestEnv(t)
	eventRepo := repository.NewEventRepository(env.db)
	eventSvc := NewEventService(eventRepo, env.courseRepo)

	event, err := eventSvc.Create(&CreateEventRequest{
		Title: "Контрольная работа", CourseID: &env.course.ID,
		StartDate: time.Now(), EndDate: time.Now(),
		Actor: env.teacherActor,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := eventSvc.Delete(event.ID, foreignTeacherActor()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign teacher delete must be forbidden, got %v", err)
	}
	if err := eventSvc.Delete(event.ID, env.teacherActor); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
}

func TestEventDeleteFailsWhenCourseLookupFails(t *testing.T) {
	env := newTestEnv(t)
	eventRepo := repository.NewEventRepository(env.db)

	event, err := NewEventService(eventRepo, env.courseRepo).Create(&CreateEventRequest{
		Title: "Родительское собрание", CourseID: &env.course.ID,
		StartDate: time.Now(), EndDate: time.Now(),
		Actor: env.teacherActor,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Проверка владения невозможна — удаление должно прерваться с ошибкой
	broken := NewEventService(eventRepo, unavailableCourseRepo{env.courseRepo})
	if err := broken.Delete(event.ID, env.teacherActor); err == nil {
		t.Fatal("delete must fail when the course cannot be checked")
	}

	if _, err := eventRepo.GetByID(event.ID); err != nil {
		t.Errorf("event must survive the failed delete: %v", err)
	}
}
