package repository

import (
	"time"

	"edujournal/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventRepository интерфейс для работы с событиями календаря
type EventRepository interface {
	Create(event *models.Event) error
	GetByID(id uuid.UUID) (*models.Event, error)
	ListInRange(from, to time.Time) ([]models.Event, error)
	ListByCourse(courseID uuid.UUID) ([]models.Event, error)
	Update(event *models.Event) error
	Delete(id uuid.UUID) error
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository создает новый репозиторий событий
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(event *models.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return r.db.Create(event).Error
}

func (r *eventRepository) GetByID(id uuid.UUID) (*models.Event, error) {
	var event models.Event
	err := r.db.Preload("Course").First(&event, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// ListInRange возвращает события, пересекающиеся с интервалом [from, to]
func (r *eventRepository) ListInRange(from, to time.Time) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Preload("Course").
		Where("start_date <= ? AND end_date >= ?", to, from).
		Order("start_date ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepository) ListByCourse(courseID uuid.UUID) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Where("course_id = ?", courseID).
		Order("start_date ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepository) Update(event *models.Event) error {
	return r.db.Save(event).Error
}

func (r *eventRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Event{}, "id = ?", id).Error
}
