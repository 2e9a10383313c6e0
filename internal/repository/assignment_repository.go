package repository

import (
	"edujournal/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssignmentRepository интерфейс для работы с заданиями курсов
type AssignmentRepository interface {
	Create(assignment *models.Assignment) error
	GetByID(id uuid.UUID) (*models.Assignment, error)
	ListByCourse(courseID uuid.UUID) ([]models.Assignment, error)
	Update(assignment *models.Assignment) error
	Delete(id uuid.UUID) error
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository создает новый репозиторий заданий
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(assignment *models.Assignment) error {
	if assignment.ID == uuid.Nil {
		assignment.ID = uuid.New()
	}
	return r.db.Create(assignment).Error
}

func (r *assignmentRepository) GetByID(id uuid.UUID) (*models.Assignment, error) {
	var assignment models.Assignment
	err := r.db.Preload("Course").First(&assignment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) ListByCourse(courseID uuid.UUID) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := r.db.Where("course_id = ?", courseID).
		Order("due_date ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepository) Update(assignment *models.Assignment) error {
	return r.db.Save(assignment).Error
}

func (r *assignmentRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Assignment{}, "id = ?", id).Error
}
