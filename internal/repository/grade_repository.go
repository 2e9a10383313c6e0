package repository

import (
	"edujournal/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GradeRepository интерфейс для работы с оценками
type GradeRepository interface {
	Create(grade *models.Grade) error
	GetByID(id uuid.UUID) (*models.Grade, error)
	GetByKey(studentID, courseID uuid.UUID, assignmentName string) (*models.Grade, error)
	ListByStudent(studentID uuid.UUID) ([]models.Grade, error)
	ListByCourse(courseID uuid.UUID) ([]models.Grade, error)
	Update(grade *models.Grade) error
	Delete(id uuid.UUID) error
}

type gradeRepository struct {
	db *gorm.DB
}

// NewGradeRepository создает новый репозиторий оценок
func NewGradeRepository(db *gorm.DB) GradeRepository {
	return &gradeRepository{db: db}
}

func (r *gradeRepository) Create(grade *models.Grade) error {
	if grade.ID == uuid.Nil {
		grade.ID = uuid.New()
	}
	return r.db.Create(grade).Error
}

func (r *gradeRepository) GetByID(id uuid.UUID) (*models.Grade, error) {
	var grade models.Grade
	err := r.db.Preload("Student").Preload("Course").First(&grade, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

func (r *gradeRepository) GetByKey(studentID, courseID uuid.UUID, assignmentName string) (*models.Grade, error) {
	var grade models.Grade
	err := r.db.Where("student_id = ? AND course_id = ? AND assignment_name = ?",
		studentID, courseID, assignmentName).First(&grade).Error
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

func (r *gradeRepository) ListByStudent(studentID uuid.UUID) ([]models.Grade, error) {
	var grades []models.Grade
	err := r.db.Preload("Course").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&grades).Error
	return grades, err
}

func (r *gradeRepository) ListByCourse(courseID uuid.UUID) ([]models.Grade, error) {
	var grades []models.Grade
	err := r.db.Preload("Student").
		Where("course_id = ?", courseID).
		Order("assignment_name ASC").
		Find(&grades).Error
	return grades, err
}

func (r *gradeRepository) Update(grade *models.Grade) error {
	return r.db.Save(grade).Error
}

func (r *gradeRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Grade{}, "id = ?", id).Error
}
