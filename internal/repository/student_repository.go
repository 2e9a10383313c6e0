package repository

import (
	"edujournal/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentRepository интерфейс для работы с учениками
type StudentRepository interface {
	Create(student *models.Student) error
	GetByID(id uuid.UUID) (*models.Student, error)
	GetByRollNo(rollNo int) (*models.Student, error)
	GetByUserID(userID uuid.UUID) (*models.Student, error)
	List() ([]models.Student, error)
	Update(student *models.Student) error
	Delete(id uuid.UUID) error
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository создает новый репозиторий учеников
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(student *models.Student) error {
	if student.ID == uuid.Nil {
		student.ID = uuid.New()
	}
	return r.db.Create(student).Error
}

func (r *studentRepository) GetByID(id uuid.UUID) (*models.Student, error) {
	var student models.Student
	err := r.db.Preload("Courses").First(&student, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) GetByRollNo(rollNo int) (*models.Student, error) {
	var student models.Student
	err := r.db.Where("roll_no = ?", rollNo).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) GetByUserID(userID uuid.UUID) (*models.Student, error) {
	var student models.Student
	err := r.db.Where("user_id = ?", userID).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) List() ([]models.Student, error) {
	var students []models.Student
	err := r.db.Order("roll_no ASC").Find(&students).Error
	return students, err
}

func (r *studentRepository) Update(student *models.Student) error {
	return r.db.Save(student).Error
}

// Delete удаляет ученика. Его посещаемость и оценки удаляются каскадом
// на уровне базы данных.
func (r *studentRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Student{}, "id = ?", id).Error
}
