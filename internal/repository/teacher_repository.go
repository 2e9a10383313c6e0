package repository

import (
	"edujournal/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeacherRepository интерфейс для работы с преподавателями
type TeacherRepository interface {
	Create(teacher *models.Teacher) error
	GetByID(id uuid.UUID) (*models.Teacher, error)
	GetByUserID(userID uuid.UUID) (*models.Teacher, error)
	List() ([]models.Teacher, error)
	Update(teacher *models.Teacher) error
	Delete(id uuid.UUID) error
}

type teacherRepository struct {
	db *gorm.DB
}

// NewTeacherRepository создает новый репозиторий преподавателей
func NewTeacherRepository(db *gorm.DB) TeacherRepository {
	return &teacherRepository{db: db}
}

func (r *teacherRepository) Create(teacher *models.Teacher) error {
	if teacher.ID == uuid.Nil {
		teacher.ID = uuid.New()
	}
	return r.db.Create(teacher).Error
}

func (r *teacherRepository) GetByID(id uuid.UUID) (*models.Teacher, error) {
	var teacher models.Teacher
	err := r.db.Preload("Courses").First(&teacher, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepository) GetByUserID(userID uuid.UUID) (*models.Teacher, error) {
	var teacher models.Teacher
	err := r.db.Where("user_id = ?", userID).First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepository) List() ([]models.Teacher, error) {
	var teachers []models.Teacher
	err := r.db.Order("name ASC").Find(&teachers).Error
	return teachers, err
}

func (r *teacherRepository) Update(teacher *models.Teacher) error {
	return r.db.Save(teacher).Error
}

// Delete удаляет преподавателя вместе с его курсами (каскад в базе данных)
func (r *teacherRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Teacher{}, "id = ?", id).Error
}
