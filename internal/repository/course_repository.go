package repository

import (
	"edujournal/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CourseRepository интерфейс для работы с курсами и зачислением учеников
type CourseRepository interface {
	Create(course *models.Course) error
	GetByID(id uuid.UUID) (*models.Course, error)
	List() ([]models.Course, error)
	ListByTeacher(teacherID uuid.UUID) ([]models.Course, error)
	Update(course *models.Course) error
	Delete(id uuid.UUID) error

	// Зачисление
	Enroll(courseID, studentID uuid.UUID) error
	Unenroll(courseID, studentID uuid.UUID) error
	IsEnrolled(courseID, studentID uuid.UUID) (bool, error)
	EnrolledStudents(courseID uuid.UUID) ([]models.Student, error)
	EnrolledCount(courseID uuid.UUID) (int64, error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository создает новый репозиторий курсов
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *models.Course) error {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	return r.db.Create(course).Error
}

func (r *courseRepository) GetByID(id uuid.UUID) (*models.Course, error) {
	var course models.Course
	err := r.db.Preload("Teacher").Preload("Students").First(&course, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) List() ([]models.Course, error) {
	var courses []models.Course
	err := r.db.Preload("Teacher").Order("name ASC").Find(&courses).Error
	return courses, err
}

func (r *courseRepository) ListByTeacher(teacherID uuid.UUID) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.Where("teacher_id = ?", teacherID).Order("name ASC").Find(&courses).Error
	return courses, err
}

func (r *courseRepository) Update(course *models.Course) error {
	return r.db.Save(course).Error
}

// Delete удаляет курс; посещаемость, оценки, задания и события курса
// удаляются каскадом в базе данных.
func (r *courseRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Course{}, "id = ?", id).Error
}

// courseStudent отображается на join-таблицу many2many связи Course.Students
type courseStudent struct {
	CourseID  uuid.UUID `gorm:"type:text;primaryKey"`
	StudentID uuid.UUID `gorm:"type:text;primaryKey"`
}

func (courseStudent) TableName() string { return "course_students" }

// Enroll зачисляет ученика на курс. Повторное зачисление не является ошибкой.
func (r *courseRepository) Enroll(courseID, studentID uuid.UUID) error {
	row := courseStudent{CourseID: courseID, StudentID: studentID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

// Unenroll отчисляет ученика с курса
func (r *courseRepository) Unenroll(courseID, studentID uuid.UUID) error {
	return r.db.Where("course_id = ? AND student_id = ?", courseID, studentID).
		Delete(&courseStudent{}).Error
}

// IsEnrolled проверяет, зачислен ли ученик на курс
func (r *courseRepository) IsEnrolled(courseID, studentID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&courseStudent{}).
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		Count(&count).Error
	return count > 0, err
}

// EnrolledStudents возвращает учеников курса по возрастанию номера в журнале
func (r *courseRepository) EnrolledStudents(courseID uuid.UUID) ([]models.Student, error) {
	var students []models.Student
	err := r.db.
		Joins("JOIN course_students cs ON cs.student_id = students.id").
		Where("cs.course_id = ?", courseID).
		Order("students.roll_no ASC").
		Find(&students).Error
	return students, err
}

func (r *courseRepository) EnrolledCount(courseID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&courseStudent{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}
