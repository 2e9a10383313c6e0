package repository

import (
	"time"

	"edujournal/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttendanceFilter задает параметры выборки посещаемости для отчетов
type AttendanceFilter struct {
	CourseID  *uuid.UUID
	StudentID *uuid.UUID
	DateFrom  *time.Time
	DateTo    *time.Time
	Status    *bool
}

// CourseCounts содержит агрегаты посещаемости по курсу
type CourseCounts struct {
	DistinctDates int64
	TotalRecords  int64
	PresentCount  int64
	AbsentCount   int64
}

// AttendanceRepository интерфейс для работы с отметками посещаемости
type AttendanceRepository interface {
	// WithTx возвращает репозиторий, привязанный к транзакции
	WithTx(tx *gorm.DB) AttendanceRepository

	Create(attendance *models.Attendance) error
	Upsert(attendance *models.Attendance) error
	Update(attendance *models.Attendance) error
	GetByID(id uuid.UUID) (*models.Attendance, error)
	GetByKey(studentID, courseID uuid.UUID, date time.Time) (*models.Attendance, error)
	Delete(id uuid.UUID) error

	Filter(filter AttendanceFilter) ([]models.Attendance, error)
	CountByStudentCourse(studentID, courseID uuid.UUID) (total, present int64, err error)
	CountByCourse(courseID uuid.UUID) (*CourseCounts, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository создает новый репозиторий посещаемости
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) WithTx(tx *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: tx}
}

func (r *attendanceRepository) Create(attendance *models.Attendance) error {
	if attendance.ID == uuid.Nil {
		attendance.ID = uuid.New()
	}
	return r.db.Create(attendance).Error
}

// Upsert записывает отметку по ключу (ученик, курс, дата). При конфликте
// с существующей строкой обновляются статус и автор отметки — составной
// индекс гарантирует, что гонка двух записей не породит дубликат.
func (r *attendanceRepository) Upsert(attendance *models.Attendance) error {
	if attendance.ID == uuid.Nil {
		attendance.ID = uuid.New()
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "student_id"}, {Name: "course_id"}, {Name: "date"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"status", "marked_by_id", "updated_at"}),
	}).Create(attendance).Error
}

func (r *attendanceRepository) Update(attendance *models.Attendance) error {
	return r.db.Save(attendance).Error
}

func (r *attendanceRepository) GetByID(id uuid.UUID) (*models.Attendance, error) {
	var attendance models.Attendance
	err := r.db.Preload("Student").Preload("Course").Preload("MarkedBy").
		First(&attendance, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *attendanceRepository) GetByKey(studentID, courseID uuid.UUID, date time.Time) (*models.Attendance, error) {
	var attendance models.Attendance
	err := r.db.Where("student_id = ? AND course_id = ? AND date = ?", studentID, courseID, date).
		First(&attendance).Error
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *attendanceRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Attendance{}, "id = ?", id).Error
}

// Filter возвращает отметки по заданным фильтрам, новые даты первыми
func (r *attendanceRepository) Filter(filter AttendanceFilter) ([]models.Attendance, error) {
	query := r.db.Preload("Student").Preload("Course").Preload("MarkedBy")

	if filter.CourseID != nil {
		query = query.Where("course_id = ?", *filter.CourseID)
	}
	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", *filter.DateTo)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var records []models.Attendance
	err := query.Order("date DESC").Find(&records).Error
	return records, err
}

// CountByStudentCourse считает все отметки и отметки присутствия ученика на курсе
func (r *attendanceRepository) CountByStudentCourse(studentID, courseID uuid.UUID) (int64, int64, error) {
	var total, present int64

	err := r.db.Model(&models.Attendance{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&total).Error
	if err != nil {
		return 0, 0, err
	}

	err = r.db.Model(&models.Attendance{}).
		Where("student_id = ? AND course_id = ? AND status = ?", studentID, courseID, true).
		Count(&present).Error
	if err != nil {
		return 0, 0, err
	}

	return total, present, nil
}

// CountByCourse собирает агрегаты курса: уникальные даты занятий,
// общее число отметок, присутствия и отсутствия
func (r *attendanceRepository) CountByCourse(courseID uuid.UUID) (*CourseCounts, error) {
	counts := &CourseCounts{}

	err := r.db.Model(&models.Attendance{}).
		Where("course_id = ?", courseID).
		Distinct("date").
		Count(&counts.DistinctDates).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&models.Attendance{}).
		Where("course_id = ?", courseID).
		Count(&counts.TotalRecords).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&models.Attendance{}).
		Where("course_id = ? AND status = ?", courseID, true).
		Count(&counts.PresentCount).Error
	if err != nil {
		return nil, err
	}

	counts.AbsentCount = counts.TotalRecords - counts.PresentCount
	return counts, nil
}
