package services

import (
	"fmt"
	"time"

	"edujournal/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DashboardService собирает счетчики для стартовой панели роли
type DashboardService struct {
	db *gorm.DB

	now func() time.Time
}

// NewDashboardService создает новый сервис панели
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db, now: time.Now}
}

// AdminDashboard представляет счетчики панели администратора
type AdminDashboard struct {
	Students          int64 `json:"students"`
	Teachers          int64 `json:"teachers"`
	Courses           int64 `json:"courses"`
	AttendanceRecords int64 `json:"attendance_records"`
	AuditEntries      int64 `json:"audit_entries"`
}

// TeacherDashboard представляет счетчики панели преподавателя
type TeacherDashboard struct {
	Courses     int64 `json:"courses"`
	Students    int64 `json:"students"`
	MarkedToday int64 `json:"marked_today"`
}

// StudentDashboard представляет счетчики панели ученика
type StudentDashboard struct {
	Courses      int64   `json:"courses"`
	TotalRecords int64   `json:"total_records"`
	PresentCount int64   `json:"present_count"`
	Percentage   float64 `json:"percentage"`
}

// Summary возвращает панель по роли запроса
func (s *DashboardService) Summary(actor *Actor) (interface{}, error) {
	switch {
	case actor.IsAdmin():
		return s.adminSummary()
	case actor.IsTeacher():
		return s.teacherSummary(*actor.TeacherID)
	case actor.IsStudent():
		return s.studentSummary(*actor.StudentID)
	default:
		return nil, fmt.Errorf("%w: no dashboard for this account", ErrForbidden)
	}
}

func (s *DashboardService) adminSummary() (*AdminDashboard, error) {
	d := &AdminDashboard{}
	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.Student{}, &d.Students},
		{&models.Teacher{}, &d.Teachers},
		{&models.Course{}, &d.Courses},
		{&models.Attendance{}, &d.AttendanceRecords},
		{&models.AuditLog{}, &d.AuditEntries},
	}
	for _, c := range counts {
		if err := s.db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count rows: %w", err)
		}
	}
	return d, nil
}

func (s *DashboardService) teacherSummary(teacherID uuid.UUID) (*TeacherDashboard, error) {
	d := &TeacherDashboard{}

	if err := s.db.Model(&models.Course{}).
		Where("teacher_id = ?", teacherID).
		Count(&d.Courses).Error; err != nil {
		return nil, fmt.Errorf("failed to count courses: %w", err)
	}

	if err := s.db.Model(&models.Student{}).
		Distinct("students.id").
		Joins("JOIN course_students cs ON cs.student_id = students.id").
		Joins("JOIN courses ON courses.id = cs.course_id").
		Where("courses.teacher_id = ?", teacherID).
		Count(&d.Students).Error; err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}

	today := DateOnly(s.now())
	if err := s.db.Model(&models.Attendance{}).
		Joins("JOIN courses ON courses.id = attendances.course_id").
		Where("courses.teacher_id = ? AND attendances.date = ?", teacherID, today).
		Count(&d.MarkedToday).Error; err != nil {
		return nil, fmt.Errorf("failed to count today's marks: %w", err)
	}

	return d, nil
}

func (s *DashboardService) studentSummary(studentID uuid.UUID) (*StudentDashboard, error) {
	d := &StudentDashboard{}

	if err := s.db.Model(&models.Course{}).
		Joins("JOIN course_students cs ON cs.course_id = courses.id").
		Where("cs.student_id = ?", studentID).
		Count(&d.Courses).Error; err != nil {
		return nil, fmt.Errorf("failed to count courses: %w", err)
	}

	if err := s.db.Model(&models.Attendance{}).
		Where("student_id = ?", studentID).
		Count(&d.TotalRecords).Error; err != nil {
		return nil, fmt.Errorf("failed to count attendance: %w", err)
	}
	if err := s.db.Model(&models.Attendance{}).
		Where("student_id = ? AND status = ?", studentID, true).
		Count(&d.PresentCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count attendance: %w", err)
	}

	d.Percentage = percentage(d.PresentCount, d.TotalRecords)
	return d, nil
}
