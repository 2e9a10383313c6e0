package services

import (
	"fmt"
	"math"

	"edujournal/internal/models"
	"edujournal/internal/repository"

	"github.com/google/uuid"
)

// StatsService отвечает на отчетные запросы по посещаемости.
// Все операции только читают и возвращают моментальный снимок.
type StatsService struct {
	attendanceRepo repository.AttendanceRepository
	courseRepo     repository.CourseRepository
	studentRepo    repository.StudentRepository
}

// NewStatsService создает новый сервис статистики
func NewStatsService(
	attendanceRepo repository.AttendanceRepository,
	courseRepo repository.CourseRepository,
	studentRepo repository.StudentRepository,
) *StatsService {
	return &StatsService{
		attendanceRepo: attendanceRepo,
		courseRepo:     courseRepo,
		studentRepo:    studentRepo,
	}
}

// CourseStats представляет агрегаты посещаемости курса
type CourseStats struct {
	DistinctDatesCount int64   `json:"distinct_dates_count"`
	TotalRecords       int64   `json:"total_records"`
	PresentCount       int64   `json:"present_count"`
	AbsentCount        int64   `json:"absent_count"`
	EnrolledCount      int64   `json:"enrolled_count"`
	AveragePercentage  float64 `json:"average_percentage"`
}

// StudentCourseReport представляет сводку ученика по одному курсу
type StudentCourseReport struct {
	Course       models.Course `json:"course"`
	TotalRecords int64         `json:"total_records"`
	PresentCount int64         `json:"present_count"`
	Percentage   float64       `json:"percentage"`
}

// percentage считает процент с округлением до двух знаков.
// При нулевом числе отметок возвращает 0.0 — это пол, а не ошибка.
func percentage(present, total int64) float64 {
	if total == 0 {
		return 0.0
	}
	return math.Round(float64(present)/float64(total)*100*100) / 100
}

// AttendancePercentage возвращает процент посещаемости ученика на курсе
func (s *StatsService) AttendancePercentage(studentID, courseID uuid.UUID) (float64, error) {
	total, present, err := s.attendanceRepo.CountByStudentCourse(studentID, courseID)
	if err != nil {
		return 0, fmt.Errorf("failed to count attendance: %w", err)
	}
	return percentage(present, total), nil
}

// CourseStats возвращает агрегаты по курсу. Средний процент — общий
// по всем отметкам курса, а не среднее процентов учеников: отношения
// дают разные значения при неравном числе отметок.
func (s *StatsService) CourseStats(courseID uuid.UUID) (*CourseStats, error) {
	if _, err := s.courseRepo.GetByID(courseID); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("course: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}

	counts, err := s.attendanceRepo.CountByCourse(courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance: %w", err)
	}

	enrolled, err := s.courseRepo.EnrolledCount(courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to count enrolled students: %w", err)
	}

	return &CourseStats{
		DistinctDatesCount: counts.DistinctDates,
		TotalRecords:       counts.TotalRecords,
		PresentCount:       counts.PresentCount,
		AbsentCount:        counts.AbsentCount,
		EnrolledCount:      enrolled,
		AveragePercentage:  percentage(counts.PresentCount, counts.TotalRecords),
	}, nil
}

// StudentReport возвращает сводку ученика по каждому его курсу
func (s *StatsService) StudentReport(studentID uuid.UUID) ([]StudentCourseReport, error) {
	student, err := s.studentRepo.GetByID(studentID)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("student: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load student: %w", err)
	}

	reports := make([]StudentCourseReport, 0, len(student.Courses))
	for _, course := range student.Courses {
		total, present, err := s.attendanceRepo.CountByStudentCourse(studentID, course.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count attendance: %w", err)
		}
		reports = append(reports, StudentCourseReport{
			Course:       course,
			TotalRecords: total,
			PresentCount: present,
			Percentage:   percentage(present, total),
		})
	}

	return reports, nil
}
