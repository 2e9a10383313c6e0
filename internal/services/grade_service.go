package services

import (
	"fmt"
	"time"

	"edujournal/internal/models"
	"edujournal/internal/repository"

	"github.com/google/uuid"
)

// GradeService управляет оценками и выводом буквенной оценки
type GradeService struct {
	gradeRepo   repository.GradeRepository
	courseRepo  repository.CourseRepository
	studentRepo repository.StudentRepository
}

// NewGradeService создает новый сервис оценок
func NewGradeService(
	gradeRepo repository.GradeRepository,
	courseRepo repository.CourseRepository,
	studentRepo repository.StudentRepository,
) *GradeService {
	return &GradeService{
		gradeRepo:   gradeRepo,
		courseRepo:  courseRepo,
		studentRepo: studentRepo,
	}
}

// CalculateGrade выводит буквенную оценку из набранных и максимальных
// баллов. При maxScore <= 0 оценка не определена — пустая строка.
func CalculateGrade(score, maxScore float64) string {
	if maxScore <= 0 {
		return ""
	}

	percent := score / maxScore * 100
	switch {
	case percent >= 90:
		return "A"
	case percent >= 80:
		return "B"
	case percent >= 70:
		return "C"
	case percent >= 60:
		return "D"
	default:
		return "F"
	}
}

// CreateGradeRequest представляет запрос на выставление оценки
type CreateGradeRequest struct {
	StudentID      uuid.UUID
	CourseID       uuid.UUID
	AssignmentName string
	Score          float64
	MaxScore       float64
	Letter         string // если пусто — вычисляется из баллов
	DueDate        *time.Time
	SubmittedAt    *time.Time
	Actor          *Actor
}

// Create выставляет оценку. Буквенная оценка вычисляется один раз при
// сохранении и только когда вызывающий ее не задал явно.
func (s *GradeService) Create(req *CreateGradeRequest) (*models.Grade, error) {
	course, err := s.courseRepo.GetByID(req.CourseID)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("course: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}

	if !req.Actor.OwnsCourse(course) {
		return nil, fmt.Errorf("%w: only the course teacher or an admin can post grades", ErrForbidden)
	}

	if _, err := s.studentRepo.GetByID(req.StudentID); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("student: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load student: %w", err)
	}

	if req.AssignmentName == "" {
		return nil, fmt.Errorf("%w: assignment name is required", ErrValidationFailed)
	}
	if req.Score < 0 || req.Score > req.MaxScore {
		return nil, fmt.Errorf("%w: score must be between 0 and max score", ErrValidationFailed)
	}

	letter := req.Letter
	if letter == "" {
		letter = CalculateGrade(req.Score, req.MaxScore)
	}

	grade := &models.Grade{
		StudentID:      req.StudentID,
		CourseID:       req.CourseID,
		AssignmentName: req.AssignmentName,
		Score:          req.Score,
		MaxScore:       req.MaxScore,
		Letter:         letter,
		DueDate:        req.DueDate,
		SubmittedAt:    req.SubmittedAt,
	}

	if err := s.gradeRepo.Create(grade); err != nil {
		if isDuplicate(err) {
			return nil, fmt.Errorf("%w: grade for this assignment already exists", ErrValidationFailed)
		}
		return nil, fmt.Errorf("failed to create grade: %w", err)
	}

	return grade, nil
}

// UpdateGradeRequest представляет запрос на изменение оценки.
// Letter == nil сохраняет текущую букву, пустая строка сбрасывает ее
// для перевычисления, непустая задает явно.
type UpdateGradeRequest struct {
	GradeID     uuid.UUID
	Score       float64
	MaxScore    float64
	Letter      *string
	SubmittedAt *time.Time
	Actor       *Actor
}

// Update изменяет баллы. Буква НЕ перевычисляется при правке баллов —
// только если вызывающий явно сбросил поле.
func (s *GradeService) Update(req *UpdateGradeRequest) (*models.Grade, error) {
	grade, err := s.gradeRepo.GetByID(req.GradeID)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("grade: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load grade: %w", err)
	}

	course, err := s.courseRepo.GetByID(grade.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if !req.Actor.OwnsCourse(course) {
		return nil, fmt.Errorf("%w: only the course teacher or an admin can edit grades", ErrForbidden)
	}

	if req.Score < 0 || req.Score > req.MaxScore {
		return nil, fmt.Errorf("%w: score must be between 0 and max score", ErrValidationFailed)
	}

	grade.Score = req.Score
	grade.MaxScore = req.MaxScore
	grade.SubmittedAt = req.SubmittedAt
	if req.Letter != nil {
		if *req.Letter == "" {
			grade.Letter = CalculateGrade(req.Score, req.MaxScore)
		} else {
			grade.Letter = *req.Letter
		}
	}

	if err := s.gradeRepo.Update(grade); err != nil {
		return nil, fmt.Errorf("failed to update grade: %w", err)
	}

	return grade, nil
}

// ListByStudent возвращает оценки ученика
func (s *GradeService) ListByStudent(studentID uuid.UUID) ([]models.Grade, error) {
	return s.gradeRepo.ListByStudent(studentID)
}

// ListByCourse возвращает оценки по курсу
func (s *GradeService) ListByCourse(courseID uuid.UUID) ([]models.Grade, error) {
	return s.gradeRepo.ListByCourse(courseID)
}
