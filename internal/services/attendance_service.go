package services

import (
	"fmt"
	"sort"
	"time"

	"edujournal/internal/models"
	"edujournal/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceService реализует отметку посещаемости: проверку зачисления
// и даты, upsert по ключу (ученик, курс, дата), журналирование каждого
// изменения и массовую отметку в одной транзакции.
type AttendanceService struct {
	db             *gorm.DB
	attendanceRepo repository.AttendanceRepository
	auditRepo      repository.AuditLogRepository
	courseRepo     repository.CourseRepository
	studentRepo    repository.StudentRepository

	// now переопределяется в тестах
	now func() time.Time
}

// NewAttendanceService создает новый сервис посещаемости
func NewAttendanceService(
	db *gorm.DB,
	attendanceRepo repository.AttendanceRepository,
	auditRepo repository.AuditLogRepository,
	courseRepo repository.CourseRepository,
	studentRepo repository.StudentRepository,
) *AttendanceService {
	return &AttendanceService{
		db:             db,
		attendanceRepo: attendanceRepo,
		auditRepo:      auditRepo,
		courseRepo:     courseRepo,
		studentRepo:    studentRepo,
		now:            time.Now,
	}
}

// MarkRequest представляет запрос на отметку одного ученика
type MarkRequest struct {
	StudentID uuid.UUID
	CourseID  uuid.UUID
	Date      time.Time
	Status    bool
	Actor     *Actor
	IPAddress string
	Notes     string

	// CreateOnly запрещает обновление существующей строки: путь явного
	// создания отвечает дубликатом вместо upsert
	CreateOnly bool
}

// MarkResult представляет результат отметки
type MarkResult struct {
	Attendance *models.Attendance `json:"attendance"`
	Created    bool               `json:"created"`
}

// BulkMarkRequest представляет запрос массовой отметки курса за дату
type BulkMarkRequest struct {
	CourseID  uuid.UUID
	Date      time.Time
	Roster    map[uuid.UUID]bool // ученик -> присутствовал
	Actor     *Actor
	IPAddress string
}

// DateOnly отбрасывает время, оставляя календарную дату.
// Все отметки и сравнения работают с датой в таком виде.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Validate проверяет отметку до записи: ученик зачислен на курс, дата не
// в будущем, а при явном создании — отсутствие строки по ключу.
// Проверка не имеет побочных эффектов; от гонок защищает уникальный
// индекс хранилища, а не она.
func (s *AttendanceService) Validate(studentID, courseID uuid.UUID, date time.Time, createOnly bool) error {
	enrolled, err := s.courseRepo.IsEnrolled(courseID, studentID)
	if err != nil {
		return fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !enrolled {
		return ErrNotEnrolled
	}

	if DateOnly(date).After(DateOnly(s.now())) {
		return ErrFutureDate
	}

	if createOnly {
		if _, err := s.attendanceRepo.GetByKey(studentID, courseID, DateOnly(date)); err == nil {
			return ErrDuplicateRecord
		} else if !isNotFound(err) {
			return fmt.Errorf("failed to check duplicate: %w", err)
		}
	}

	return nil
}

// Mark отмечает одного ученика. Существующая строка по ключу обновляется
// на месте (upsert), каждая запись сопровождается ровно одной записью
// журнала. Строка и журнал пишутся в одной транзакции.
func (s *AttendanceService) Mark(req *MarkRequest) (*MarkResult, error) {
	course, err := s.courseRepo.GetByID(req.CourseID)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("course: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}

	if !req.Actor.OwnsCourse(course) {
		return nil, fmt.Errorf("%w: only the course teacher or an admin can mark attendance", ErrForbidden)
	}

	student, err := s.studentRepo.GetByID(req.StudentID)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("student: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load student: %w", err)
	}

	var result *MarkResult
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		result, txErr = s.markOne(tx, student, course, req)
		return txErr
	})
	if err != nil {
		if isDuplicate(err) {
			// Проигравший гонку за ключ при явном создании
			return nil, ErrDuplicateRecord
		}
		return nil, err
	}

	return result, nil
}

// MarkBulk применяет весь список отметок курса за дату как одну
// транзакцию: либо записаны все ученики и все записи журнала, либо
// ни одной. Возвращает число затронутых строк (создано + обновлено).
func (s *AttendanceService) MarkBulk(req *BulkMarkRequest) (int, error) {
	course, err := s.courseRepo.GetByID(req.CourseID)
	if err != nil {
		if isNotFound(err) {
			return 0, fmt.Errorf("course: %w", ErrNotFound)
		}
		return 0, fmt.Errorf("failed to load course: %w", err)
	}

	if !req.Actor.OwnsCourse(course) {
		return 0, fmt.Errorf("%w: only the course teacher or an admin can mark attendance", ErrForbidden)
	}

	if DateOnly(req.Date).After(DateOnly(s.now())) {
		return 0, ErrFutureDate
	}

	enrolled, err := s.courseRepo.EnrolledStudents(req.CourseID)
	if err != nil {
		return 0, fmt.Errorf("failed to load roster: %w", err)
	}

	byID := make(map[uuid.UUID]*models.Student, len(enrolled))
	for i := range enrolled {
		byID[enrolled[i].ID] = &enrolled[i]
	}
	for studentID := range req.Roster {
		if _, ok := byID[studentID]; !ok {
			return 0, fmt.Errorf("student %s: %w", studentID, ErrNotEnrolled)
		}
	}

	// Стабильный порядок применения: по возрастанию номера в журнале
	students := make([]*models.Student, 0, len(req.Roster))
	for studentID := range req.Roster {
		students = append(students, byID[studentID])
	}
	sort.Slice(students, func(i, j int) bool { return students[i].RollNo < students[j].RollNo })

	marked := 0
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, student := range students {
			one := &MarkRequest{
				StudentID: student.ID,
				CourseID:  req.CourseID,
				Date:      req.Date,
				Status:    req.Roster[student.ID],
				Actor:     req.Actor,
				IPAddress: req.IPAddress,
			}
			if _, err := s.markOne(tx, student, course, one); err != nil {
				return err
			}
			marked++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}

	return marked, nil
}

// Delete удаляет отметку (путь административной корректировки) и пишет
// запись журнала. Ссылка на отметку в старых записях журнала деградирует
// в NULL, денормализованные поля сохраняют историю.
func (s *AttendanceService) Delete(attendanceID uuid.UUID, actor *Actor, ip, notes string) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: only an admin can delete attendance", ErrForbidden)
	}

	attendance, err := s.attendanceRepo.GetByID(attendanceID)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("attendance: %w", ErrNotFound)
		}
		return fmt.Errorf("failed to load attendance: %w", err)
	}

	oldStatus := attendance.Status
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.attendanceRepo.WithTx(tx).Delete(attendanceID); err != nil {
			return fmt.Errorf("failed to delete attendance: %w", err)
		}

		// Запись об удалении не ссылается на уже удаленную отметку,
		// историю несут денормализованные поля
		entry := &models.AuditLog{
			Action:        models.AuditActionDelete,
			UserID:        actor.UserID(),
			StudentName:   attendance.Student.Name,
			StudentRollNo: attendance.Student.RollNo,
			CourseName:    attendance.Course.Name,
			Date:          attendance.Date,
			OldStatus:     &oldStatus,
			IPAddress:     ip,
			Notes:         notes,
		}
		if err := s.auditRepo.WithTx(tx).Create(entry); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
}

// Filter возвращает отметки для отчетов по заданным фильтрам
func (s *AttendanceService) Filter(filter repository.AttendanceFilter) ([]models.Attendance, error) {
	return s.attendanceRepo.Filter(filter)
}

// markOne записывает одну отметку и запись журнала в рамках транзакции tx.
// Вызывающий уже проверил права и существование ученика и курса.
func (s *AttendanceService) markOne(tx *gorm.DB, student *models.Student, course *models.Course, req *MarkRequest) (*MarkResult, error) {
	attRepo := s.attendanceRepo.WithTx(tx)
	date := DateOnly(req.Date)

	if err := s.Validate(req.StudentID, req.CourseID, req.Date, req.CreateOnly); err != nil {
		return nil, err
	}

	old, err := attRepo.GetByKey(req.StudentID, req.CourseID, date)
	if err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("failed to check existing attendance: %w", err)
	}

	attendance := &models.Attendance{
		StudentID:  req.StudentID,
		CourseID:   req.CourseID,
		Date:       date,
		Status:     req.Status,
		MarkedByID: req.Actor.UserID(),
	}

	var oldStatus *bool
	action := models.AuditActionCreate
	if old != nil {
		// Обновление на месте: строка сохраняет исходный ID
		attendance.ID = old.ID
		attendance.CreatedAt = old.CreatedAt
		status := old.Status
		oldStatus = &status
		action = models.AuditActionUpdate

		if err := attRepo.Update(attendance); err != nil {
			return nil, fmt.Errorf("failed to save attendance: %w", err)
		}
	} else {
		// Вставка через upsert: при гонке за ключ побеждает ровно одна
		// запись, проигравшая превращается в обновление
		if err := attRepo.Upsert(attendance); err != nil {
			return nil, fmt.Errorf("failed to save attendance: %w", err)
		}
	}

	newStatus := req.Status
	entry := &models.AuditLog{
		AttendanceID:  &attendance.ID,
		Action:        action,
		UserID:        req.Actor.UserID(),
		StudentName:   student.Name,
		StudentRollNo: student.RollNo,
		CourseName:    course.Name,
		Date:          date,
		OldStatus:     oldStatus,
		NewStatus:     &newStatus,
		IPAddress:     req.IPAddress,
		Notes:         req.Notes,
	}
	if err := s.auditRepo.WithTx(tx).Create(entry); err != nil {
		return nil, fmt.Errorf("failed to write audit log: %w", err)
	}

	return &MarkResult{Attendance: attendance, Created: old == nil}, nil
}
