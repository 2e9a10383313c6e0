package services

import (
	"fmt"
	"testing"
	"time"

	"edujournal/internal/models"
	"edujournal/internal/repository"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB открывает изолированную in-memory базу для одного теста
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Teacher{},
		&models.Student{},
		&models.Course{},
		&models.Attendance{},
		&models.AuditLog{},
		&models.Grade{},
		&models.Notification{},
		&models.Assignment{},
		&models.Event{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// testEnv собирает сервисы и типовые данные школы для тестов:
// преподаватель с курсом и три зачисленных ученика
type testEnv struct {
	db *gorm.DB

	attendanceSvc *AttendanceService
	statsSvc      *StatsService
	gradeSvc      *GradeService
	exportSvc     *ExportService
	schoolSvc     *SchoolService

	attendanceRepo repository.AttendanceRepository
	auditRepo      repository.AuditLogRepository
	courseRepo     repository.CourseRepository

	teacher  models.Teacher
	course   models.Course
	students []models.Student

	adminActor   *Actor
	teacherActor *Actor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)

	studentRepo := repository.NewStudentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	gradeRepo := repository.NewGradeRepository(db)

	env := &testEnv{
		db:             db,
		attendanceSvc:  NewAttendanceService(db, attendanceRepo, auditRepo, courseRepo, studentRepo),
		statsSvc:       NewStatsService(attendanceRepo, courseRepo, studentRepo),
		gradeSvc:       NewGradeService(gradeRepo, courseRepo, studentRepo),
		exportSvc:      NewExportService(attendanceRepo),
		schoolSvc:      NewSchoolService(studentRepo, teacherRepo, courseRepo),
		attendanceRepo: attendanceRepo,
		auditRepo:      auditRepo,
		courseRepo:     courseRepo,
	}

	adminUser := models.User{
		ID: uuid.New(), Username: "admin", Email: "admin@test.local",
		PasswordHash: "x", Role: models.RoleAdmin,
	}
	teacherUser := models.User{
		ID: uuid.New(), Username: "teacher_petrov", Email: "petrov@test.local",
		PasswordHash: "x", Role: models.RoleTeacher,
	}
	if err := db.Create(&[]models.User{adminUser, teacherUser}).Error; err != nil {
		t.Fatalf("failed to create users: %v", err)
	}

	env.teacher = models.Teacher{
		ID: uuid.New(), Name: "Петр Петров", Email: "petrov@test.local",
		Subject: "Математика", UserID: &teacherUser.ID,
	}
	if err := db.Create(&env.teacher).Error; err != nil {
		t.Fatalf("failed to create teacher: %v", err)
	}

	env.course = models.Course{ID: uuid.New(), Name: "Алгебра", TeacherID: env.teacher.ID}
	if err := db.Create(&env.course).Error; err != nil {
		t.Fatalf("failed to create course: %v", err)
	}

	names := []string{"Иван Иванов", "Мария Петрова", "Дмитрий Сидоров"}
	for i, name := range names {
		student := models.Student{
			ID: uuid.New(), Name: name, RollNo: i + 1,
			Email: fmt.Sprintf("student%d@test.local", i+1),
			DOB:   time.Date(2008, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		if err := db.Create(&student).Error; err != nil {
			t.Fatalf("failed to create student: %v", err)
		}
		if err := courseRepo.Enroll(env.course.ID, student.ID); err != nil {
			t.Fatalf("failed to enroll student: %v", err)
		}
		env.students = append(env.students, student)
	}

	env.adminActor = &Actor{User: &adminUser}
	env.teacherActor = &Actor{User: &teacherUser, TeacherID: &env.teacher.ID}

	return env
}

// foreignTeacherActor возвращает преподавателя, не ведущего ни одного курса
func foreignTeacherActor() *Actor {
	otherID := uuid.New()
	return &Actor{
		User:      &models.User{ID: uuid.New(), Role: models.RoleTeacher},
		TeacherID: &otherID,
	}
}

// yesterday возвращает вчерашнюю календарную дату
func yesterday() time.Time {
	return DateOnly(time.Now().AddDate(0, 0, -1))
}

// countRows считает строки модели в базе
func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return count
}
