package main

import (
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"edujournal/internal/models"
)

func main() {
	// Подключаемся к базе данных
	db, err := gorm.Open(sqlite.Open("edujournal.db?_foreign_keys=on"), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Автомиграция
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
		log.Fatalf("Failed to migrate database: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	// Создаем тестовых пользователей
	adminUserID := uuid.New()
	teacherUserID := uuid.New()
	studentUserID := uuid.New()

	users := []models.User{
		{
			ID:           adminUserID,
			Username:     "admin",
			Email:        "admin@school.local",
			PasswordHash: string(hash),
			FirstName:    "Администратор",
			Role:         models.RoleAdmin,
		},
		{
			ID:           teacherUserID,
			Username:     "teacher_pugachev",
			Email:        "pugachev@school.local",
			PasswordHash: string(hash),
			FirstName:    "Александр",
			LastName:     "Пугачев",
			Role:         models.RoleTeacher,
		},
		{
			ID:           studentUserID,
			Username:     "student_ivan",
			Email:        "ivanov@school.local",
			PasswordHash: string(hash),
			FirstName:    "Иван",
			LastName:     "Иванов",
			Role:         models.RoleStudent,
		},
	}
	if err := db.Create(&users).Error; err != nil {
		log.Fatalf("Failed to create users: %v", err)
	}

	// Преподаватель и его курсы
	teacher := models.Teacher{
		ID:      uuid.New(),
		Name:    "Александр Пугачев",
		Email:   "pugachev@school.local",
		Subject: "Физика",
		UserID:  &teacherUserID,
	}
	if err := db.Create(&teacher).Error; err != nil {
		log.Fatalf("Failed to create teacher: %v", err)
	}

	physicsCode := "PHYS-11"
	mathCode := "MATH-11"
	courses := []models.Course{
		{ID: uuid.New(), Name: "Физика 11", Code: &physicsCode, TeacherID: teacher.ID},
		{ID: uuid.New(), Name: "Математика 11", Code: &mathCode, TeacherID: teacher.ID},
	}
	if err := db.Create(&courses).Error; err != nil {
		log.Fatalf("Failed to create courses: %v", err)
	}

	// Ученики
	students := []models.Student{
		{
			ID:     uuid.New(),
			Name:   "Иван Иванов",
			RollNo: 1,
			Email:  "ivanov@school.local",
			DOB:    time.Date(2008, 3, 14, 0, 0, 0, 0, time.UTC),
			UserID: &studentUserID,
		},
		{
			ID:     uuid.New(),
			Name:   "Мария Петрова",
			RollNo: 2,
			Email:  "petrova@school.local",
			DOB:    time.Date(2008, 7, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:     uuid.New(),
			Name:   "Дмитрий Сидоров",
			RollNo: 3,
			Email:  "sidorov@school.local",
			DOB:    time.Date(2007, 11, 21, 0, 0, 0, 0, time.UTC),
		},
	}
	if err := db.Create(&students).Error; err != nil {
		log.Fatalf("Failed to create students: %v", err)
	}

	// Зачисляем всех учеников на оба курса
	for _, course := range courses {
		if err := db.Model(&course).Association("Students").Append(&students); err != nil {
			log.Fatalf("Failed to enroll students: %v", err)
		}
	}

	// Посещаемость за вчера: двое присутствовали, один отсутствовал
	yesterday := time.Now().AddDate(0, 0, -1)
	date := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC)
	for i, student := range students {
		attendance := models.Attendance{
			ID:         uuid.New(),
			StudentID:  student.ID,
			CourseID:   courses[0].ID,
			Date:       date,
			Status:     i != 2,
			MarkedByID: &teacherUserID,
		}
		if err := db.Create(&attendance).Error; err != nil {
			log.Fatalf("Failed to create attendance: %v", err)
		}

		status := attendance.Status
		entry := models.AuditLog{
			ID:            uuid.New(),
			AttendanceID:  &attendance.ID,
			Action:        models.AuditActionCreate,
			UserID:        &teacherUserID,
			StudentName:   student.Name,
			StudentRollNo: student.RollNo,
			CourseName:    courses[0].Name,
			Date:          date,
			NewStatus:     &status,
		}
		if err := db.Create(&entry).Error; err != nil {
			log.Fatalf("Failed to create audit log: %v", err)
		}
	}

	// Оценки за контрольную
	scores := []float64{92, 78, 45}
	for i, student := range students {
		grade := models.Grade{
			ID:             uuid.New(),
			StudentID:      student.ID,
			CourseID:       courses[0].ID,
			AssignmentName: "Контрольная работа 1",
			Score:          scores[i],
			MaxScore:       100,
		}
		switch {
		case scores[i] >= 90:
			grade.Letter = "A"
		case scores[i] >= 70:
			grade.Letter = "C"
		default:
			grade.Letter = "F"
		}
		if err := db.Create(&grade).Error; err != nil {
			log.Fatalf("Failed to create grade: %v", err)
		}
	}

	log.Println("Seed data created successfully")
}
