package services

import (
	"edujournal/internal/models"

	"github.com/google/uuid"
)

// Actor представляет роль, разрешенную один раз на запрос: учетная запись
// плюс привязанные к ней профили. Передается в сервисы явно — сервисы
// не ходят в базу повторно, чтобы выяснить "кто спрашивает".
type Actor struct {
	User      *models.User
	TeacherID *uuid.UUID
	StudentID *uuid.UUID
}

// IsAdmin проверяет, что действует администратор
func (a *Actor) IsAdmin() bool {
	return a != nil && a.User != nil && a.User.Role == models.RoleAdmin
}

// IsTeacher проверяет, что у пользователя есть профиль преподавателя
func (a *Actor) IsTeacher() bool {
	return a != nil && a.TeacherID != nil
}

// IsStudent проверяет, что у пользователя есть профиль ученика
func (a *Actor) IsStudent() bool {
	return a != nil && a.StudentID != nil
}

// UserID возвращает ID учетной записи или nil для неаутентифицированного
func (a *Actor) UserID() *uuid.UUID {
	if a == nil || a.User == nil {
		return nil
	}
	id := a.User.ID
	return &id
}

// OwnsCourse проверяет право отмечать посещаемость курса: курс ведет
// этот преподаватель либо действует администратор
func (a *Actor) OwnsCourse(course *models.Course) bool {
	if a.IsAdmin() {
		return true
	}
	return a.IsTeacher() && course != nil && *a.TeacherID == course.TeacherID
}
