package models

import (
	"time"

	"github.com/google/uuid"
)

// Attendance представляет отметку посещаемости: одна строка на
// (ученик, курс, дата). Уникальность гарантирует составной индекс —
// сервисные проверки дают только понятные ошибки, но не заменяют его.
type Attendance struct {
	ID         uuid.UUID  `json:"id" gorm:"type:text;primaryKey"`
	StudentID  uuid.UUID  `json:"student_id" gorm:"type:text;not null;uniqueIndex:idx_attendance_student_course_date"`
	CourseID   uuid.UUID  `json:"course_id" gorm:"type:text;not null;uniqueIndex:idx_attendance_student_course_date"`
	Date       time.Time  `json:"date" gorm:"type:date;not null;uniqueIndex:idx_attendance_student_course_date"`
	Status     bool       `json:"status"` // true = присутствовал
	MarkedByID *uuid.UUID `json:"marked_by_id,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Связи
	Student  Student `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Course   Course  `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	MarkedBy *User   `json:"marked_by,omitempty" gorm:"foreignKey:MarkedByID;constraint:OnDelete:SET NULL"`
}

// AuditAction определяет виды изменений посещаемости
type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

// AuditLog представляет запись журнала изменений посещаемости.
// Журнал только дописывается: записи никогда не изменяются и не удаляются.
// Ученик, курс и дата денормализованы, поэтому запись остается читаемой
// даже после удаления самой отметки (ссылка деградирует в NULL).
type AuditLog struct {
	ID           uuid.UUID   `json:"id" gorm:"type:text;primaryKey"`
	AttendanceID *uuid.UUID  `json:"attendance_id,omitempty" gorm:"type:text"`
	Action       AuditAction `json:"action" gorm:"type:varchar(10);not null"`
	UserID       *uuid.UUID  `json:"user_id,omitempty" gorm:"type:text"`

	// Денормализованные поля
	StudentName   string    `json:"student_name" gorm:"not null"`
	StudentRollNo int       `json:"student_roll_no"`
	CourseName    string    `json:"course_name" gorm:"not null"`
	Date          time.Time `json:"date" gorm:"type:date"`

	OldStatus *bool  `json:"old_status,omitempty"`
	NewStatus *bool  `json:"new_status,omitempty"`
	IPAddress string `json:"ip_address,omitempty"`
	Notes     string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// Связи
	Attendance *Attendance `json:"-" gorm:"foreignKey:AttendanceID;constraint:OnDelete:SET NULL"`
	User       *User       `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}
