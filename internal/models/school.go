package models

import (
	"time"

	"github.com/google/uuid"
)

// Student представляет ученика школы
type Student struct {
	ID     uuid.UUID  `json:"id" gorm:"type:text;primaryKey"`
	Name   string     `json:"name" gorm:"not null"`
	RollNo int        `json:"roll_no" gorm:"uniqueIndex;not null"`
	Email  string     `json:"email" gorm:"not null"`
	DOB    time.Time  `json:"dob" gorm:"type:date"`
	UserID *uuid.UUID `json:"user_id,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Связи
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	Courses []Course `json:"courses,omitempty" gorm:"many2many:course_students;constraint:OnDelete:CASCADE"`
}

// Teacher представляет преподавателя
type Teacher struct {
	ID      uuid.UUID  `json:"id" gorm:"type:text;primaryKey"`
	Name    string     `json:"name" gorm:"not null"`
	Email   string     `json:"email" gorm:"not null"`
	Subject string     `json:"subject"`
	UserID  *uuid.UUID `json:"user_id,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Связи
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	Courses []Course `json:"courses,omitempty" gorm:"foreignKey:TeacherID"`
}

// Course представляет учебный курс. Удаление курса каскадно удаляет
// посещаемость, оценки, задания и события курса.
type Course struct {
	ID        uuid.UUID `json:"id" gorm:"type:text;primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Code      *string   `json:"code,omitempty" gorm:"uniqueIndex"`
	TeacherID uuid.UUID `json:"teacher_id" gorm:"type:text;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Связи
	Teacher  Teacher   `json:"teacher" gorm:"foreignKey:TeacherID;constraint:OnDelete:CASCADE"`
	Students []Student `json:"students,omitempty" gorm:"many2many:course_students;constraint:OnDelete:CASCADE"`
}
