package models

import (
	"time"

	"github.com/google/uuid"
)

// Assignment представляет учебное задание по курсу
type Assignment struct {
	ID          uuid.UUID  `json:"id" gorm:"type:text;primaryKey"`
	CourseID    uuid.UUID  `json:"course_id" gorm:"type:text;not null;index"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty" gorm:"type:date"`
	CreatedByID *uuid.UUID `json:"created_by_id,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Связи
	Course    Course `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	CreatedBy *User  `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL"`
}

// Event представляет событие календаря. CourseID == nil означает
// общешкольное событие, видимое всем.
type Event struct {
	ID          uuid.UUID  `json:"id" gorm:"type:text;primaryKey"`
	CourseID    *uuid.UUID `json:"course_id,omitempty" gorm:"type:text;index"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"start_date" gorm:"type:date;not null"`
	EndDate     time.Time  `json:"end_date" gorm:"type:date;not null"`
	CreatedByID *uuid.UUID `json:"created_by_id,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Связи
	Course    *Course `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	CreatedBy *User   `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL"`
}
