package models

import (
	"time"

	"github.com/google/uuid"
)

// Grade представляет оценку ученика за работу в рамках курса.
// На пару (ученик, курс) и название работы приходится одна строка.
type Grade struct {
	ID             uuid.UUID `json:"id" gorm:"type:text;primaryKey"`
	StudentID      uuid.UUID `json:"student_id" gorm:"type:text;not null;uniqueIndex:idx_grade_student_course_assignment"`
	CourseID       uuid.UUID `json:"course_id" gorm:"type:text;not null;uniqueIndex:idx_grade_student_course_assignment"`
	AssignmentName string    `json:"assignment_name" gorm:"not null;uniqueIndex:idx_grade_student_course_assignment"`
	Score          float64   `json:"score" gorm:"not null"`
	MaxScore       float64   `json:"max_score" gorm:"not null"`
	Letter         string    `json:"letter" gorm:"type:varchar(2)"`

	DueDate     *time.Time `json:"due_date,omitempty" gorm:"type:date"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Связи
	Student Student `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Course  Course  `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
