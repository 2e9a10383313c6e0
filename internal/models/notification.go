package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType определяет типы уведомлений
type NotificationType string

const (
	NotificationTypeAbsenceMarked NotificationType = "absence_marked"
	NotificationTypeGradePosted   NotificationType = "grade_posted"
	NotificationTypeNewAssignment NotificationType = "new_assignment"
	NotificationTypeNewEvent      NotificationType = "new_event"
	NotificationTypeGeneral       NotificationType = "general"
)

// Notification представляет уведомление пользователю
type Notification struct {
	ID      uuid.UUID        `json:"id" gorm:"type:text;primaryKey"`
	UserID  uuid.UUID        `json:"user_id" gorm:"type:text;not null;index"`
	Type    NotificationType `json:"type" gorm:"type:varchar(30);default:'general'"`
	Title   string           `json:"title" gorm:"not null"`
	Message string           `json:"message" gorm:"not null"`
	IsRead  bool             `json:"is_read" gorm:"default:false"`
	ReadAt  *time.Time       `json:"read_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// Связи
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
