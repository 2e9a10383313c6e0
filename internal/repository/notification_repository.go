package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"edujournal/internal/models"
)

// NotificationRepository интерфейс для работы с уведомлениями
type NotificationRepository interface {
	Create(notification *models.Notification) error
	GetByID(id uuid.UUID) (*models.Notification, error)
	ListByUser(userID uuid.UUID) ([]*models.Notification, error)
	CountUnread(userID uuid.UUID) (int64, error)
	MarkAsRead(id uuid.UUID) error
	Delete(id uuid.UUID) error

	// CreateForUsers создает одно и то же уведомление для набора пользователей
	CreateForUsers(userIDs []uuid.UUID, notificationType models.NotificationType, title, message string) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *models.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	return r.db.Create(notification).Error
}

func (r *notificationRepository) GetByID(id uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.First(&notification, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) ListByUser(userID uuid.UUID) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) CountUnread(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkAsRead(id uuid.UUID) error {
	now := time.Now()
	return r.db.Model(&models.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": &now,
		}).Error
}

func (r *notificationRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Notification{}, "id = ?", id).Error
}

func (r *notificationRepository) CreateForUsers(userIDs []uuid.UUID, notificationType models.NotificationType, title, message string) error {
	if len(userIDs) == 0 {
		return nil
	}

	notifications := make([]models.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		notifications = append(notifications, models.Notification{
			ID:        uuid.New(),
			UserID:    userID,
			Type:      notificationType,
			Title:     title,
			Message:   message,
			CreatedAt: time.Now(),
		})
	}
	return r.db.Create(&notifications).Error
}
