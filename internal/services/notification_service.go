package services

import (
	"fmt"

	"edujournal/internal/models"
	"edujournal/internal/repository"

	"github.com/google/uuid"
)

// NotificationService управляет уведомлениями пользователей
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
}

// NewNotificationService создает новый сервис уведомлений
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// Notify отправляет уведомление одному пользователю
func (s *NotificationService) Notify(userID uuid.UUID, nType models.NotificationType, title, message string) (*models.Notification, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: notification title is required", ErrValidationFailed)
	}

	if _, err := s.userRepo.GetByID(userID); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("user: %w", ErrNotFound)
		}
		return nil, err
	}

	notification := &models.Notification{
		UserID:  userID,
		Type:    nType,
		Title:   title,
		Message: message,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return notification, nil
}

// Broadcast отправляет одно уведомление всем пользователям роли
func (s *NotificationService) Broadcast(role models.UserRole, nType models.NotificationType, title, message string) (int, error) {
	if title == "" {
		return 0, fmt.Errorf("%w: notification title is required", ErrValidationFailed)
	}

	users, err := s.userRepo.ListByRole(role)
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}
	if len(users) == 0 {
		return 0, nil
	}

	userIDs := make([]uuid.UUID, 0, len(users))
	for _, user := range users {
		userIDs = append(userIDs, user.ID)
	}
	if err := s.notificationRepo.CreateForUsers(userIDs, nType, title, message); err != nil {
		return 0, fmt.Errorf("failed to create notifications: %w", err)
	}
	return len(userIDs), nil
}

// ListForUser возвращает уведомления пользователя, новые первыми
func (s *NotificationService) ListForUser(userID uuid.UUID) ([]*models.Notification, error) {
	return s.notificationRepo.ListByUser(userID)
}

// CountUnread возвращает число непрочитанных уведомлений пользователя
func (s *NotificationService) CountUnread(userID uuid.UUID) (int64, error) {
	return s.notificationRepo.CountUnread(userID)
}

// MarkAsRead помечает уведомление прочитанным. Чужое уведомление
// пометить нельзя.
func (s *NotificationService) MarkAsRead(notificationID, userID uuid.UUID) error {
	notification, err := s.notificationRepo.GetByID(notificationID)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("notification: %w", ErrNotFound)
		}
		return err
	}
	if notification.UserID != userID {
		return fmt.Errorf("%w: notification belongs to another user", ErrForbidden)
	}
	return s.notificationRepo.MarkAsRead(notificationID)
}

// Delete удаляет уведомление пользователя
func (s *NotificationService) Delete(notificationID, userID uuid.UUID) error {
	notification, err := s.notificationRepo.GetByID(notificationID)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("notification: %w", ErrNotFound)
		}
		return err
	}
	if notification.UserID != userID {
		return fmt.Errorf("%w: notification belongs to another user", ErrForbidden)
	}
	return s.notificationRepo.Delete(notificationID)
}
