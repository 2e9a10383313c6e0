package handlers

import (
	"net/http"

	"edujournal/internal/models"
	"edujournal/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NotificationHandler представляет обработчик уведомлений
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler создает новый обработчик уведомлений
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// BroadcastRequest представляет запрос рассылки уведомления роли
type BroadcastRequest struct {
	Role    models.UserRole `json:"role" binding:"required"`
	Title   string          `json:"title" binding:"required"`
	Message string          `json:"message"`
}

// List возвращает уведомления текущего пользователя
func (h *NotificationHandler) List(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	notifications, err := h.notificationService.ListForUser(userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	unread, err := h.notificationService.CountUnread(userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"count":         len(notifications),
		"unread":        unread,
	})
}

// MarkAsRead помечает уведомление прочитанным
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification ID"})
		return
	}
	userID := c.MustGet("user_id").(uuid.UUID)

	if err := h.notificationService.MarkAsRead(id, userID); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification marked as read"})
}

// Delete удаляет уведомление текущего пользователя
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification ID"})
		return
	}
	userID := c.MustGet("user_id").(uuid.UUID)

	if err := h.notificationService.Delete(id, userID); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification deleted"})
}

// Broadcast рассылает уведомление всем пользователям роли (администратор)
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sent, err := h.notificationService.Broadcast(req.Role, models.NotificationTypeGeneral, req.Title, req.Message)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sent": sent})
}
