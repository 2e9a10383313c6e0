package handlers

import (
	"errors"
	"net/http"

	"edujournal/internal/services"

	"github.com/gin-gonic/gin"
)

// statusFromError отображает ошибки сервисов в HTTP статусы
func statusFromError(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrDuplicateRecord):
		return http.StatusConflict
	case errors.Is(err, services.ErrNotEnrolled),
		errors.Is(err, services.ErrFutureDate),
		errors.Is(err, services.ErrValidationFailed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError отвечает телом {"error": ...} со статусом по типу ошибки
func abortWithError(c *gin.Context, err error) {
	c.JSON(statusFromError(err), gin.H{"error": err.Error()})
}
