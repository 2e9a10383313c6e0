package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Ошибки бизнес-логики. Обработчики сопоставляют их с HTTP-статусами
// через errors.Is, поэтому сервисы оборачивают их, но не подменяют.
var (
	ErrNotEnrolled       = errors.New("student is not enrolled in this course")
	ErrFutureDate        = errors.New("date cannot be in the future")
	ErrDuplicateRecord   = errors.New("attendance already marked for this date")
	ErrForbidden         = errors.New("access denied")
	ErrNotFound          = errors.New("record not found")
	ErrValidationFailed  = errors.New("validation failed")
	ErrTransactionFailed = errors.New("transaction failed")
)

// isNotFound проверяет ошибку "запись не найдена" от слоя хранения
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isDuplicate проверяет нарушение уникального индекса. Проверка по тексту
// нужна для sqlite-сборок без TranslateError.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
