package repository

import (
	"edujournal/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditFilter задает параметры выборки журнала изменений
type AuditFilter struct {
	Action     *models.AuditAction
	UserID     *uuid.UUID
	CourseName string
	Limit      int
}

// AuditLogRepository интерфейс журнала изменений посещаемости.
// Журнал только дописывается: методов обновления и удаления нет.
type AuditLogRepository interface {
	WithTx(tx *gorm.DB) AuditLogRepository

	Create(entry *models.AuditLog) error
	List(filter AuditFilter) ([]models.AuditLog, error)
	ListByAttendance(attendanceID uuid.UUID) ([]models.AuditLog, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository создает новый репозиторий журнала изменений
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) WithTx(tx *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: tx}
}

func (r *auditLogRepository) Create(entry *models.AuditLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return r.db.Create(entry).Error
}

// List возвращает записи журнала, свежие первыми
func (r *auditLogRepository) List(filter AuditFilter) ([]models.AuditLog, error) {
	query := r.db.Preload("User")

	if filter.Action != nil {
		query = query.Where("action = ?", *filter.Action)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.CourseName != "" {
		query = query.Where("course_name = ?", filter.CourseName)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var entries []models.AuditLog
	err := query.Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *auditLogRepository) ListByAttendance(attendanceID uuid.UUID) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := r.db.Where("attendance_id = ?", attendanceID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}
