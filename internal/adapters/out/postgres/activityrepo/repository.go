// Package activityrepo appends audit entries to the activity_log table.
package activityrepo

import (
	"context"
	"time"

	"ordersapi/internal/core/domain/model/activity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EntryDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventType   string    `gorm:"index;not null"`
	Comment     string    `gorm:"not null"`
	SubjectID   uuid.UUID `gorm:"type:uuid;index"`
	SubjectType string
	CreatedAt   time.Time
}

func (EntryDTO) TableName() string {
	return "activity_log"
}

type GormActivityLogRepository struct {
	db *gorm.DB
}

func NewGormActivityLogRepository(db *gorm.DB) *GormActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

func (r *GormActivityLogRepository) Add(ctx context.Context, entry activity.Entry) error {
	dto := EntryDTO{
		ID:          entry.ID.Bytes(),
		EventType:   string(entry.EventType),
		Comment:     entry.Comment,
		SubjectID:   entry.SubjectID.Bytes(),
		SubjectType: entry.SubjectType,
		CreatedAt:   entry.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}
