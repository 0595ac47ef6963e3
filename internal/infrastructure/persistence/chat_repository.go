package persistence

import (
	"context"
	"errors"

	"github.com/eventpass/backend/internal/domain/shared"
	"github.com/eventpass/backend/internal/domain/ticketing"
	"github.com/eventpass/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormChatRepository implements ticketing.ChatRepository using GORM
type GormChatRepository struct {
	db *gorm.DB
}

// NewGormChatRepository creates a new GORM-based chat repository
func NewGormChatRepository(db *gorm.DB) *GormChatRepository {
	return &GormChatRepository{db: db}
}

// FindByEventAndPasscode retrieves the thread for an event/passcode pair
func (r *GormChatRepository) FindByEventAndPasscode(ctx context.Context, eventID uuid.UUID, passcode string) (*ticketing.ChatThread, error) {
	var model models.ChatThreadModel
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND passcode = ?", eventID, passcode).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByEvent retrieves all threads for an event
func (r *GormChatRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]ticketing.ChatThread, error) {
	var rows []models.ChatThreadModel
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	threads := make([]ticketing.ChatThread, 0, len(rows))
	for i := range rows {
		thread, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		threads = append(threads, *thread)
	}
	return threads, nil
}

// Save persists a thread without a concurrency check
func (r *GormChatRepository) Save(ctx context.Context, thread *ticketing.ChatThread) error {
	model, err := models.ChatThreadModelFromDomain(thread)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock persists a thread using optimistic locking on the version column
func (r *GormChatRepository) SaveWithLock(ctx context.Context, thread *ticketing.ChatThread) error {
	model, err := models.ChatThreadModelFromDomain(thread)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(model).
		Where("id = ? AND version = ?", thread.ID, thread.Version-1).
		Select("*").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// DeleteByEvent removes every thread attached to an event
func (r *GormChatRepository) DeleteByEvent(ctx context.Context, eventID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Delete(&models.ChatThreadModel{}).Error
}

// Ensure GormChatRepository implements the interface
var _ ticketing.ChatRepository = (*GormChatRepository)(nil)
