package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/eventpass/backend/internal/domain/shared"
	"github.com/eventpass/backend/internal/domain/ticketing"
	"github.com/eventpass/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// eventSortFields lists the columns events may be ordered by. Filter input
// comes straight from query parameters, so anything else falls back to the
// creation timestamp.
var eventSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"date":       true,
	"title":      true,
}

// GormEventRepository implements ticketing.EventRepository using GORM
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GORM-based event repository
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// FindByID retrieves an event by its ID
func (r *GormEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*ticketing.Event, error) {
	var model models.EventModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindBySlug retrieves an event by its URL slug
func (r *GormEventRepository) FindBySlug(ctx context.Context, slug string) (*ticketing.Event, error) {
	var model models.EventModel
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByTitle retrieves all events whose title matches exactly
func (r *GormEventRepository) FindByTitle(ctx context.Context, title string) ([]ticketing.Event, error) {
	var rows []models.EventModel
	err := r.db.WithContext(ctx).Where("title = ?", title).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainEvents(rows)
}

// FindByOwner retrieves events created by a specific organizer
func (r *GormEventRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]ticketing.Event, error) {
	var rows []models.EventModel
	query := r.db.WithContext(ctx).Model(&models.EventModel{}).Where("owner_id = ?", ownerID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainEvents(rows)
}

// FindAll retrieves events matching the filter
func (r *GormEventRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ticketing.Event, error) {
	var rows []models.EventModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.EventModel{}), filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainEvents(rows)
}

// Count returns the number of events matching the filter
func (r *GormEventRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&models.EventModel{}), filter)
	err := query.Count(&count).Error
	return count, err
}

// CountByOwner returns the number of events created by a specific organizer
func (r *GormEventRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.EventModel{}).Where("owner_id = ?", ownerID)
	query = r.applySearch(query, filter)
	err := query.Count(&count).Error
	return count, err
}

// Save persists an event without a concurrency check
func (r *GormEventRepository) Save(ctx context.Context, event *ticketing.Event) error {
	model, err := models.EventModelFromDomain(event)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		// The unique slug index fires when two titles slug identically
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// SaveWithLock persists an event using optimistic locking on the version column
func (r *GormEventRepository) SaveWithLock(ctx context.Context, event *ticketing.Event) error {
	model, err := models.EventModelFromDomain(event)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(model).
		Where("id = ? AND version = ?", event.ID, event.Version-1).
		Select("*").
		Updates(model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete removes an event by its ID
func (r *GormEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.EventModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter adds search, ordering and pagination clauses to the query
func (r *GormEventRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	orderBy := filter.OrderBy
	if !eventSortFields[orderBy] {
		orderBy = "created_at"
	}
	orderDir := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		orderDir = "ASC"
	}
	query = query.Order(orderBy + " " + orderDir)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// applySearch adds the title/venue search clause without pagination
func (r *GormEventRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(venue) LIKE ?", pattern, pattern)
	}
	return query
}

func toDomainEvents(rows []models.EventModel) ([]ticketing.Event, error) {
	events := make([]ticketing.Event, 0, len(rows))
	for i := range rows {
		event, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	return events, nil
}

// Ensure GormEventRepository implements the interface
var _ ticketing.EventRepository = (*GormEventRepository)(nil)
