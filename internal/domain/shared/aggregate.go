// Package shared holds the building blocks common to every aggregate:
// identity, audit timestamps, the optimistic-lock version counter and the
// domain error taxonomy.
package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is implemented by anything with an identity and audit timestamps
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// AggregateRoot adds the version counter used for optimistic locking
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
}

// BaseEntity carries the identity and audit fields embedded by every
// domain entity. Column mapping lives in the persistence models, not here.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity returns a BaseEntity with a fresh random ID and both
// timestamps set to now
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (e *BaseEntity) GetID() uuid.UUID        { return e.ID }
func (e *BaseEntity) GetCreatedAt() time.Time { return e.CreatedAt }
func (e *BaseEntity) GetUpdatedAt() time.Time { return e.UpdatedAt }

// BaseAggregateRoot embeds BaseEntity plus the lock version. Mutators on
// concrete aggregates call IncrementVersion once per change; repositories
// compare the stored row against Version-1 when saving with a lock.
type BaseAggregateRoot struct {
	BaseEntity
	Version int
}

// NewBaseAggregateRoot returns a fresh aggregate root at version 1
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int { return a.Version }

// IncrementVersion bumps the version number by one
func (a *BaseAggregateRoot) IncrementVersion() { a.Version++ }
