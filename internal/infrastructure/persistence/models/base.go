package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopcart/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"size:36;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// AggregateModel extends BaseModel with version for optimistic locking.
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// ToVersioned converts AggregateModel to domain VersionedEntity
func (m *AggregateModel) ToVersioned() shared.VersionedEntity {
	return shared.VersionedEntity{BaseEntity: m.BaseModel.ToDomain(), Version: m.Version}
}

// FromDomainVersioned populates AggregateModel from domain VersionedEntity
func (m *AggregateModel) FromDomainVersioned(v shared.VersionedEntity) {
	m.FromDomainBaseEntity(v.BaseEntity)
	m.Version = v.Version
}
