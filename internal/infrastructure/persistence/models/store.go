package models

import (
	"github.com/google/uuid"

	"github.com/shopcart/backend/internal/domain/store"
)

// StoreModel is the persistence model for the Store entity.
type StoreModel struct {
	BaseModel
	Name      string     `gorm:"type:varchar(100);not null"`
	AddressID *uuid.UUID `gorm:"size:36"`
}

// TableName returns the table name for GORM
func (StoreModel) TableName() string {
	return "stores"
}

// ToDomain converts the persistence model to a domain Store.
func (m *StoreModel) ToDomain() *store.Store {
	return &store.Store{BaseEntity: m.BaseModel.ToDomain(), Name: m.Name, AddressID: m.AddressID}
}

// StoreModelFromDomain creates a new persistence model from a domain Store.
func StoreModelFromDomain(s *store.Store) *StoreModel {
	m := &StoreModel{Name: s.Name, AddressID: s.AddressID}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}
