package models

import (
	"github.com/google/uuid"

	"github.com/shopcart/backend/internal/domain/location"
	"github.com/shopcart/backend/internal/domain/shared"
)

// LocationModel is the persistence model for a node of the location tree.
type LocationModel struct {
	ID       uuid.UUID  `gorm:"size:36;primaryKey"`
	Name     string     `gorm:"type:varchar(100);not null;index:idx_locations_name"`
	Type     string     `gorm:"type:varchar(10);not null;index:idx_locations_parent_type,priority:2"`
	ParentID *uuid.UUID `gorm:"size:36;index:idx_locations_parent_type,priority:1"`
}

// TableName returns the table name for GORM
func (LocationModel) TableName() string {
	return "locations"
}

// ToDomain converts the persistence model to a domain Location.
func (m *LocationModel) ToDomain() (*location.Location, error) {
	t, err := location.ParseType(m.Type)
	if err != nil {
		return nil, err
	}
	return &location.Location{ID: m.ID, Name: m.Name, Type: t, ParentID: m.ParentID}, nil
}

// LocationModelFromDomain creates a new persistence model from a domain Location.
func LocationModelFromDomain(l *location.Location) *LocationModel {
	return &LocationModel{ID: l.ID, Name: l.Name, Type: l.Type.String(), ParentID: l.ParentID}
}

// LocationsToDomain converts a slice of models, failing on the first bad row
func LocationsToDomain(ms []LocationModel) ([]location.Location, error) {
	out := make([]location.Location, 0, len(ms))
	for i := range ms {
		l, err := ms[i].ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, nil
}

// AddressModel is the persistence model for the Address entity.
type AddressModel struct {
	BaseModel
	Name       string    `gorm:"type:varchar(100)"`
	Mobile     string    `gorm:"type:varchar(20)"`
	Line       string    `gorm:"type:varchar(255)"`
	Landmark   string    `gorm:"type:varchar(255)"`
	PostalCode string    `gorm:"type:varchar(10)"`
	LocationID uuid.UUID `gorm:"size:36;not null;index"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "addresses"
}

// ToDomain converts the persistence model to a domain Address.
func (m *AddressModel) ToDomain() *location.Address {
	return &location.Address{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Name:       m.Name,
		Mobile:     m.Mobile,
		Line:       m.Line,
		Landmark:   m.Landmark,
		PostalCode: m.PostalCode,
		LocationID: m.LocationID,
	}
}

// AddressModelFromDomain creates a new persistence model from a domain Address.
func AddressModelFromDomain(a *location.Address) *AddressModel {
	m := &AddressModel{
		Name:       a.Name,
		Mobile:     a.Mobile,
		Line:       a.Line,
		Landmark:   a.Landmark,
		PostalCode: a.PostalCode,
		LocationID: a.LocationID,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}
