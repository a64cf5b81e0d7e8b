package location

import (
	"strings"

	"github.com/google/uuid"

	"github.com/shopcart/backend/internal/domain/shared"
)

// Address is a delivery or pickup address pinned to an Area node
type Address struct {
	shared.BaseEntity
	Name       string
	Mobile     string
	Line       string
	Landmark   string
	PostalCode string
	LocationID uuid.UUID
}

// NewAddress creates an address in the given area
func NewAddress(area *Location, name, mobile, line, landmark, postalCode string) (*Address, error) {
	if area == nil || area.Type != TypeArea {
		return nil, shared.ErrInvalidInput.WithMessage("address must reference an area")
	}
	return &Address{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		Mobile:     strings.TrimSpace(mobile),
		Line:       strings.TrimSpace(line),
		Landmark:   strings.TrimSpace(landmark),
		PostalCode: strings.TrimSpace(postalCode),
		LocationID: area.ID,
	}, nil
}
