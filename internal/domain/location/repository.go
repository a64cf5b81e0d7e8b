package location

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists the location tree
type Repository interface {
	Lookup
	// FindByName returns the shallowest node with the given name
	FindByName(ctx context.Context, name string) (*Location, error)
	ListChildren(ctx context.Context, parentID uuid.UUID, childType Type) ([]Location, error)
	// ListChildrenOfNamed returns the childType children of every node named
	// parentName. An unknown name yields an empty list.
	ListChildrenOfNamed(ctx context.Context, parentName string, childType Type) ([]Location, error)
	ListByType(ctx context.Context, t Type) ([]Location, error)
	CreateBatch(ctx context.Context, locations []Location) error
	Count(ctx context.Context) (int64, error)
}

// AddressRepository persists addresses
type AddressRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Address, error)
	Create(ctx context.Context, address *Address) error
}
