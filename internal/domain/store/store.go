// Package store models the merchants that hold stock and receive payments.
package store

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/shopcart/backend/internal/domain/shared"
)

// Store is a merchant selling through the platform
type Store struct {
	shared.BaseEntity
	Name      string
	AddressID *uuid.UUID
}

// NewStore creates a store
func NewStore(name string) (*Store, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.ErrInvalidInput.WithMessage("store name cannot be empty")
	}
	return &Store{BaseEntity: shared.NewBaseEntity(), Name: name}, nil
}

// Repository persists stores
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)
	List(ctx context.Context) ([]Store, error)
	Create(ctx context.Context, store *Store) error
	Count(ctx context.Context) (int64, error)
}
