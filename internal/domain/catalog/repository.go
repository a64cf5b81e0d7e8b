package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopcart/backend/internal/domain/shared"
)

// ProductSearch narrows a product listing
type ProductSearch struct {
	Query      string
	CategoryID *uuid.UUID
	Brand      string
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
	Available  *bool
	Filter     shared.Filter
}

// ProductRepository persists products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Search(ctx context.Context, search ProductSearch) ([]Product, int64, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID, limit int) ([]Product, error)
	Create(ctx context.Context, product *Product) error
	// Update writes mutable fields guarded by the version column and
	// returns shared.ErrConcurrencyConflict when the row moved on.
	Update(ctx context.Context, product *Product) error
	Count(ctx context.Context) (int64, error)
}

// StoreItemRepository persists per-store stock
type StoreItemRepository interface {
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]StoreItem, error)
	Upsert(ctx context.Context, item *StoreItem) error
	CreateBatch(ctx context.Context, items []StoreItem) error
}

// FavoriteRepository persists product favorites
type FavoriteRepository interface {
	Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	// Add inserts the favorite; an existing pair is left untouched.
	Add(ctx context.Context, fav *ProductFavorite) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]FavoriteSummary, error)
}

// CategoryRepository persists categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, category *Category) error
	Count(ctx context.Context) (int64, error)
}
