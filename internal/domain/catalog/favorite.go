package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopcart/backend/internal/domain/shared"
)

// ProductFavorite is a user's bookmark of a product.
// At most one exists per (UserID, ProductID); rows are inserted or deleted, never updated.
type ProductFavorite struct {
	UserID      uuid.UUID
	ProductID   uuid.UUID
	FavoritedAt time.Time
}

// NewProductFavorite creates a favorite stamped with now
func NewProductFavorite(userID, productID uuid.UUID, now time.Time) (*ProductFavorite, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	if productID == uuid.Nil {
		return nil, shared.ErrInvalidInput.WithMessage("product ID is required")
	}
	return &ProductFavorite{UserID: userID, ProductID: productID, FavoritedAt: now.UTC()}, nil
}

// FavoriteSummary is the product projection returned when listing favorites
type FavoriteSummary struct {
	ID     uuid.UUID
	Name   string
	Amount decimal.Decimal
}
