package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopcart/backend/internal/domain/shared"
)

// StoreItem is the stock one store holds of one product.
// (ProductID, StoreID) is unique.
type StoreItem struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	StoreID   uuid.UUID
	Quantity  int
	UpdatedAt time.Time
}

// NewStoreItem creates a stock row
func NewStoreItem(productID, storeID uuid.UUID, quantity int) (*StoreItem, error) {
	if productID == uuid.Nil || storeID == uuid.Nil {
		return nil, shared.ErrInvalidInput.WithMessage("product and store IDs are required")
	}
	if quantity < 0 {
		return nil, shared.ErrInvalidInput.WithMessage("quantity cannot be negative")
	}
	return &StoreItem{
		ID:        uuid.New(),
		ProductID: productID,
		StoreID:   storeID,
		Quantity:  quantity,
		UpdatedAt: time.Now().UTC(),
	}, nil
}
