// Package catalog contains products, their per-store stock and the
// favorites users keep of them.
package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopcart/backend/internal/domain/shared"
)

// Tag is a weighted search keyword attached to a product
type Tag struct {
	Name  string
	Score int
}

// Tag scores applied when products are created from catalog data
const (
	TagScorePrimary  = 100
	TagScoreModel    = 100
	TagScoreDefault  = 40
	TagScoreBrand    = 15
	TagScoreCategory = 10
)

// Product is a sellable item. Available is derived from its store stock and
// is only changed through RefreshAvailability.
type Product struct {
	shared.VersionedEntity
	Name         string
	Brand        string
	Model        string
	Description  string
	Features     []string
	Amount       decimal.Decimal
	Available    bool
	MaxPerOrder  int
	SoldQuantity int
	CategoryID   *uuid.UUID
	PhotoURL     string
	Tags         []Tag
	Properties   []Property
	StoreItems   []StoreItem
}

// NewProduct creates a product. New products start unavailable until stock is
// recorded and availability refreshed.
func NewProduct(name, brand, model string, amount decimal.Decimal, categoryID *uuid.UUID) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.ErrInvalidInput.WithMessage("product name cannot be empty")
	}
	if amount.IsNegative() {
		return nil, shared.ErrInvalidInput.WithMessage("product amount cannot be negative")
	}
	return &Product{
		VersionedEntity: shared.NewVersionedEntity(),
		Name:            name,
		Brand:           strings.TrimSpace(brand),
		Model:           strings.TrimSpace(model),
		Amount:          amount,
		MaxPerOrder:     1,
		CategoryID:      categoryID,
	}, nil
}

// AddTag appends a tag unless one with the same name (case-insensitive) exists
func (p *Product) AddTag(name string, score int) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	for _, t := range p.Tags {
		if strings.EqualFold(t.Name, name) {
			return
		}
	}
	p.Tags = append(p.Tags, Tag{Name: name, Score: score})
}

// RefreshAvailability recomputes Available from the given stock rows and
// reports whether the flag changed.
func (p *Product) RefreshAvailability(items []StoreItem, now time.Time) bool {
	available := IsAvailable(items)
	if available == p.Available {
		return false
	}
	p.Available = available
	p.Touch(now)
	return true
}

// SetPhoto replaces the product photo URL; an empty url clears it
func (p *Product) SetPhoto(url string, now time.Time) {
	p.PhotoURL = url
	p.Touch(now)
}

// IsAvailable is true iff at least one store holds a positive quantity
func IsAvailable(items []StoreItem) bool {
	for _, it := range items {
		if it.Quantity > 0 {
			return true
		}
	}
	return false
}
