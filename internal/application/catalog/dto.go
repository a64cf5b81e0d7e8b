package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopcart/backend/internal/domain/catalog"
	"github.com/shopcart/backend/internal/domain/shared"
)

// SearchProductsRequest carries the product listing query parameters
type SearchProductsRequest struct {
	Query      string `form:"q" binding:"max=100"`
	CategoryID string `form:"category" binding:"omitempty,uuid"`
	Brand      string `form:"brand" binding:"max=100"`
	MinAmount  string `form:"minAmount" binding:"omitempty,numeric"`
	MaxAmount  string `form:"maxAmount" binding:"omitempty,numeric"`
	Available  *bool  `form:"available"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"sort" binding:"omitempty,oneof=created_at updated_at name brand amount sold_quantity"`
	OrderDir   string `form:"order" binding:"omitempty,oneof=asc desc"`
}

// ToSearch converts the request into the repository query
func (r SearchProductsRequest) ToSearch() (catalog.ProductSearch, error) {
	filter := shared.Filter{
		Page:     r.Page,
		PageSize: r.PageSize,
		OrderBy:  r.OrderBy,
		OrderDir: r.OrderDir,
		Search:   r.Query,
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "sold_quantity"
	}
	search := catalog.ProductSearch{
		Query:     r.Query,
		Brand:     r.Brand,
		Available: r.Available,
		Filter:    filter.Normalize(),
	}
	if r.CategoryID != "" {
		id, err := uuid.Parse(r.CategoryID)
		if err != nil {
			return search, shared.ErrInvalidInput.WithMessage("category must be a UUID")
		}
		search.CategoryID = &id
	}
	var err error
	if search.MinAmount, err = parseAmount("minAmount", r.MinAmount); err != nil {
		return search, err
	}
	if search.MaxAmount, err = parseAmount("maxAmount", r.MaxAmount); err != nil {
		return search, err
	}
	if search.MinAmount != nil && search.MaxAmount != nil && search.MinAmount.GreaterThan(*search.MaxAmount) {
		return search, shared.ErrInvalidInput.WithMessage("minAmount cannot exceed maxAmount")
	}
	return search, nil
}

func parseAmount(field, raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil, shared.ErrInvalidInput.WithMessage(field + " must be a non-negative number")
	}
	return &d, nil
}

// PropertyResponse is one typed product property
type PropertyResponse struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// StockResponse is the quantity one store holds of a product
type StockResponse struct {
	StoreID  uuid.UUID `json:"store_id"`
	Quantity int       `json:"quantity"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           uuid.UUID          `json:"id"`
	Name         string             `json:"name"`
	Brand        string             `json:"brand"`
	Model        string             `json:"model"`
	Description  string             `json:"description"`
	Features     []string           `json:"features"`
	Amount       decimal.Decimal    `json:"amount"`
	Available    bool               `json:"available"`
	MaxPerOrder  int                `json:"max_per_order"`
	SoldQuantity int                `json:"sold_quantity"`
	CategoryID   *uuid.UUID         `json:"category_id,omitempty"`
	PhotoURL     string             `json:"photo_url,omitempty"`
	Tags         []string           `json:"tags"`
	Properties   []PropertyResponse `json:"properties"`
	Stock        []StockResponse    `json:"stock,omitempty"`
	// IsFavorite is only present for an authenticated caller
	IsFavorite *bool     `json:"is_favorite,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
	Version    int       `json:"version"`
}

// ProductListItem represents a product in search results
type ProductListItem struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Brand      string          `json:"brand"`
	Amount     decimal.Decimal `json:"amount"`
	Available  bool            `json:"available"`
	CategoryID *uuid.UUID      `json:"category_id,omitempty"`
	PhotoURL   string          `json:"photo_url,omitempty"`
}

// HomeSection is one category block of the home page
type HomeSection struct {
	CategoryID   uuid.UUID         `json:"category_id"`
	CategoryName string            `json:"category_name"`
	CategoryURL  string            `json:"category_url"`
	Products     []ProductListItem `json:"products"`
}

// FavoriteResponse is one entry of a user's favorites list
type FavoriteResponse struct {
	ID     uuid.UUID       `json:"id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// FavoriteStatusResponse reports whether a product is a favorite of the caller
type FavoriteStatusResponse struct {
	ProductID  uuid.UUID `json:"product_id"`
	IsFavorite bool      `json:"is_favorite"`
}

// SetStockRequest sets the quantity a store holds of a product
type SetStockRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}

// RefreshAvailabilityRequest lists the products whose availability to recompute
type RefreshAvailabilityRequest struct {
	ProductIDs []uuid.UUID `json:"product_ids" binding:"required,min=1,max=500"`
}

// RefreshFailure describes a product whose refresh did not commit
type RefreshFailure struct {
	ProductID uuid.UUID `json:"product_id"`
	Error     string    `json:"error"`
}

// RefreshAvailabilityResult summarises one run of the availability updater
type RefreshAvailabilityResult struct {
	Processed int              `json:"processed"`
	Changed   []uuid.UUID      `json:"changed"`
	Failed    []RefreshFailure `json:"failed"`
}

// PhotoResponse is returned after a product photo upload
type PhotoResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	URL       string    `json:"url"`
}

// CategoryPropertyResponse represents a category property in API responses
type CategoryPropertyResponse struct {
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	Filter bool     `json:"filter"`
	Values []string `json:"values,omitempty"`
	Unit   string   `json:"unit,omitempty"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID         uuid.UUID                  `json:"id"`
	Name       string                     `json:"name"`
	URL        string                     `json:"url"`
	ParentID   *uuid.UUID                 `json:"parent_id,omitempty"`
	Tags       []string                   `json:"tags"`
	Properties []CategoryPropertyResponse `json:"properties"`
}

// ToProductResponse converts a product to its response form
func ToProductResponse(p *catalog.Product) ProductResponse {
	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, t.Name)
	}
	props := make([]PropertyResponse, 0, len(p.Properties))
	for _, pr := range p.Properties {
		props = append(props, PropertyResponse{Name: pr.Name, Type: pr.Type.String(), Value: pr.Value})
	}
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Brand:        p.Brand,
		Model:        p.Model,
		Description:  p.Description,
		Features:     features,
		Amount:       p.Amount,
		Available:    p.Available,
		MaxPerOrder:  p.MaxPerOrder,
		SoldQuantity: p.SoldQuantity,
		CategoryID:   p.CategoryID,
		PhotoURL:     p.PhotoURL,
		Tags:         tags,
		Properties:   props,
		UpdatedAt:    p.UpdatedAt,
		Version:      p.Version,
	}
}

// ToProductListItem converts a product to its search result form
func ToProductListItem(p *catalog.Product) ProductListItem {
	return ProductListItem{
		ID:         p.ID,
		Name:       p.Name,
		Brand:      p.Brand,
		Amount:     p.Amount,
		Available:  p.Available,
		CategoryID: p.CategoryID,
		PhotoURL:   p.PhotoURL,
	}
}

// ToProductListItems converts products to their search result form
func ToProductListItems(products []catalog.Product) []ProductListItem {
	items := make([]ProductListItem, 0, len(products))
	for i := range products {
		items = append(items, ToProductListItem(&products[i]))
	}
	return items
}

// ToCategoryResponse converts a category to its response form
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	props := make([]CategoryPropertyResponse, 0, len(c.Properties))
	for _, p := range c.Properties {
		props = append(props, CategoryPropertyResponse{
			Name:   p.Name,
			Type:   p.Type.String(),
			Filter: p.Filter,
			Values: p.Values,
			Unit:   p.Unit,
		})
	}
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	return CategoryResponse{
		ID:         c.ID,
		Name:       c.Name,
		URL:        c.URL,
		ParentID:   c.ParentID,
		Tags:       tags,
		Properties: props,
	}
}
