package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopcart/backend/internal/domain/catalog"
	"github.com/shopcart/backend/internal/domain/shared"
	"github.com/shopcart/backend/internal/infrastructure/logger"
	"github.com/shopcart/backend/internal/infrastructure/telemetry"
)

// DefaultHomeProductsPerCategory is the number of products in each home section
const DefaultHomeProductsPerCategory = 8

// ErrProductNotFound is returned for unknown product IDs
var ErrProductNotFound = shared.ErrNotFound.WithMessage("Product not found")

// ProductService handles product read operations
type ProductService struct {
	productRepo   catalog.ProductRepository
	storeItemRepo catalog.StoreItemRepository
	categoryRepo  catalog.CategoryRepository
	favoriteRepo  catalog.FavoriteRepository
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	storeItemRepo catalog.StoreItemRepository,
	categoryRepo catalog.CategoryRepository,
	favoriteRepo catalog.FavoriteRepository,
) *ProductService {
	return &ProductService{
		productRepo:   productRepo,
		storeItemRepo: storeItemRepo,
		categoryRepo:  categoryRepo,
		favoriteRepo:  favoriteRepo,
	}
}

// GetByID returns a product with its per-store stock. When viewerID is set
// the response also says whether the viewer has favorited it.
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID, viewerID *uuid.UUID) (*ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "get", "product_id", productID.String())
	defer span.End()

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToProductResponse(product)

	items, err := s.storeItemRepo.ListByProduct(ctx, productID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	resp.Stock = make([]StockResponse, 0, len(items))
	for _, it := range items {
		resp.Stock = append(resp.Stock, StockResponse{StoreID: it.StoreID, Quantity: it.Quantity})
	}

	if viewerID != nil && *viewerID != uuid.Nil {
		fav, err := s.favoriteRepo.Exists(ctx, *viewerID, productID)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		resp.IsFavorite = &fav
	}
	return &resp, nil
}

// Search returns one page of products matching req
func (s *ProductService) Search(ctx context.Context, req SearchProductsRequest) (*shared.Paginated[ProductListItem], error) {
	search, err := req.ToSearch()
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "product", "search",
		"query", search.Query, "page", search.Filter.Page)
	defer span.End()

	products, total, err := s.productRepo.Search(ctx, search)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, "total", total)

	page := shared.NewPaginated(ToProductListItems(products), total, search.Filter.Page, search.Filter.PageSize)
	return &page, nil
}

// Home groups the best selling products of every category. Categories without
// products are left out.
func (s *ProductService) Home(ctx context.Context, perCategory int) ([]HomeSection, error) {
	if perCategory <= 0 {
		perCategory = DefaultHomeProductsPerCategory
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	sections := make([]HomeSection, 0, len(categories))
	for _, c := range categories {
		products, err := s.productRepo.ListByCategory(ctx, c.ID, perCategory)
		if err != nil {
			logger.L(ctx).Error("Failed to load home section",
				zap.String("category_id", c.ID.String()), zap.Error(err))
			return nil, err
		}
		if len(products) == 0 {
			continue
		}
		sections = append(sections, HomeSection{
			CategoryID:   c.ID,
			CategoryName: c.Name,
			CategoryURL:  c.URL,
			Products:     ToProductListItems(products),
		})
	}
	return sections, nil
}
