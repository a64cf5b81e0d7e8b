package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopcart/backend/internal/domain/catalog"
	"github.com/shopcart/backend/internal/domain/shared"
	"github.com/shopcart/backend/internal/infrastructure/persistence/models"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID with its tags and properties
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Properties").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// Exists checks whether a product with the given ID exists
func (r *GormProductRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Search returns one page of products matching the search and the total match count
func (r *GormProductRepository) Search(ctx context.Context, search catalog.ProductSearch) ([]catalog.Product, int64, error) {
	filter := search.Filter.Normalize()
	query := r.applySearch(r.db.WithContext(ctx).Model(&models.ProductModel{}), search)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(filter.OrderBy, ProductSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)

	var rows []models.ProductModel
	if err := query.
		Preload("Tags").
		Preload("Properties").
		Order(sortField + " " + sortOrder).
		Order("id ASC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	products, err := productsToDomain(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// applySearch applies the search criteria without pagination
func (r *GormProductRepository) applySearch(query *gorm.DB, search catalog.ProductSearch) *gorm.DB {
	if q := strings.ToLower(strings.TrimSpace(search.Query)); q != "" {
		pattern := "%" + q + "%"
		tagged := r.db.Model(&models.ProductTagModel{}).
			Select("product_id").
			Where("LOWER(name) LIKE ?", pattern)
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(brand) LIKE ? OR id IN (?)",
			pattern, pattern, tagged,
		)
	}
	if search.CategoryID != nil {
		query = query.Where("category_id = ?", *search.CategoryID)
	}
	if b := strings.TrimSpace(search.Brand); b != "" {
		query = query.Where("LOWER(brand) = ?", strings.ToLower(b))
	}
	if search.MinAmount != nil {
		query = query.Where("amount >= ?", *search.MinAmount)
	}
	if search.MaxAmount != nil {
		query = query.Where("amount <= ?", *search.MaxAmount)
	}
	if search.Available != nil {
		query = query.Where("available = ?", *search.Available)
	}
	return query
}

// ListByCategory returns up to limit products of a category, best sellers first
func (r *GormProductRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID, limit int) ([]catalog.Product, error) {
	if limit <= 0 || limit > shared.MaxPageSize {
		limit = shared.MaxPageSize
	}
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("category_id = ?", categoryID).
		Order("sold_quantity DESC").
		Order("name ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return productsToDomain(rows)
}

// Create inserts a product together with its tags and properties
func (r *GormProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Create(models.ProductModelFromDomain(product)).Error
}

// Update writes the scalar columns of the product if its version is unchanged.
// Tags and properties are not rewritten.
func (r *GormProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	model.Tags = nil
	model.Properties = nil
	expected := model.Version
	model.Version = expected + 1

	result := r.db.WithContext(ctx).
		Model(model).
		Omit(clause.Associations).
		Where("version = ?", expected).
		Select("name", "brand", "model", "description", "features", "amount", "available",
			"max_per_order", "sold_quantity", "category_id", "photo_url", "updated_at", "version").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		exists, err := r.Exists(ctx, product.ID)
		if err != nil {
			return err
		}
		if !exists {
			return shared.ErrNotFound
		}
		return shared.ErrConcurrencyConflict
	}
	product.Version = model.Version
	return nil
}

// Count returns the number of products
func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProductModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func productsToDomain(rows []models.ProductModel) ([]catalog.Product, error) {
	out := make([]catalog.Product, 0, len(rows))
	for i := range rows {
		p, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
