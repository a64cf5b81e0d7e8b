package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopcart/backend/internal/domain/catalog"
	"github.com/shopcart/backend/internal/infrastructure/persistence/models"
)

// GormStoreItemRepository implements StoreItemRepository using GORM
type GormStoreItemRepository struct {
	db *gorm.DB
}

// NewGormStoreItemRepository creates a new GormStoreItemRepository
func NewGormStoreItemRepository(db *gorm.DB) *GormStoreItemRepository {
	return &GormStoreItemRepository{db: db}
}

// ListByProduct returns the stock rows of a product
func (r *GormStoreItemRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.StoreItem, error) {
	var rows []models.StoreItemModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("store_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]catalog.StoreItem, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// Upsert inserts the stock row or overwrites the quantity of the existing
// (product, store) row.
func (r *GormStoreItemRepository) Upsert(ctx context.Context, item *catalog.StoreItem) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "store_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
		}).
		Create(models.StoreItemModelFromDomain(item)).Error
}

// CreateBatch inserts stock rows in batches
func (r *GormStoreItemRepository) CreateBatch(ctx context.Context, items []catalog.StoreItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]*models.StoreItemModel, 0, len(items))
	for i := range items {
		rows = append(rows, models.StoreItemModelFromDomain(&items[i]))
	}
	return r.db.WithContext(ctx).CreateInBatches(rows, 200).Error
}

var _ catalog.StoreItemRepository = (*GormStoreItemRepository)(nil)
