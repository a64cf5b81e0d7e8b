package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopcart/backend/internal/domain/shared"
	"github.com/shopcart/backend/internal/domain/store"
	"github.com/shopcart/backend/internal/infrastructure/persistence/models"
)

// GormStoreRepository implements store.Repository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GormStoreRepository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// FindByID finds a store by its ID
func (r *GormStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*store.Store, error) {
	var model models.StoreModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns all stores ordered by name
func (r *GormStoreRepository) List(ctx context.Context) ([]store.Store, error) {
	var rows []models.StoreModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]store.Store, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, nil
}

// Create inserts a store
func (r *GormStoreRepository) Create(ctx context.Context, s *store.Store) error {
	return r.db.WithContext(ctx).Create(models.StoreModelFromDomain(s)).Error
}

// Count returns the number of stores
func (r *GormStoreRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.StoreModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ store.Repository = (*GormStoreRepository)(nil)
