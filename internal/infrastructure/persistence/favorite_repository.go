package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopcart/backend/internal/domain/catalog"
	"github.com/shopcart/backend/internal/infrastructure/persistence/models"
)

// GormFavoriteRepository implements FavoriteRepository using GORM
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new GormFavoriteRepository
func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// Exists checks whether the user has favorited the product
func (r *GormFavoriteRepository) Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductFavoriteModel{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Add inserts the favorite; an existing row for the pair is left as is
func (r *GormFavoriteRepository) Add(ctx context.Context, fav *catalog.ProductFavorite) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(models.ProductFavoriteModelFromDomain(fav)).Error
}

// Remove deletes the favorite; removing a missing pair is not an error
func (r *GormFavoriteRepository) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.ProductFavoriteModel{}).Error
}

// ListByUser returns the favorited products of a user, most recent first
func (r *GormFavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]catalog.FavoriteSummary, error) {
	var rows []struct {
		ID     uuid.UUID
		Name   string
		Amount decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Table("product_favorites").
		Select("products.id, products.name, products.amount").
		Joins("JOIN products ON products.id = product_favorites.product_id").
		Where("product_favorites.user_id = ?", userID).
		Order("product_favorites.favorited_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]catalog.FavoriteSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, catalog.FavoriteSummary{ID: row.ID, Name: row.Name, Amount: row.Amount})
	}
	return out, nil
}

var _ catalog.FavoriteRepository = (*GormFavoriteRepository)(nil)
