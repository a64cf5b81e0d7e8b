package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopcart/backend/internal/domain/catalog"
	"github.com/shopcart/backend/internal/domain/shared"
	"github.com/shopcart/backend/internal/infrastructure/logger"
	"github.com/shopcart/backend/internal/infrastructure/telemetry"
)

// Favorite change actions reported to metrics
const (
	FavoriteActionAdd    = "add"
	FavoriteActionRemove = "remove"
)

// FavoriteService manages the products users bookmark.
// Adding and removing are idempotent.
type FavoriteService struct {
	productRepo  catalog.ProductRepository
	favoriteRepo catalog.FavoriteRepository
	metrics      *telemetry.ShopMetrics
	now          func() time.Time
}

// NewFavoriteService creates a new FavoriteService. metrics may be nil.
func NewFavoriteService(productRepo catalog.ProductRepository, favoriteRepo catalog.FavoriteRepository, metrics *telemetry.ShopMetrics) *FavoriteService {
	return &FavoriteService{
		productRepo:  productRepo,
		favoriteRepo: favoriteRepo,
		metrics:      metrics,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// IsFavorite reports whether userID has favorited productID
func (s *FavoriteService) IsFavorite(ctx context.Context, productID, userID uuid.UUID) (*FavoriteStatusResponse, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	fav, err := s.favoriteRepo.Exists(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	return &FavoriteStatusResponse{ProductID: productID, IsFavorite: fav}, nil
}

// AddFavorite bookmarks the product. Adding an existing favorite is a no-op.
func (s *FavoriteService) AddFavorite(ctx context.Context, productID, userID uuid.UUID) error {
	fav, err := catalog.NewProductFavorite(userID, productID, s.now())
	if err != nil {
		return err
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "favorite", "add", "product_id", productID.String())
	defer span.End()

	exists, err := s.productRepo.Exists(ctx, productID)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if !exists {
		return ErrProductNotFound
	}

	already, err := s.favoriteRepo.Exists(ctx, userID, productID)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if already {
		return nil
	}
	if err := s.favoriteRepo.Add(ctx, fav); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	s.metrics.RecordFavoriteChange(ctx, FavoriteActionAdd)
	logger.L(ctx).Debug("Favorite added", zap.String("product_id", productID.String()))
	return nil
}

// RemoveFavorite drops the bookmark. Removing a missing favorite is a no-op.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, productID, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return shared.ErrUnauthorized
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "favorite", "remove", "product_id", productID.String())
	defer span.End()

	exists, err := s.favoriteRepo.Exists(ctx, userID, productID)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if !exists {
		return nil
	}
	if err := s.favoriteRepo.Remove(ctx, userID, productID); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	s.metrics.RecordFavoriteChange(ctx, FavoriteActionRemove)
	return nil
}

// ListFavorites returns id, name and amount of every product the user favorited
func (s *FavoriteService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]FavoriteResponse, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	rows, err := s.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]FavoriteResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FavoriteResponse{ID: r.ID, Name: r.Name, Amount: r.Amount})
	}
	return out, nil
}
