package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopcart/backend/internal/domain/catalog"
	"github.com/shopcart/backend/internal/domain/shared"
	"github.com/shopcart/backend/internal/domain/store"
	"github.com/shopcart/backend/internal/infrastructure/logger"
	"github.com/shopcart/backend/internal/infrastructure/telemetry"
)

// AvailabilityService keeps Product.Available in line with store stock.
//
// Every product is refreshed in its own transaction, so a failure on one
// product never rolls back the others.
type AvailabilityService struct {
	txScope   TransactionScope
	storeRepo store.Repository
	metrics   *telemetry.ShopMetrics
	now       func() time.Time
}

// NewAvailabilityService creates a new AvailabilityService. metrics may be nil.
func NewAvailabilityService(txScope TransactionScope, storeRepo store.Repository, metrics *telemetry.ShopMetrics) *AvailabilityService {
	return &AvailabilityService{
		txScope:   txScope,
		storeRepo: storeRepo,
		metrics:   metrics,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// RefreshAvailability recomputes the flag of each product in turn. Failures
// are collected and returned together after all products were tried; the
// result still lists what did commit.
func (s *AvailabilityService) RefreshAvailability(ctx context.Context, productIDs []uuid.UUID) (*RefreshAvailabilityResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "availability", "refresh", "products", len(productIDs))
	defer span.End()

	result := &RefreshAvailabilityResult{
		Changed: []uuid.UUID{},
		Failed:  []RefreshFailure{},
	}
	var errs []error
	seen := make(map[uuid.UUID]struct{}, len(productIDs))

	for _, id := range productIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		changed, err := s.refreshOne(ctx, id)
		result.Processed++
		if err != nil {
			errs = append(errs, fmt.Errorf("product %s: %w", id, err))
			result.Failed = append(result.Failed, RefreshFailure{ProductID: id, Error: err.Error()})
			logger.L(ctx).Warn("Availability refresh failed",
				zap.String("product_id", id.String()), zap.Error(err))
			continue
		}
		if changed {
			result.Changed = append(result.Changed, id)
		}
	}

	telemetry.SetAttributes(span, "changed", len(result.Changed), "failed", len(result.Failed))
	if err := errors.Join(errs...); err != nil {
		telemetry.RecordError(span, err)
		return result, err
	}
	return result, nil
}

// SetStock records the quantity a store holds of a product and refreshes the
// product's availability in the same transaction.
func (s *AvailabilityService) SetStock(ctx context.Context, productID, storeID uuid.UUID, quantity int) (*ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "availability", "set_stock",
		"product_id", productID.String(), "store_id", storeID.String(), "quantity", quantity)
	defer span.End()

	if _, err := s.storeRepo.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound.WithMessage("Store not found")
		}
		return nil, err
	}

	var updated *catalog.Product
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		item, err := catalog.NewStoreItem(productID, storeID, quantity)
		if err != nil {
			return err
		}
		if err := repos.StoreItemRepo().Upsert(ctx, item); err != nil {
			return err
		}
		if _, err := s.apply(ctx, repos, product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToProductResponse(updated)
	return &resp, nil
}

func (s *AvailabilityService) refreshOne(ctx context.Context, productID uuid.UUID) (bool, error) {
	var changed bool
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		changed, err = s.apply(ctx, repos, product)
		return err
	})
	return changed, err
}

// apply recomputes availability from the current stock rows and writes the
// product only when the flag flipped.
func (s *AvailabilityService) apply(ctx context.Context, repos TransactionalRepositories, product *catalog.Product) (bool, error) {
	items, err := repos.StoreItemRepo().ListByProduct(ctx, product.ID)
	if err != nil {
		return false, err
	}
	changed := product.RefreshAvailability(items, s.now())
	if changed {
		if err := repos.ProductRepo().Update(ctx, product); err != nil {
			return false, err
		}
	}
	s.metrics.RecordAvailabilityUpdate(ctx, changed)
	return changed, nil
}
