package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"

	"github.com/shopcart/backend/internal/domain/shared"
)

// ErrMeterNil is returned when an instrument set is built without a meter
var ErrMeterNil = errors.New("meter cannot be nil")

// Transfer outcomes as reported on shop_transfers_total
const (
	OutcomeSuccess           = "success"
	OutcomeNotFound          = "not_found"
	OutcomeInsufficientFunds = "insufficient_funds"
	OutcomeInvalid           = "invalid"
	OutcomeDuplicate         = "duplicate"
	OutcomeError             = "error"
)

// ShopMetrics holds the business instruments of the shop.
// A nil *ShopMetrics is valid and records nothing.
type ShopMetrics struct {
	transfersTotal      *Counter
	transferAmount      *Histogram
	transferDuration    *Histogram
	availabilityUpdates *Counter
	favoriteChanges     *Counter
}

// NewShopMetrics registers the shop instruments on meter.
func NewShopMetrics(meter metric.Meter) (*ShopMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	m := &ShopMetrics{}
	var err error

	if m.transfersTotal, err = NewCounter(meter, "shop_transfers_total",
		"Transfers attempted, by outcome", "{transfer}"); err != nil {
		return nil, err
	}
	if m.transferAmount, err = NewHistogram(meter, HistogramOpts{
		Name:        "shop_transfer_amount",
		Description: "Amount moved by successful transfers",
		Unit:        "{currency}",
		Boundaries:  AmountBuckets,
	}); err != nil {
		return nil, err
	}
	if m.transferDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "shop_transfer_duration_seconds",
		Description: "Time spent inside the transfer transaction",
		Unit:        "s",
		Boundaries:  HTTPDurationBuckets,
	}); err != nil {
		return nil, err
	}
	if m.availabilityUpdates, err = NewCounter(meter, "shop_availability_updates_total",
		"Products whose availability was recomputed", "{product}"); err != nil {
		return nil, err
	}
	if m.favoriteChanges, err = NewCounter(meter, "shop_favorite_changes_total",
		"Favorites added or removed", "{favorite}"); err != nil {
		return nil, err
	}
	return m, nil
}

// TransferOutcome classifies a transfer error for the outcome label
func TransferOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, shared.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, shared.ErrInsufficientFunds):
		return OutcomeInsufficientFunds
	case errors.Is(err, shared.ErrInvalidInput):
		return OutcomeInvalid
	case errors.Is(err, shared.ErrAlreadyExists):
		return OutcomeDuplicate
	}
	return OutcomeError
}

// RecordTransfer counts one transfer attempt and, on success, its amount.
func (m *ShopMetrics) RecordTransfer(ctx context.Context, amount decimal.Decimal, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := TransferOutcome(err)
	m.transfersTotal.Inc(ctx, AttrOutcome.String(outcome))
	m.transferDuration.RecordDuration(ctx, elapsed, AttrOutcome.String(outcome))
	if err == nil {
		m.transferAmount.Record(ctx, amount.InexactFloat64())
	}
}

// RecordAvailabilityUpdate counts one product whose availability was recomputed.
func (m *ShopMetrics) RecordAvailabilityUpdate(ctx context.Context, changed bool) {
	if m == nil {
		return
	}
	m.availabilityUpdates.Inc(ctx, AttrChanged.Bool(changed))
}

// RecordFavoriteChange counts an add or remove of a favorite.
func (m *ShopMetrics) RecordFavoriteChange(ctx context.Context, action string) {
	if m == nil {
		return
	}
	m.favoriteChanges.Inc(ctx, AttrAction.String(action))
}
