package account

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopcart/backend/internal/domain/account"
	"github.com/shopcart/backend/internal/domain/shared"
	"github.com/shopcart/backend/internal/infrastructure/logger"
	"github.com/shopcart/backend/internal/infrastructure/telemetry"
)

const idempotencyKeyPrefix = "transfer:"

// ErrDuplicateTransfer is returned when an idempotency key is replayed
var ErrDuplicateTransfer = shared.ErrAlreadyExists.WithMessage("transfer with this idempotency key was already processed")

// TransferService executes balance transfers between accounts.
//
// Both accounts are row-locked in ID order inside one database transaction,
// so two transfers touching the same pair of accounts never interleave and a
// failure at any step leaves both balances untouched.
type TransferService struct {
	txScope        TransactionScope
	idempotency    shared.IdempotencyStore
	idempotencyCfg shared.IdempotencyConfig
	metrics        *telemetry.ShopMetrics
	now            func() time.Time
}

// NewTransferService creates a new TransferService.
// idempotency and metrics may be nil.
func NewTransferService(
	txScope TransactionScope,
	idempotency shared.IdempotencyStore,
	idempotencyCfg shared.IdempotencyConfig,
	metrics *telemetry.ShopMetrics,
) *TransferService {
	return &TransferService{
		txScope:        txScope,
		idempotency:    idempotency,
		idempotencyCfg: idempotencyCfg,
		metrics:        metrics,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Transfer moves req.Amount from one account to another and returns the
// ledger entry it wrote.
func (s *TransferService) Transfer(ctx context.Context, req TransferRequest) (*TransactionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "transfer", "execute",
		"from_account_id", req.FromAccountID.String(),
		"to_account_id", req.ToAccountID.String(),
		"amount", req.Amount.String(),
	)
	defer span.End()

	start := time.Now()
	tx, err := s.execute(ctx, req)
	s.metrics.RecordTransfer(ctx, req.Amount, time.Since(start), err)

	if err != nil {
		telemetry.RecordError(span, err)
		logger.L(ctx).Warn("Transfer rejected",
			zap.String("from_account_id", req.FromAccountID.String()),
			zap.String("to_account_id", req.ToAccountID.String()),
			zap.String("amount", req.Amount.String()),
			zap.Error(err),
		)
		return nil, err
	}

	telemetry.SetAttributes(span, "transaction_id", tx.ID.String())
	logger.L(ctx).Info("Transfer committed",
		zap.String("transaction_id", tx.ID.String()),
		zap.String("from_account_id", tx.FromAccountID.String()),
		zap.String("to_account_id", tx.ToAccountID.String()),
		zap.String("amount", tx.Amount.String()),
	)
	resp := ToTransactionResponse(tx)
	return &resp, nil
}

func (s *TransferService) execute(ctx context.Context, req TransferRequest) (*account.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, shared.ErrInvalidInput.WithMessage("amount must be positive")
	}
	if req.FromAccountID == req.ToAccountID {
		return nil, account.ErrSelfTransfer
	}

	release, err := s.claimIdempotencyKey(ctx, req)
	if err != nil {
		return nil, err
	}

	var result *account.Transaction
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		from, to, err := lockPair(ctx, repos.AccountRepo(), req.FromAccountID, req.ToAccountID)
		if err != nil {
			return err
		}
		if err := checkOwnership(from, req); err != nil {
			return err
		}

		tx, err := account.Transfer(from, to, req.Amount, req.Description, s.now())
		if err != nil {
			return err
		}
		if err := repos.AccountRepo().Save(ctx, from); err != nil {
			return fmt.Errorf("save source account: %w", err)
		}
		if err := repos.AccountRepo().Save(ctx, to); err != nil {
			return fmt.Errorf("save destination account: %w", err)
		}
		if err := repos.TransactionRepo().Create(ctx, tx); err != nil {
			return fmt.Errorf("record transaction: %w", err)
		}
		result = tx
		return nil
	})
	if err != nil {
		release()
		return nil, err
	}
	return result, nil
}

// idempotencyStoreKey scopes the client key to the caller, or to the source
// account when the request carries no caller.
func idempotencyStoreKey(req TransferRequest) string {
	owner := req.FromAccountID.String()
	if req.RequestedBy != nil {
		owner = req.RequestedBy.String()
	}
	return idempotencyKeyPrefix + owner + ":" + req.IdempotencyKey
}

// claimIdempotencyKey marks the request's key as used. The returned release
// func forgets the key again so a failed transfer can be retried with it.
func (s *TransferService) claimIdempotencyKey(ctx context.Context, req TransferRequest) (func(), error) {
	noop := func() {}
	key := req.IdempotencyKey
	if key == "" || s.idempotency == nil || !s.idempotencyCfg.Enabled {
		return noop, nil
	}

	storeKey := idempotencyStoreKey(req)
	fresh, err := s.idempotency.MarkProcessed(ctx, storeKey, s.idempotencyCfg.TTL)
	if err != nil {
		return noop, shared.ErrUpstreamFailure.WithMessage("idempotency store unavailable").Wrap(err)
	}
	if !fresh {
		return noop, ErrDuplicateTransfer
	}
	return func() {
		if err := s.idempotency.Forget(context.WithoutCancel(ctx), storeKey); err != nil {
			logger.L(ctx).Warn("Failed to release idempotency key",
				zap.String("key", key), zap.Error(err))
		}
	}, nil
}

// lockPair loads both accounts FOR UPDATE, always locking the lower ID first
// so concurrent transfers in opposite directions cannot deadlock.
func lockPair(ctx context.Context, repo account.AccountRepository, fromID, toID uuid.UUID) (*account.Account, *account.Account, error) {
	first, second := fromID, toID
	if bytes.Compare(first[:], second[:]) > 0 {
		first, second = second, first
	}

	a, err := lockOne(ctx, repo, first)
	if err != nil {
		return nil, nil, err
	}
	b, err := lockOne(ctx, repo, second)
	if err != nil {
		return nil, nil, err
	}
	if a.ID == fromID {
		return a, b, nil
	}
	return b, a, nil
}

func lockOne(ctx context.Context, repo account.AccountRepository, id uuid.UUID) (*account.Account, error) {
	acc, err := repo.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound.WithMessage(fmt.Sprintf("account %s not found", id))
		}
		return nil, err
	}
	return acc, nil
}

func checkOwnership(from *account.Account, req TransferRequest) error {
	if req.RequestedBy == nil || req.IsAdmin {
		return nil
	}
	if from.OwnerType != account.OwnerUser || from.OwnerID != *req.RequestedBy {
		return shared.ErrForbidden.WithMessage("source account does not belong to the caller")
	}
	return nil
}
