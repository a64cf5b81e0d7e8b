package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shopcart/backend/internal/domain/account"
	"github.com/shopcart/backend/internal/domain/shared"
	"github.com/shopcart/backend/internal/infrastructure/cache"
)

type transferFixture struct {
	accounts     *MockAccountRepository
	transactions *MockTransactionRepository
	idempotency  *MockIdempotencyStore
	service      *TransferService
	now          time.Time
}

func newTransferFixture(t *testing.T) *transferFixture {
	t.Helper()
	f := &transferFixture{
		accounts:     new(MockAccountRepository),
		transactions: new(MockTransactionRepository),
		idempotency:  new(MockIdempotencyStore),
		now:          time.Date(2025, 4, 13, 9, 59, 1, 0, time.UTC),
	}
	scope := NewNoOpTransactionScope(f.accounts, f.transactions)
	f.service = NewTransferService(scope, f.idempotency, shared.IdempotencyConfig{Enabled: true, TTL: time.Hour}, nil)
	f.service.now = func() time.Time { return f.now }
	return f
}

func userAccount(t *testing.T, owner uuid.UUID, balance int64) *account.Account {
	t.Helper()
	acc, err := account.NewAccount(account.OwnerUser, owner, decimal.NewFromInt(balance))
	require.NoError(t, err)
	return acc
}

func TestTransferService_Transfer(t *testing.T) {
	ctx := context.Background()

	t.Run("debits, credits and records the transaction", func(t *testing.T) {
		f := newTransferFixture(t)
		from := userAccount(t, uuid.New(), 100)
		to := userAccount(t, uuid.New(), 10)

		f.accounts.On("FindByIDForUpdate", mock.Anything, from.ID).Return(from, nil)
		f.accounts.On("FindByIDForUpdate", mock.Anything, to.ID).Return(to, nil)
		f.accounts.On("Save", mock.Anything, from).Return(nil)
		f.accounts.On("Save", mock.Anything, to).Return(nil)
		f.transactions.On("Create", mock.Anything, mock.MatchedBy(func(tx *account.Transaction) bool {
			return tx.FromAccountID == from.ID && tx.ToAccountID == to.ID && tx.Amount.Equal(decimal.NewFromInt(50))
		})).Return(nil)

		resp, err := f.service.Transfer(ctx, TransferRequest{
			FromAccountID: from.ID,
			ToAccountID:   to.ID,
			Amount:        decimal.NewFromInt(50),
			Description:   "order#1",
		})
		require.NoError(t, err)

		assert.Equal(t, "order#1", resp.Description)
		assert.Equal(t, f.now, resp.OccurredAt)
		assert.True(t, from.Balance.Equal(decimal.NewFromInt(50)))
		assert.True(t, to.Balance.Equal(decimal.NewFromInt(60)))
		f.accounts.AssertExpectations(t)
		f.transactions.AssertExpectations(t)
	})

	t.Run("insufficient funds writes nothing", func(t *testing.T) {
		f := newTransferFixture(t)
		from := userAccount(t, uuid.New(), 50)
		to := userAccount(t, uuid.New(), 60)

		f.accounts.On("FindByIDForUpdate", mock.Anything, from.ID).Return(from, nil)
		f.accounts.On("FindByIDForUpdate", mock.Anything, to.ID).Return(to, nil)

		_, err := f.service.Transfer(ctx, TransferRequest{
			FromAccountID: from.ID,
			ToAccountID:   to.ID,
			Amount:        decimal.NewFromInt(1000),
		})
		assert.True(t, errors.Is(err, shared.ErrInsufficientFunds))
		f.accounts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown account is not found", func(t *testing.T) {
		f := newTransferFixture(t)
		from := userAccount(t, uuid.New(), 50)
		missing := uuid.New()

		f.accounts.On("FindByIDForUpdate", mock.Anything, from.ID).Return(from, nil).Maybe()
		f.accounts.On("FindByIDForUpdate", mock.Anything, missing).Return(nil, shared.ErrNotFound)

		_, err := f.service.Transfer(ctx, TransferRequest{
			FromAccountID: from.ID,
			ToAccountID:   missing,
			Amount:        decimal.NewFromInt(10),
		})
		assert.True(t, errors.Is(err, shared.ErrNotFound))
		assert.Contains(t, err.Error(), missing.String())
	})

	t.Run("rejects non-positive amount before touching storage", func(t *testing.T) {
		f := newTransferFixture(t)

		_, err := f.service.Transfer(ctx, TransferRequest{
			FromAccountID: uuid.New(),
			ToAccountID:   uuid.New(),
			Amount:        decimal.Zero,
		})
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		f.accounts.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything)
	})

	t.Run("rejects self transfer", func(t *testing.T) {
		f := newTransferFixture(t)
		id := uuid.New()

		_, err := f.service.Transfer(ctx, TransferRequest{FromAccountID: id, ToAccountID: id, Amount: decimal.NewFromInt(1)})
		assert.ErrorIs(t, err, account.ErrSelfTransfer)
	})

	t.Run("locks accounts in id order", func(t *testing.T) {
		f := newTransferFixture(t)
		a := userAccount(t, uuid.New(), 100)
		b := userAccount(t, uuid.New(), 100)
		low, high := a, b
		if low.ID.String() > high.ID.String() {
			low, high = high, low
		}

		var order []uuid.UUID
		record := func(args mock.Arguments) { order = append(order, args.Get(1).(uuid.UUID)) }
		f.accounts.On("FindByIDForUpdate", mock.Anything, low.ID).Run(record).Return(low, nil)
		f.accounts.On("FindByIDForUpdate", mock.Anything, high.ID).Run(record).Return(high, nil)
		f.accounts.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.transactions.On("Create", mock.Anything, mock.Anything).Return(nil)

		_, err := f.service.Transfer(ctx, TransferRequest{FromAccountID: high.ID, ToAccountID: low.ID, Amount: decimal.NewFromInt(1)})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{low.ID, high.ID}, order)
		assert.True(t, high.Balance.Equal(decimal.NewFromInt(99)))
	})

	t.Run("caller must own the source account", func(t *testing.T) {
		f := newTransferFixture(t)
		from := userAccount(t, uuid.New(), 100)
		to := userAccount(t, uuid.New(), 0)
		stranger := uuid.New()

		f.accounts.On("FindByIDForUpdate", mock.Anything, from.ID).Return(from, nil)
		f.accounts.On("FindByIDForUpdate", mock.Anything, to.ID).Return(to, nil)

		_, err := f.service.Transfer(ctx, TransferRequest{
			FromAccountID: from.ID,
			ToAccountID:   to.ID,
			Amount:        decimal.NewFromInt(1),
			RequestedBy:   &stranger,
		})
		assert.True(t, errors.Is(err, shared.ErrForbidden))
		assert.True(t, from.Balance.Equal(decimal.NewFromInt(100)))
	})

	t.Run("failed save surfaces the error", func(t *testing.T) {
		f := newTransferFixture(t)
		from := userAccount(t, uuid.New(), 100)
		to := userAccount(t, uuid.New(), 0)

		f.accounts.On("FindByIDForUpdate", mock.Anything, from.ID).Return(from, nil)
		f.accounts.On("FindByIDForUpdate", mock.Anything, to.ID).Return(to, nil)
		f.accounts.On("Save", mock.Anything, from).Return(shared.ErrConcurrencyConflict)

		_, err := f.service.Transfer(ctx, TransferRequest{FromAccountID: from.ID, ToAccountID: to.ID, Amount: decimal.NewFromInt(1)})
		assert.True(t, errors.Is(err, shared.ErrConcurrencyConflict))
		f.transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestTransferService_IdempotencyKey(t *testing.T) {
	ctx := context.Background()

	t.Run("replayed key is rejected", func(t *testing.T) {
		f := newTransferFixture(t)
		fromID := uuid.New()
		f.idempotency.On("MarkProcessed", mock.Anything, "transfer:"+fromID.String()+":abc", time.Hour).Return(false, nil)

		_, err := f.service.Transfer(ctx, TransferRequest{
			FromAccountID:  fromID,
			ToAccountID:    uuid.New(),
			Amount:         decimal.NewFromInt(1),
			IdempotencyKey: "abc",
		})
		assert.ErrorIs(t, err, ErrDuplicateTransfer)
		assert.True(t, errors.Is(err, shared.ErrAlreadyExists))
		f.accounts.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything)
	})

	t.Run("failed transfer releases the key", func(t *testing.T) {
		f := newTransferFixture(t)
		from := userAccount(t, uuid.New(), 1)
		to := userAccount(t, uuid.New(), 0)

		key := "transfer:" + from.ID.String() + ":retry-me"
		f.idempotency.On("MarkProcessed", mock.Anything, key, time.Hour).Return(true, nil)
		f.idempotency.On("Forget", mock.Anything, key).Return(nil)
		f.accounts.On("FindByIDForUpdate", mock.Anything, from.ID).Return(from, nil)
		f.accounts.On("FindByIDForUpdate", mock.Anything, to.ID).Return(to, nil)

		_, err := f.service.Transfer(ctx, TransferRequest{
			FromAccountID:  from.ID,
			ToAccountID:    to.ID,
			Amount:         decimal.NewFromInt(5),
			IdempotencyKey: "retry-me",
		})
		assert.True(t, errors.Is(err, shared.ErrInsufficientFunds))
		f.idempotency.AssertExpectations(t)
	})

	t.Run("store outage is an upstream failure", func(t *testing.T) {
		f := newTransferFixture(t)
		fromID := uuid.New()
		f.idempotency.On("MarkProcessed", mock.Anything, "transfer:"+fromID.String()+":k", time.Hour).Return(false, errors.New("connection refused"))

		_, err := f.service.Transfer(ctx, TransferRequest{
			FromAccountID:  fromID,
			ToAccountID:    uuid.New(),
			Amount:         decimal.NewFromInt(1),
			IdempotencyKey: "k",
		})
		assert.True(t, errors.Is(err, shared.ErrUpstreamFailure))
	})

	t.Run("keys are scoped to the caller", func(t *testing.T) {
		f := newTransferFixture(t)
		store := cache.NewInMemoryIdempotencyStore()
		t.Cleanup(func() { _ = store.Close() })
		f.service.idempotency = store

		userA, userB := uuid.New(), uuid.New()
		accA, accB := userAccount(t, userA, 100), userAccount(t, userB, 100)
		f.accounts.On("FindByIDForUpdate", mock.Anything, accA.ID).Return(accA, nil)
		f.accounts.On("FindByIDForUpdate", mock.Anything, accB.ID).Return(accB, nil)
		f.accounts.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.transactions.On("Create", mock.Anything, mock.Anything).Return(nil)

		_, err := f.service.Transfer(ctx, TransferRequest{
			FromAccountID: accA.ID, ToAccountID: accB.ID, Amount: decimal.NewFromInt(5),
			IdempotencyKey: "1", RequestedBy: &userA,
		})
		require.NoError(t, err)

		_, err = f.service.Transfer(ctx, TransferRequest{
			FromAccountID: accB.ID, ToAccountID: accA.ID, Amount: decimal.NewFromInt(5),
			IdempotencyKey: "1", RequestedBy: &userB,
		})
		require.NoError(t, err, "another caller's key must not collide")

		_, err = f.service.Transfer(ctx, TransferRequest{
			FromAccountID: accA.ID, ToAccountID: accB.ID, Amount: decimal.NewFromInt(5),
			IdempotencyKey: "1", RequestedBy: &userA,
		})
		assert.ErrorIs(t, err, ErrDuplicateTransfer)
		assert.True(t, accA.Balance.Equal(decimal.NewFromInt(100)))
		assert.True(t, accB.Balance.Equal(decimal.NewFromInt(100)))
	})

	t.Run("disabled config ignores the key", func(t *testing.T) {
		f := newTransferFixture(t)
		f.service.idempotencyCfg.Enabled = false
		from := userAccount(t, uuid.New(), 10)
		to := userAccount(t, uuid.New(), 0)

		f.accounts.On("FindByIDForUpdate", mock.Anything, from.ID).Return(from, nil)
		f.accounts.On("FindByIDForUpdate", mock.Anything, to.ID).Return(to, nil)
		f.accounts.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.transactions.On("Create", mock.Anything, mock.Anything).Return(nil)

		_, err := f.service.Transfer(ctx, TransferRequest{
			FromAccountID:  from.ID,
			ToAccountID:    to.ID,
			Amount:         decimal.NewFromInt(1),
			IdempotencyKey: "ignored",
		})
		require.NoError(t, err)
		f.idempotency.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything, mock.Anything)
	})
}
