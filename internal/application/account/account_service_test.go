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
)

func TestAccountService_GetForUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("returns the user's wallet", func(t *testing.T) {
		repo := new(MockAccountRepository)
		acc := userAccount(t, userID, 100000)
		repo.On("FindByOwner", ctx, account.OwnerUser, userID).Return(acc, nil)

		svc := NewAccountService(repo, new(MockTransactionRepository))
		resp, err := svc.GetForUser(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, acc.ID, resp.ID)
		assert.Equal(t, "USER", resp.OwnerType)
		assert.True(t, resp.Balance.Equal(decimal.NewFromInt(100000)))
	})

	t.Run("missing wallet is not found", func(t *testing.T) {
		repo := new(MockAccountRepository)
		repo.On("FindByOwner", ctx, account.OwnerUser, userID).Return(nil, shared.ErrNotFound)

		_, err := NewAccountService(repo, nil).GetForUser(ctx, userID)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("anonymous caller is unauthorized", func(t *testing.T) {
		_, err := NewAccountService(new(MockAccountRepository), nil).GetForUser(ctx, uuid.Nil)
		assert.True(t, errors.Is(err, shared.ErrUnauthorized))
	})
}

func TestAccountService_ListTransactionsForUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	acc := userAccount(t, userID, 10)
	other := uuid.New()
	now := time.Now().UTC()

	outgoing, err := account.NewTransaction(acc.ID, other, decimal.NewFromInt(3), "out", now)
	require.NoError(t, err)
	incoming, err := account.NewTransaction(other, acc.ID, decimal.NewFromInt(7), "in", now.Add(-time.Minute))
	require.NoError(t, err)

	accounts := new(MockAccountRepository)
	accounts.On("FindByOwner", ctx, account.OwnerUser, userID).Return(acc, nil)
	txs := new(MockTransactionRepository)
	txs.On("ListByAccount", ctx, acc.ID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20
	})).Return([]account.Transaction{*outgoing, *incoming}, int64(2), nil)

	page, err := NewAccountService(accounts, txs).ListTransactionsForUser(ctx, userID, shared.Filter{})
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.Equal(t, "DEBIT", page.Items[0].Direction)
	assert.Equal(t, "CREDIT", page.Items[1].Direction)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 1, page.TotalPages)
}
