package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appaccount "github.com/shopcart/backend/internal/application/account"
)

func TestGormAccountTransactionScope(t *testing.T) {
	db := setupTestDB(t)
	accounts := NewGormAccountRepository(db)
	scope := NewGormAccountTransactionScope(db)
	ctx := context.Background()

	a := newTestAccount(t, 100)
	require.NoError(t, accounts.Create(ctx, a))

	t.Run("commits on success", func(t *testing.T) {
		err := scope.Execute(ctx, func(repos appaccount.TransactionalRepositories) error {
			locked, err := repos.AccountRepo().FindByIDForUpdate(ctx, a.ID)
			if err != nil {
				return err
			}
			locked.Balance = decimal.NewFromInt(90)
			return repos.AccountRepo().Save(ctx, locked)
		})
		require.NoError(t, err)

		found, err := accounts.FindByID(ctx, a.ID)
		require.NoError(t, err)
		assert.True(t, found.Balance.Equal(decimal.NewFromInt(90)))
	})

	t.Run("rolls back on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := scope.Execute(ctx, func(repos appaccount.TransactionalRepositories) error {
			locked, err := repos.AccountRepo().FindByIDForUpdate(ctx, a.ID)
			if err != nil {
				return err
			}
			locked.Balance = decimal.Zero
			if err := repos.AccountRepo().Save(ctx, locked); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		found, err := accounts.FindByID(ctx, a.ID)
		require.NoError(t, err)
		assert.True(t, found.Balance.Equal(decimal.NewFromInt(90)))
	})
}
