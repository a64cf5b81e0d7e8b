package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shopcart/backend/internal/domain/account"
	"github.com/shopcart/backend/internal/domain/shared"
)

func newTestAccount(t *testing.T, balance int64) *account.Account {
	t.Helper()
	a, err := account.NewAccount(account.OwnerUser, uuid.New(), decimal.NewFromInt(balance))
	require.NoError(t, err)
	return a
}

func TestGormAccountRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAccountRepository(db)
	ctx := context.Background()

	a := newTestAccount(t, 100)
	require.NoError(t, repo.Create(ctx, a))

	t.Run("finds by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, a.OwnerID, found.OwnerID)
		assert.Equal(t, account.OwnerUser, found.OwnerType)
		assert.True(t, found.Balance.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, 1, found.Version)
	})

	t.Run("finds by owner", func(t *testing.T) {
		found, err := repo.FindByOwner(ctx, account.OwnerUser, a.OwnerID)
		require.NoError(t, err)
		assert.Equal(t, a.ID, found.ID)
	})

	t.Run("owner lookup respects owner type", func(t *testing.T) {
		_, err := repo.FindByOwner(ctx, account.OwnerStore, a.OwnerID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("locking read works on sqlite", func(t *testing.T) {
		found, err := repo.FindByIDForUpdate(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, a.ID, found.ID)
	})

	t.Run("missing account is not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("second account for the same owner is rejected", func(t *testing.T) {
		dup, err := account.NewAccount(account.OwnerUser, a.OwnerID, decimal.Zero)
		require.NoError(t, err)
		err = repo.Create(ctx, dup)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("counts accounts", func(t *testing.T) {
		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}

func TestGormAccountRepository_Save(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAccountRepository(db)
	ctx := context.Background()

	a := newTestAccount(t, 100)
	require.NoError(t, repo.Create(ctx, a))

	t.Run("writes balance and bumps version", func(t *testing.T) {
		a.Balance = decimal.NewFromInt(75)
		a.Touch(time.Now().UTC())
		require.NoError(t, repo.Save(ctx, a))
		assert.Equal(t, 2, a.Version)

		found, err := repo.FindByID(ctx, a.ID)
		require.NoError(t, err)
		assert.True(t, found.Balance.Equal(decimal.NewFromInt(75)))
		assert.Equal(t, 2, found.Version)
	})

	t.Run("stale version is a concurrency conflict", func(t *testing.T) {
		stale, err := repo.FindByID(ctx, a.ID)
		require.NoError(t, err)

		a.Balance = decimal.NewFromInt(50)
		require.NoError(t, repo.Save(ctx, a))

		stale.Balance = decimal.NewFromInt(10)
		err = repo.Save(ctx, stale)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		found, err := repo.FindByID(ctx, a.ID)
		require.NoError(t, err)
		assert.True(t, found.Balance.Equal(decimal.NewFromInt(50)))
	})
}

func TestGormAccountRepository_FindByIDForUpdate_Postgres(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"}),
		&gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	repo := NewGormAccountRepository(gormDB)

	id := uuid.New()
	ownerID := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "version", "owner_type", "owner_id", "balance"}).
		AddRow(id.String(), now, now, 3, "STORE", ownerID.String(), "250.5000")

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1 .*FOR UPDATE`).
		WithArgs(id, 1).
		WillReturnRows(rows)

	found, err := repo.FindByIDForUpdate(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, account.OwnerStore, found.OwnerType)
	assert.Equal(t, 3, found.Version)
	assert.True(t, found.Balance.Equal(decimal.RequireFromString("250.5")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTransactionRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTransactionRepository(db)
	ctx := context.Background()

	mine := uuid.New()
	other := uuid.New()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		from, to := mine, other
		if i == 1 {
			from, to = other, mine
		}
		tx, err := account.NewTransaction(from, to, decimal.NewFromInt(int64(10*(i+1))), "entry", base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, tx))
		ids = append(ids, tx.ID)
	}
	unrelated, err := account.NewTransaction(other, uuid.New(), decimal.NewFromInt(1), "", base)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, unrelated))

	t.Run("finds by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, ids[0])
		require.NoError(t, err)
		assert.Equal(t, mine, found.FromAccountID)
		assert.True(t, found.Amount.Equal(decimal.NewFromInt(10)))
	})

	t.Run("lists both directions newest first", func(t *testing.T) {
		list, total, err := repo.ListByAccount(ctx, mine, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, list, 3)
		assert.Equal(t, ids[2], list[0].ID)
		assert.Equal(t, ids[0], list[2].ID)
	})

	t.Run("pages results", func(t *testing.T) {
		f := shared.Filter{Page: 2, PageSize: 2}
		list, total, err := repo.ListByAccount(ctx, mine, f)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, list, 1)
	})
}
