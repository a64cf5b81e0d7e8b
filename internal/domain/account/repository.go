package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopcart/backend/internal/domain/shared"
)

// AccountRepository persists accounts
type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	// FindByIDForUpdate loads the account and row-locks it until the
	// surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByOwner(ctx context.Context, ownerType OwnerType, ownerID uuid.UUID) (*Account, error)
	Create(ctx context.Context, account *Account) error
	// Save writes the balance guarded by the version column and returns
	// shared.ErrConcurrencyConflict when the row moved on.
	Save(ctx context.Context, account *Account) error
	Count(ctx context.Context) (int64, error)
}

// TransactionRepository persists the append-only ledger
type TransactionRepository interface {
	Create(ctx context.Context, tx *Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]Transaction, int64, error)
}
