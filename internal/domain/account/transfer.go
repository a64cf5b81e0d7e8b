package account

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopcart/backend/internal/domain/shared"
)

// ErrSelfTransfer is returned when source and destination are the same account
var ErrSelfTransfer = shared.ErrInvalidInput.WithMessage("cannot transfer to the same account")

// Transfer moves amount from one account to the other and returns the ledger
// entry describing it. Nothing is mutated unless every check passes.
// Persisting both accounts and the transaction is the caller's job and must
// happen in a single database transaction.
func Transfer(from, to *Account, amount decimal.Decimal, description string, now time.Time) (*Transaction, error) {
	if from == nil || to == nil {
		return nil, shared.ErrNotFound.WithMessage("account not found")
	}
	if from.ID == to.ID {
		return nil, ErrSelfTransfer
	}
	tx, err := NewTransaction(from.ID, to.ID, amount, description, now)
	if err != nil {
		return nil, err
	}
	if !from.CanCover(amount) {
		return nil, shared.ErrInsufficientFunds
	}

	from.debit(amount, tx.OccurredAt)
	to.credit(amount, tx.OccurredAt)
	return tx, nil
}
