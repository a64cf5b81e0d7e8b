package account

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopcart/backend/internal/domain/shared"
)

// MaxDescriptionLength bounds the free-text description of a transaction
const MaxDescriptionLength = 500

// Direction tells whether a transaction added to or took from an account
type Direction uint8

const (
	// DirectionDebit means money left the account
	DirectionDebit Direction = iota + 1
	// DirectionCredit means money arrived in the account
	DirectionCredit
)

// String returns the string representation of Direction
func (d Direction) String() string {
	switch d {
	case DirectionDebit:
		return "DEBIT"
	case DirectionCredit:
		return "CREDIT"
	}
	return "UNKNOWN"
}

// Transaction is the immutable ledger entry written for every completed transfer.
// Corrections are made with new transactions, never by editing an old one.
type Transaction struct {
	ID            uuid.UUID
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	Amount        decimal.Decimal
	Description   string
	OccurredAt    time.Time
}

// NewTransaction validates and creates a ledger entry
func NewTransaction(from, to uuid.UUID, amount decimal.Decimal, description string, at time.Time) (*Transaction, error) {
	if from == uuid.Nil || to == uuid.Nil {
		return nil, shared.ErrInvalidInput.WithMessage("account IDs cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.ErrInvalidInput.WithMessage("amount must be positive")
	}
	description = strings.TrimSpace(description)
	if len(description) > MaxDescriptionLength {
		return nil, shared.ErrInvalidInput.WithMessage("description cannot exceed 500 characters")
	}
	return &Transaction{
		ID:            uuid.New(),
		FromAccountID: from,
		ToAccountID:   to,
		Amount:        amount,
		Description:   description,
		OccurredAt:    at.UTC(),
	}, nil
}

// DirectionFor returns how the transaction affected accountID
func (t *Transaction) DirectionFor(accountID uuid.UUID) Direction {
	if t.FromAccountID == accountID {
		return DirectionDebit
	}
	return DirectionCredit
}

// SignedAmountFor returns the amount negated for the paying side
func (t *Transaction) SignedAmountFor(accountID uuid.UUID) decimal.Decimal {
	if t.DirectionFor(accountID) == DirectionDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}
