// Package account holds wallet balances and the transfer rule that moves
// money between them.
package account

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopcart/backend/internal/domain/shared"
)

// OwnerType identifies what kind of entity owns an account
type OwnerType uint8

const (
	// OwnerUser is a shopper's wallet
	OwnerUser OwnerType = iota + 1
	// OwnerStore is a store's settlement account
	OwnerStore
)

// String returns the string representation of OwnerType
func (t OwnerType) String() string {
	switch t {
	case OwnerUser:
		return "USER"
	case OwnerStore:
		return "STORE"
	}
	return fmt.Sprintf("OwnerType(%d)", uint8(t))
}

// IsValid returns true if the owner type is one of the declared variants
func (t OwnerType) IsValid() bool {
	switch t {
	case OwnerUser, OwnerStore:
		return true
	}
	return false
}

// ParseOwnerType converts the stored representation back into an OwnerType
func ParseOwnerType(s string) (OwnerType, error) {
	switch s {
	case "USER":
		return OwnerUser, nil
	case "STORE":
		return OwnerStore, nil
	}
	return 0, shared.ErrInvalidInput.WithMessage(fmt.Sprintf("unknown account owner type %q", s))
}

// Account holds the monetary balance of a user or a store.
// The balance is only changed through Transfer.
type Account struct {
	shared.VersionedEntity
	OwnerType OwnerType
	OwnerID   uuid.UUID
	Balance   decimal.Decimal
}

// NewAccount opens an account with an opening balance
func NewAccount(ownerType OwnerType, ownerID uuid.UUID, opening decimal.Decimal) (*Account, error) {
	if !ownerType.IsValid() {
		return nil, shared.ErrInvalidInput.WithMessage("invalid account owner type")
	}
	if ownerID == uuid.Nil {
		return nil, shared.ErrInvalidInput.WithMessage("account owner ID cannot be empty")
	}
	if opening.IsNegative() {
		return nil, shared.ErrInvalidInput.WithMessage("opening balance cannot be negative")
	}
	return &Account{
		VersionedEntity: shared.NewVersionedEntity(),
		OwnerType:       ownerType,
		OwnerID:         ownerID,
		Balance:         opening,
	}, nil
}

// CanCover reports whether the balance is at least amount
func (a *Account) CanCover(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}

func (a *Account) debit(amount decimal.Decimal, now time.Time) {
	a.Balance = a.Balance.Sub(amount)
	a.Touch(now)
}

func (a *Account) credit(amount decimal.Decimal, now time.Time) {
	a.Balance = a.Balance.Add(amount)
	a.Touch(now)
}
