package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopcart/backend/internal/domain/account"
)

// TransferRequest represents a request to move money between two accounts
type TransferRequest struct {
	FromAccountID uuid.UUID       `json:"from_account_id" binding:"required"`
	ToAccountID   uuid.UUID       `json:"to_account_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Description   string          `json:"description" binding:"max=500"`

	// IdempotencyKey is taken from the Idempotency-Key header, not the body
	IdempotencyKey string `json:"-"`
	// RequestedBy is the authenticated caller. When set and not an admin,
	// the source account must belong to that user.
	RequestedBy *uuid.UUID `json:"-"`
	IsAdmin     bool       `json:"-"`
}

// TransactionResponse represents a ledger entry in API responses
type TransactionResponse struct {
	ID            uuid.UUID       `json:"id"`
	FromAccountID uuid.UUID       `json:"from_account_id"`
	ToAccountID   uuid.UUID       `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	OccurredAt    time.Time       `json:"occurred_at"`
	// Direction is only filled when listing the transactions of one account
	Direction string `json:"direction,omitempty"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID        uuid.UUID       `json:"id"`
	OwnerType string          `json:"owner_type"`
	OwnerID   uuid.UUID       `json:"owner_id"`
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToTransactionResponse converts a ledger entry to its response form
func ToTransactionResponse(tx *account.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            tx.ID,
		FromAccountID: tx.FromAccountID,
		ToAccountID:   tx.ToAccountID,
		Amount:        tx.Amount,
		Description:   tx.Description,
		OccurredAt:    tx.OccurredAt,
	}
}

// ToAccountResponse converts an account to its response form
func ToAccountResponse(a *account.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		OwnerType: a.OwnerType.String(),
		OwnerID:   a.OwnerID,
		Balance:   a.Balance,
		UpdatedAt: a.UpdatedAt,
	}
}
