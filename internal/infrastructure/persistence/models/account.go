package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopcart/backend/internal/domain/account"
)

// AccountModel is the persistence model for the Account entity.
type AccountModel struct {
	AggregateModel
	OwnerType string          `gorm:"type:varchar(10);not null;uniqueIndex:idx_accounts_owner,priority:1"`
	OwnerID   uuid.UUID       `gorm:"size:36;not null;uniqueIndex:idx_accounts_owner,priority:2"`
	Balance   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account entity.
func (m *AccountModel) ToDomain() (*account.Account, error) {
	ownerType, err := account.ParseOwnerType(m.OwnerType)
	if err != nil {
		return nil, err
	}
	return &account.Account{
		VersionedEntity: m.ToVersioned(),
		OwnerType:       ownerType,
		OwnerID:         m.OwnerID,
		Balance:         m.Balance,
	}, nil
}

// FromDomain populates the persistence model from a domain Account entity.
func (m *AccountModel) FromDomain(a *account.Account) {
	m.FromDomainVersioned(a.VersionedEntity)
	m.OwnerType = a.OwnerType.String()
	m.OwnerID = a.OwnerID
	m.Balance = a.Balance
}

// AccountModelFromDomain creates a new persistence model from a domain Account entity.
func AccountModelFromDomain(a *account.Account) *AccountModel {
	m := &AccountModel{}
	m.FromDomain(a)
	return m
}

// TransactionModel is the persistence model for a ledger Transaction.
// Rows are only ever inserted.
type TransactionModel struct {
	ID            uuid.UUID       `gorm:"size:36;primaryKey"`
	FromAccountID uuid.UUID       `gorm:"size:36;not null;index:idx_account_tx_from"`
	ToAccountID   uuid.UUID       `gorm:"size:36;not null;index:idx_account_tx_to"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Description   string          `gorm:"type:varchar(500)"`
	OccurredAt    time.Time       `gorm:"not null;index:idx_account_tx_time"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "account_transactions"
}

// ToDomain converts the persistence model to a domain Transaction.
func (m *TransactionModel) ToDomain() *account.Transaction {
	return &account.Transaction{
		ID:            m.ID,
		FromAccountID: m.FromAccountID,
		ToAccountID:   m.ToAccountID,
		Amount:        m.Amount,
		Description:   m.Description,
		OccurredAt:    m.OccurredAt,
	}
}

// TransactionModelFromDomain creates a new persistence model from a domain Transaction.
func TransactionModelFromDomain(t *account.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:            t.ID,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		Amount:        t.Amount,
		Description:   t.Description,
		OccurredAt:    t.OccurredAt,
	}
}
