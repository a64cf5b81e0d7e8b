package account

import (
	"context"

	"github.com/shopcart/backend/internal/domain/account"
)

// TransactionScope provides transactional access to the account repositories.
// All repository operations inside Execute are committed or rolled back together.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the account repositories within a transaction.
// All repositories returned share the same underlying database transaction.
type TransactionalRepositories interface {
	// AccountRepo returns the account repository scoped to the current transaction
	AccountRepo() account.AccountRepository
	// TransactionRepo returns the append-only ledger repository scoped to the current transaction
	TransactionRepo() account.TransactionRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// This is useful for testing.
type NoOpTransactionScope struct {
	accountRepo     account.AccountRepository
	transactionRepo account.TransactionRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(accountRepo account.AccountRepository, transactionRepo account.TransactionRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{accountRepo: accountRepo, transactionRepo: transactionRepo}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// AccountRepo returns the account repository.
func (s *NoOpTransactionScope) AccountRepo() account.AccountRepository {
	return s.accountRepo
}

// TransactionRepo returns the transaction repository.
func (s *NoOpTransactionScope) TransactionRepo() account.TransactionRepository {
	return s.transactionRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
