package catalog

import (
	"context"

	"github.com/shopcart/backend/internal/domain/catalog"
)

// TransactionScope provides transactional access to the catalog repositories.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the catalog repositories within a transaction.
type TransactionalRepositories interface {
	ProductRepo() catalog.ProductRepository
	StoreItemRepo() catalog.StoreItemRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// This is useful for testing.
type NoOpTransactionScope struct {
	productRepo   catalog.ProductRepository
	storeItemRepo catalog.StoreItemRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(productRepo catalog.ProductRepository, storeItemRepo catalog.StoreItemRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{productRepo: productRepo, storeItemRepo: storeItemRepo}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// StoreItemRepo returns the store item repository.
func (s *NoOpTransactionScope) StoreItemRepo() catalog.StoreItemRepository {
	return s.storeItemRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
