package persistence

import (
	"context"

	"gorm.io/gorm"

	appaccount "github.com/shopcart/backend/internal/application/account"
	appcatalog "github.com/shopcart/backend/internal/application/catalog"
	"github.com/shopcart/backend/internal/application/seed"
	"github.com/shopcart/backend/internal/domain/account"
	"github.com/shopcart/backend/internal/domain/catalog"
	"github.com/shopcart/backend/internal/domain/identity"
	"github.com/shopcart/backend/internal/domain/location"
	"github.com/shopcart/backend/internal/domain/store"
)

// GormAccountTransactionScope implements the account TransactionScope using GORM transactions.
type GormAccountTransactionScope struct {
	db *gorm.DB
}

// NewGormAccountTransactionScope creates a new GormAccountTransactionScope.
func NewGormAccountTransactionScope(db *gorm.DB) *GormAccountTransactionScope {
	return &GormAccountTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back; otherwise it is committed.
func (s *GormAccountTransactionScope) Execute(ctx context.Context, fn func(repos appaccount.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormAccountRepositories{tx: tx})
	})
}

type gormAccountRepositories struct {
	tx *gorm.DB
}

// AccountRepo returns the account repository scoped to the current transaction.
func (r *gormAccountRepositories) AccountRepo() account.AccountRepository {
	return NewGormAccountRepository(r.tx)
}

// TransactionRepo returns the ledger repository scoped to the current transaction.
func (r *gormAccountRepositories) TransactionRepo() account.TransactionRepository {
	return NewGormTransactionRepository(r.tx)
}

// GormCatalogTransactionScope implements the catalog TransactionScope using GORM transactions.
type GormCatalogTransactionScope struct {
	db *gorm.DB
}

// NewGormCatalogTransactionScope creates a new GormCatalogTransactionScope.
func NewGormCatalogTransactionScope(db *gorm.DB) *GormCatalogTransactionScope {
	return &GormCatalogTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
func (s *GormCatalogTransactionScope) Execute(ctx context.Context, fn func(repos appcatalog.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCatalogRepositories{tx: tx})
	})
}

type gormCatalogRepositories struct {
	tx *gorm.DB
}

// ProductRepo returns the product repository scoped to the current transaction.
func (r *gormCatalogRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// StoreItemRepo returns the store item repository scoped to the current transaction.
func (r *gormCatalogRepositories) StoreItemRepo() catalog.StoreItemRepository {
	return NewGormStoreItemRepository(r.tx)
}

var (
	_ appaccount.TransactionScope          = (*GormAccountTransactionScope)(nil)
	_ appaccount.TransactionalRepositories = (*gormAccountRepositories)(nil)
	_ appcatalog.TransactionScope          = (*GormCatalogTransactionScope)(nil)
	_ appcatalog.TransactionalRepositories = (*gormCatalogRepositories)(nil)
)

// GormSeedScope implements the seed TransactionScope using GORM transactions.
type GormSeedScope struct {
	db *gorm.DB
}

// NewGormSeedScope creates a new GormSeedScope.
func NewGormSeedScope(db *gorm.DB) *GormSeedScope {
	return &GormSeedScope{db: db}
}

// Execute runs fn within a database transaction.
func (s *GormSeedScope) Execute(ctx context.Context, fn func(repos seed.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormSeedRepositories{tx: tx})
	})
}

type gormSeedRepositories struct {
	tx *gorm.DB
}

func (r *gormSeedRepositories) Locations() location.Repository {
	return NewGormLocationRepository(r.tx)
}

func (r *gormSeedRepositories) Addresses() location.AddressRepository {
	return NewGormAddressRepository(r.tx)
}

func (r *gormSeedRepositories) Users() identity.UserRepository {
	return NewGormUserRepository(r.tx)
}

func (r *gormSeedRepositories) Accounts() account.AccountRepository {
	return NewGormAccountRepository(r.tx)
}

func (r *gormSeedRepositories) Stores() store.Repository {
	return NewGormStoreRepository(r.tx)
}

func (r *gormSeedRepositories) Categories() catalog.CategoryRepository {
	return NewGormCategoryRepository(r.tx)
}

func (r *gormSeedRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormSeedRepositories) StoreItems() catalog.StoreItemRepository {
	return NewGormStoreItemRepository(r.tx)
}

var (
	_ seed.TransactionScope = (*GormSeedScope)(nil)
	_ seed.Repositories     = (*gormSeedRepositories)(nil)
)
