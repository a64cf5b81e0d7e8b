package account

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/shopcart/backend/internal/domain/account"
	"github.com/shopcart/backend/internal/domain/shared"
)

// AccountService serves read access to accounts and their ledger
type AccountService struct {
	accountRepo     account.AccountRepository
	transactionRepo account.TransactionRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo account.AccountRepository, transactionRepo account.TransactionRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo, transactionRepo: transactionRepo}
}

// GetForUser returns the wallet of a user
func (s *AccountService) GetForUser(ctx context.Context, userID uuid.UUID) (*AccountResponse, error) {
	acc, err := s.findForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToAccountResponse(acc)
	return &resp, nil
}

// ListTransactionsForUser returns the user's ledger entries, newest first
func (s *AccountService) ListTransactionsForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[TransactionResponse], error) {
	acc, err := s.findForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	filter = filter.Normalize()
	txs, total, err := s.transactionRepo.ListByAccount(ctx, acc.ID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]TransactionResponse, 0, len(txs))
	for i := range txs {
		resp := ToTransactionResponse(&txs[i])
		resp.Direction = txs[i].DirectionFor(acc.ID).String()
		items = append(items, resp)
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

func (s *AccountService) findForUser(ctx context.Context, userID uuid.UUID) (*account.Account, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	acc, err := s.accountRepo.FindByOwner(ctx, account.OwnerUser, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound.WithMessage("account not found")
		}
		return nil, err
	}
	return acc, nil
}
