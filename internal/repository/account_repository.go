package repository

import (
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"smartbank/internal/domain"
	"smartbank/internal/errors"
)

type accountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	logger   *slog.Logger
}

func NewAccountRepository(logger *slog.Logger) domain.AccountRepository {
	return newAccountRepository(logger)
}

func newAccountRepository(logger *slog.Logger) *accountRepository {
	return &accountRepository{
		accounts: make(map[string]*domain.Account),
		logger:   logger,
	}
}

func (r *accountRepository) CreateAccount(account *domain.Account) error {
	if account.Balance.IsNegative() {
		r.logger.Warn("Negative initial balance rejected", "account_id", account.ID, "balance", account.Balance)
		return errors.ErrInvalidAmount
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID]; ok {
		r.logger.Warn("Duplicate account creation attempt", "account_id", account.ID)
		return errors.ErrDuplicateAccount
	}

	stored := *account
	if stored.Type == "" {
		stored.Type = domain.AccountTypeSavings
	}
	if stored.Status == "" {
		stored.Status = domain.AccountStatusActive
	}
	r.accounts[account.ID] = &stored

	r.logger.Info("Account created successfully", "account_id", account.ID)
	return nil
}

func (r *accountRepository) GetAccount(id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		r.logger.Warn("Account not found", "account_id", id)
		return nil, errors.ErrAccountNotFound
	}

	cp := *account
	return &cp, nil
}

// AdjustBalance adds delta to the stored balance and returns the result.
// It is the only path that changes a balance and it never lets one go
// below zero.
func (r *accountRepository) AdjustBalance(id string, delta decimal.Decimal) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		r.logger.Warn("No account found to update", "account_id", id)
		return decimal.Zero, errors.ErrAccountNotFound
	}

	newBalance := account.Balance.Add(delta)
	if newBalance.IsNegative() {
		r.logger.Warn("Balance adjustment rejected",
			"account_id", id,
			"balance", account.Balance,
			"delta", delta)
		return account.Balance, errors.ErrInsufficientFunds
	}

	account.Balance = newBalance
	r.logger.Info("Account balance updated", "account_id", id, "new_balance", newBalance)
	return newBalance, nil
}

func (r *accountRepository) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.accounts[id]
	return ok
}

func (r *accountRepository) Identifiers() map[string]struct{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make(map[string]struct{}, len(r.accounts))
	for id := range r.accounts {
		ids[id] = struct{}{}
	}
	return ids
}
