package repository

import (
	"log/slog"

	"smartbank/internal/domain"
)

// Store owns the account and ledger repositories and serialises every
// operation that touches the same accounts.
type Store struct {
	accounts *accountRepository
	ledger   *ledgerRepository
	locks    *accountLocks
	logger   *slog.Logger
}

// NewStore creates a new, empty Store instance
func NewStore(logger *slog.Logger) *Store {
	accounts := newAccountRepository(logger)
	return &Store{
		accounts: accounts,
		ledger:   newLedgerRepository(accounts.Exists, logger),
		locks:    newAccountLocks(),
		logger:   logger,
	}
}

// Account returns the AccountRepository backing this store
func (s *Store) Account() domain.AccountRepository {
	return s.accounts
}

// Ledger returns the LedgerRepository backing this store
func (s *Store) Ledger() domain.LedgerRepository {
	return s.ledger
}

// WithAccounts runs fn while holding the locks of every account in ids.
// Locks are taken in lexicographic order so two operations over the same pair
// of accounts can never deadlock, whatever order their callers name them in.
// fn must not call WithAccounts again.
func (s *Store) WithAccounts(ids []string, fn func(*Store) error) error {
	unlock := s.locks.lock(ids...)
	defer unlock()

	return fn(s)
}
