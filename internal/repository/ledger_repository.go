package repository

import (
	"log/slog"
	"sync"

	"smartbank/internal/domain"
	"smartbank/internal/errors"
)

type ledgerRepository struct {
	mu      sync.RWMutex
	entries map[string][]domain.TransactionEntry
	exists  func(id string) bool
	logger  *slog.Logger
}

// NewLedgerRepository returns an append-only ledger. exists decides whether an
// identifier names a known account; entries for unknown accounts are refused.
func NewLedgerRepository(exists func(id string) bool, logger *slog.Logger) domain.LedgerRepository {
	return newLedgerRepository(exists, logger)
}

func newLedgerRepository(exists func(id string) bool, logger *slog.Logger) *ledgerRepository {
	return &ledgerRepository{
		entries: make(map[string][]domain.TransactionEntry),
		exists:  exists,
		logger:  logger,
	}
}

func (r *ledgerRepository) Append(id string, entry domain.TransactionEntry) error {
	if !r.exists(id) {
		r.logger.Warn("Ledger append for unknown account", "account_id", id)
		return errors.ErrAccountNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[id] = append(r.entries[id], entry)

	r.logger.Info("Ledger entry appended",
		"account_id", id,
		"entry_id", entry.ID,
		"type", entry.Kind,
		"amount", entry.Amount)
	return nil
}

// Recent returns a copy of the last n entries, oldest first. A non-positive n
// or a history shorter than n yields the whole history.
func (r *ledgerRepository) Recent(id string, n int) ([]domain.TransactionEntry, error) {
	if !r.exists(id) {
		return nil, errors.ErrAccountNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	history := r.entries[id]
	if n > 0 && n < len(history) {
		history = history[len(history)-n:]
	}

	out := make([]domain.TransactionEntry, len(history))
	copy(out, history)
	return out, nil
}

func (r *ledgerRepository) All(id string) ([]domain.TransactionEntry, error) {
	return r.Recent(id, 0)
}
