package repository

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartbank/internal/domain"
	"smartbank/internal/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAccount(id, balance string) *domain.Account {
	return &domain.Account{
		ID:        id,
		Name:      "Test Holder",
		Balance:   decimal.RequireFromString(balance),
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func entry(kind domain.TransactionKind, amount, balance string) domain.TransactionEntry {
	return domain.TransactionEntry{
		ID:      uuid.New(),
		Date:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Kind:    kind,
		Amount:  decimal.RequireFromString(amount),
		Balance: decimal.RequireFromString(balance),
	}
}

func TestCreateAndGetAccount(t *testing.T) {
	repo := NewAccountRepository(testLogger())

	require.NoError(t, repo.CreateAccount(newAccount("1111111111", "5000.00")))

	got, err := repo.GetAccount("1111111111")
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("5000")))
	assert.Equal(t, domain.AccountTypeSavings, got.Type)
	assert.Equal(t, domain.AccountStatusActive, got.Status)
	assert.True(t, repo.Exists("1111111111"))
}

func TestCreateAccountRejectsDuplicate(t *testing.T) {
	repo := NewAccountRepository(testLogger())
	require.NoError(t, repo.CreateAccount(newAccount("1111111111", "10")))

	err := repo.CreateAccount(newAccount("1111111111", "20"))
	assert.True(t, stderrors.Is(err, errors.ErrDuplicateAccount))

	got, err := repo.GetAccount("1111111111")
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(10)), "original account must survive")
}

func TestCreateAccountRejectsNegativeBalance(t *testing.T) {
	repo := NewAccountRepository(testLogger())

	err := repo.CreateAccount(newAccount("1111111111", "-0.01"))
	assert.True(t, stderrors.Is(err, errors.ErrInvalidAmount))
	assert.False(t, repo.Exists("1111111111"))
}

func TestGetAccountNotFound(t *testing.T) {
	repo := NewAccountRepository(testLogger())

	_, err := repo.GetAccount("0000000000")
	assert.True(t, stderrors.Is(err, errors.ErrAccountNotFound))
}

func TestGetAccountReturnsCopy(t *testing.T) {
	repo := NewAccountRepository(testLogger())
	require.NoError(t, repo.CreateAccount(newAccount("1111111111", "100")))

	got, err := repo.GetAccount("1111111111")
	require.NoError(t, err)
	got.Balance = decimal.NewFromInt(999)

	again, err := repo.GetAccount("1111111111")
	require.NoError(t, err)
	assert.True(t, again.Balance.Equal(decimal.NewFromInt(100)))
}

func TestAdjustBalance(t *testing.T) {
	repo := NewAccountRepository(testLogger())
	require.NoError(t, repo.CreateAccount(newAccount("1111111111", "100")))

	bal, err := repo.AdjustBalance("1111111111", decimal.RequireFromString("-40.50"))
	require.NoError(t, err)
	assert.Equal(t, "59.5", bal.String())

	bal, err = repo.AdjustBalance("1111111111", decimal.RequireFromString("-59.50"))
	require.NoError(t, err)
	assert.True(t, bal.IsZero())

	_, err = repo.AdjustBalance("1111111111", decimal.RequireFromString("-0.01"))
	assert.True(t, stderrors.Is(err, errors.ErrInsufficientFunds))

	got, err := repo.GetAccount("1111111111")
	require.NoError(t, err)
	assert.True(t, got.Balance.IsZero(), "failed adjustment must not change the balance")

	_, err = repo.AdjustBalance("2222222222", decimal.NewFromInt(1))
	assert.True(t, stderrors.Is(err, errors.ErrAccountNotFound))
}

func TestIdentifiersIsACopy(t *testing.T) {
	repo := NewAccountRepository(testLogger())
	require.NoError(t, repo.CreateAccount(newAccount("1111111111", "1")))
	require.NoError(t, repo.CreateAccount(newAccount("2222222222", "1")))

	ids := repo.Identifiers()
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, "1111111111")

	delete(ids, "1111111111")
	assert.True(t, repo.Exists("1111111111"))
}

func TestLedgerAppendRequiresKnownAccount(t *testing.T) {
	known := map[string]bool{"2222222222": true}
	ledger := NewLedgerRepository(func(id string) bool { return known[id] }, testLogger())

	err := ledger.Append("1111111111", entry(domain.KindDeposit, "10", "10"))
	assert.True(t, stderrors.Is(err, errors.ErrAccountNotFound))

	_, err = ledger.All("1111111111")
	assert.True(t, stderrors.Is(err, errors.ErrAccountNotFound))

	require.NoError(t, ledger.Append("2222222222", entry(domain.KindDeposit, "10", "10")))
	all, err := ledger.All("2222222222")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLedgerRecent(t *testing.T) {
	store := NewStore(testLogger())
	require.NoError(t, store.Account().CreateAccount(newAccount("1111111111", "0")))
	ledger := store.Ledger()

	empty, err := ledger.All("1111111111")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for i, amount := range []string{"1", "2", "3", "4"} {
		require.NoError(t, ledger.Append("1111111111", entry(domain.KindDeposit, amount, amount)), i)
	}

	last2, err := ledger.Recent("1111111111", 2)
	require.NoError(t, err)
	require.Len(t, last2, 2)
	assert.Equal(t, "3", last2[0].Amount.String())
	assert.Equal(t, "4", last2[1].Amount.String())

	more, err := ledger.Recent("1111111111", 10)
	require.NoError(t, err)
	assert.Len(t, more, 4)

	all, err := ledger.Recent("1111111111", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestLedgerRecentIsASnapshot(t *testing.T) {
	store := NewStore(testLogger())
	require.NoError(t, store.Account().CreateAccount(newAccount("1111111111", "0")))
	ledger := store.Ledger()
	require.NoError(t, ledger.Append("1111111111", entry(domain.KindDeposit, "1", "1")))

	snapshot, err := ledger.All("1111111111")
	require.NoError(t, err)

	require.NoError(t, ledger.Append("1111111111", entry(domain.KindDeposit, "2", "3")))
	snapshot[0].Description = "changed by caller"

	assert.Len(t, snapshot, 1)
	fresh, err := ledger.All("1111111111")
	require.NoError(t, err)
	assert.Len(t, fresh, 2)
	assert.Empty(t, fresh[0].Description)
}

func TestWithAccountsOppositeOrderDoesNotDeadlock(t *testing.T) {
	store := NewStore(testLogger())
	require.NoError(t, store.Account().CreateAccount(newAccount("1111111111", "1000")))
	require.NoError(t, store.Account().CreateAccount(newAccount("2222222222", "1000")))

	move := func(from, to string) error {
		return store.WithAccounts([]string{from, to}, func(s *Store) error {
			if _, err := s.Account().AdjustBalance(from, decimal.NewFromInt(-1)); err != nil {
				return err
			}
			_, err := s.Account().AdjustBalance(to, decimal.NewFromInt(1))
			return err
		})
	}

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, move("1111111111", "2222222222"))
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, move("2222222222", "1111111111"))
		}()
	}
	wg.Wait()

	a, err := store.Account().GetAccount("1111111111")
	require.NoError(t, err)
	b, err := store.Account().GetAccount("2222222222")
	require.NoError(t, err)
	assert.True(t, a.Balance.Add(b.Balance).Equal(decimal.NewFromInt(2000)))
}

func TestWithAccountsDuplicateIDs(t *testing.T) {
	store := NewStore(testLogger())

	called := false
	err := store.WithAccounts([]string{"1111111111", "1111111111"}, func(*Store) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestWithAccountsPropagatesError(t *testing.T) {
	store := NewStore(testLogger())

	err := store.WithAccounts([]string{"1111111111"}, func(*Store) error {
		return errors.ErrInsufficientFunds
	})
	assert.True(t, stderrors.Is(err, errors.ErrInsufficientFunds))
}

func (l *accountLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func TestWithAccountsReleasesLockEntries(t *testing.T) {
	store := NewStore(testLogger())
	require.NoError(t, store.Account().CreateAccount(newAccount("1111111111", "10")))

	for i := 0; i < 100; i++ {
		unknown := fmt.Sprintf("9%09d", i)
		err := store.WithAccounts([]string{unknown}, func(s *Store) error {
			_, err := s.Account().GetAccount(unknown)
			return err
		})
		require.True(t, stderrors.Is(err, errors.ErrAccountNotFound))
	}
	assert.Zero(t, store.locks.size())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.WithAccounts([]string{"1111111111", "2222222222"}, func(s *Store) error {
				_, err := s.Account().AdjustBalance("1111111111", decimal.Zero)
				return err
			}))
		}()
	}
	wg.Wait()
	assert.Zero(t, store.locks.size())
}
