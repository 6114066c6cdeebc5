package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"smartbank/internal/domain"
	"smartbank/internal/repository"
)

type demoEntry struct {
	date        string
	kind        domain.TransactionKind
	amount      string
	description string
	balance     string
}

type demoAccount struct {
	id, name, email, phone, pin string
	history                     []demoEntry
}

var demoAccounts = []demoAccount{
	{
		id: "1234567890", name: "John Doe", email: "john@email.com", phone: "1234567890", pin: "1234",
		history: []demoEntry{
			{"2023-01-15", domain.KindDeposit, "1000.00", "Initial Deposit", "1000.00"},
			{"2023-02-01", domain.KindWithdrawal, "-200.00", "ATM Withdrawal", "800.00"},
			{"2023-02-15", domain.KindDeposit, "500.00", "Salary", "1300.00"},
			{"2023-03-01", domain.KindTransfer, "-300.00", "To 0987654321: Dinner", "1000.00"},
		},
	},
	{
		id: "0987654321", name: "Jane Smith", email: "jane@email.com", phone: "0987654321", pin: "5678",
		history: []demoEntry{
			{"2023-01-20", domain.KindDeposit, "500.00", "Initial Deposit", "500.00"},
			{"2023-02-05", domain.KindDeposit, "1000.00", "Salary", "1500.00"},
			{"2023-02-20", domain.KindWithdrawal, "-100.00", "Shopping", "1400.00"},
			{"2023-03-01", domain.KindTransfer, "300.00", "From 1234567890: Dinner", "1700.00"},
		},
	},
}

// SeedDemoData registers the two demo accounts with their sample histories.
// Each balance equals the last snapshot of its history.
func SeedDemoData(store *repository.Store, bcryptCost int) error {
	for _, demo := range demoAccounts {
		pinHash, err := bcrypt.GenerateFromPassword([]byte(demo.pin), bcryptCost)
		if err != nil {
			return fmt.Errorf("hash demo PIN for %s: %w", demo.id, err)
		}

		entries := make([]domain.TransactionEntry, 0, len(demo.history))
		for _, h := range demo.history {
			date, err := time.Parse(time.DateOnly, h.date)
			if err != nil {
				return fmt.Errorf("parse demo date %q: %w", h.date, err)
			}
			entries = append(entries, domain.TransactionEntry{
				ID:          uuid.New(),
				Date:        date,
				Kind:        h.kind,
				Amount:      decimal.RequireFromString(h.amount),
				Description: h.description,
				Balance:     decimal.RequireFromString(h.balance),
			})
		}

		account := &domain.Account{
			ID:        demo.id,
			Name:      demo.name,
			Email:     demo.email,
			Phone:     demo.phone,
			Balance:   entries[len(entries)-1].Balance,
			PINHash:   pinHash,
			CreatedAt: entries[0].Date,
			Type:      domain.AccountTypeSavings,
			Status:    domain.AccountStatusActive,
		}

		err = store.WithAccounts([]string{demo.id}, func(tx *repository.Store) error {
			if err := tx.Account().CreateAccount(account); err != nil {
				return err
			}
			for _, e := range entries {
				if err := tx.Ledger().Append(demo.id, e); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("seed demo account %s: %w", demo.id, err)
		}
	}
	return nil
}
