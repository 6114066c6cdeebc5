package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	KindDeposit    TransactionKind = "Deposit"
	KindWithdrawal TransactionKind = "Withdrawal"
	KindTransfer   TransactionKind = "Transfer"
)

// Valid reports whether k is one of the kinds the ledger records.
func (k TransactionKind) Valid() bool {
	switch k {
	case KindDeposit, KindWithdrawal, KindTransfer:
		return true
	}
	return false
}

// TransactionEntry is one line of an account's history. Amount is signed:
// credits are positive, debits negative. Balance is the account balance
// right after the entry was applied.
type TransactionEntry struct {
	ID          uuid.UUID       `json:"id"`
	Date        time.Time       `json:"date"`
	Kind        TransactionKind `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Balance     decimal.Decimal `json:"balance"`
}

type LedgerRepository interface {
	Append(id string, entry TransactionEntry) error
	Recent(id string, n int) ([]TransactionEntry, error)
	All(id string) ([]TransactionEntry, error)
}
