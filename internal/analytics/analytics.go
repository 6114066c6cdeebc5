// Package analytics derives read-only statistics from an account's
// transaction history.
package analytics

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"smartbank/internal/domain"
	"smartbank/internal/errors"
)

const recentDatesCount = 5

type Summary struct {
	TotalTransactions int                            `json:"total_transactions"`
	TransactionTypes  []domain.TransactionKind       `json:"transaction_types"`
	TypeStats         map[domain.TransactionKind]int `json:"type_stats"`
	TotalDeposits     decimal.Decimal                `json:"total_deposits"`
	TotalWithdrawals  decimal.Decimal                `json:"total_withdrawals"`
	NetFlow           decimal.Decimal                `json:"net_flow"`
	HasDeposits       bool                           `json:"has_deposits"`
	// DepositCountExceedsWithdrawalCount is true when there are strictly more
	// deposits than withdrawals.
	DepositCountExceedsWithdrawalCount bool `json:"more_deposits_than_withdrawals"`
	// HasLargeTransactions is left to the caller, which owns the threshold.
	HasLargeTransactions bool        `json:"has_large_transactions"`
	RecentDates          []time.Time `json:"recent_dates"`

	Deposits    []domain.TransactionEntry `json:"-"`
	Withdrawals []domain.TransactionEntry `json:"-"`
	Transfers   []domain.TransactionEntry `json:"-"`

	entries []domain.TransactionEntry
}

// Analyze partitions entries by kind and computes totals over them. The input
// is not modified.
func Analyze(entries []domain.TransactionEntry) (*Summary, error) {
	s := &Summary{
		TotalTransactions: len(entries),
		TransactionTypes:  []domain.TransactionKind{},
		TypeStats:         map[domain.TransactionKind]int{},
		TotalDeposits:     decimal.Zero,
		TotalWithdrawals:  decimal.Zero,
		NetFlow:           decimal.Zero,
		RecentDates:       []time.Time{},
		entries:           slices.Clone(entries),
	}

	for _, e := range entries {
		switch e.Kind {
		case domain.KindDeposit:
			s.Deposits = append(s.Deposits, e)
			s.TotalDeposits = s.TotalDeposits.Add(e.Amount)
		case domain.KindWithdrawal:
			s.Withdrawals = append(s.Withdrawals, e)
			s.TotalWithdrawals = s.TotalWithdrawals.Add(e.Amount.Abs())
		case domain.KindTransfer:
			s.Transfers = append(s.Transfers, e)
		default:
			return nil, errors.ErrUnknownTransactionKind.WithDetails(string(e.Kind))
		}
		s.TypeStats[e.Kind]++
	}

	for kind := range s.TypeStats {
		s.TransactionTypes = append(s.TransactionTypes, kind)
	}
	slices.Sort(s.TransactionTypes)

	s.NetFlow = s.TotalDeposits.Sub(s.TotalWithdrawals)
	s.HasDeposits = len(s.Deposits) > 0
	s.DepositCountExceedsWithdrawalCount = len(s.Deposits) > len(s.Withdrawals)

	recent := entries[max(0, len(entries)-recentDatesCount):]
	for _, e := range recent {
		s.RecentDates = append(s.RecentDates, e.Date)
	}

	return s, nil
}

// HasTransactionAbove reports whether any entry's signed amount is strictly
// greater than threshold. Debits are negative, so only credits can qualify.
func (s *Summary) HasTransactionAbove(threshold decimal.Decimal) bool {
	for _, e := range s.entries {
		if e.Amount.GreaterThan(threshold) {
			return true
		}
	}
	return false
}
