package service

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"smartbank/internal/analytics"
	"smartbank/internal/domain"
	"smartbank/internal/repository"
)

type AnalyticsService struct {
	store          *repository.Store
	largeThreshold decimal.Decimal
	logger         *slog.Logger
}

func NewAnalyticsService(store *repository.Store, largeThreshold decimal.Decimal, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{
		store:          store,
		largeThreshold: largeThreshold,
		logger:         logger,
	}
}

func (s *AnalyticsService) GetAnalytics(accountID string) (*analytics.Summary, error) {
	s.logger.Info("Computing analytics", "account_id", accountID)

	var history []domain.TransactionEntry
	err := s.store.WithAccounts([]string{accountID}, func(tx *repository.Store) error {
		var err error
		history, err = tx.Ledger().All(accountID)
		return err
	})
	if err != nil {
		return nil, err
	}

	summary, err := analytics.Analyze(history)
	if err != nil {
		s.logger.Error("Analytics failed", "account_id", accountID, "error", err)
		return nil, err
	}
	summary.HasLargeTransactions = summary.HasTransactionAbove(s.largeThreshold)
	return summary, nil
}
