package service

import (
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"smartbank/internal/config"
	"smartbank/internal/domain"
	"smartbank/internal/errors"
	"smartbank/internal/idgen"
	"smartbank/internal/repository"
)

const (
	initialDepositDescription = "Initial Deposit"
	// a fresh identifier can still lose a race against a concurrent
	// registration; give up after this many tries
	maxCreateAttempts = 3
)

type AccountService struct {
	store             *repository.Store
	ids               *idgen.Generator
	bcryptCost        int
	minInitialDeposit decimal.Decimal
	now               func() time.Time
	logger            *slog.Logger
}

func NewAccountService(store *repository.Store, ids *idgen.Generator, cfg *config.Config, logger *slog.Logger) *AccountService {
	return &AccountService{
		store:             store,
		ids:               ids,
		bcryptCost:        cfg.BcryptCost,
		minInitialDeposit: cfg.MinInitialDeposit,
		now:               time.Now,
		logger:            logger,
	}
}

type CreateAccountRequest struct {
	Name           string
	Email          string
	Phone          string
	InitialDeposit decimal.Decimal
	PIN            string
}

// CreateAccount registers a new account under a freshly generated identifier
// and records its initial deposit.
func (s *AccountService) CreateAccount(req *CreateAccountRequest) (*domain.Account, error) {
	s.logger.Info("Creating account", "name", req.Name, "initial_deposit", req.InitialDeposit)

	if req.InitialDeposit.IsNegative() {
		return nil, errors.ErrInvalidAmount
	}
	if req.InitialDeposit.LessThan(s.minInitialDeposit) {
		return nil, errors.NewAppErrorf(errors.InvalidAmount,
			"initial deposit must be at least %s", s.minInitialDeposit.StringFixed(2))
	}
	if req.PIN == "" {
		return nil, errors.NewAppError(errors.InvalidInput, "PIN is required")
	}

	pinHash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), s.bcryptCost)
	if err != nil {
		s.logger.Error("Failed to hash PIN", "error", err)
		return nil, errors.NewAppError(errors.InternalError, "failed to secure PIN").WithDetails(err.Error())
	}

	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		id, err := s.ids.Next(s.store.Account().Identifiers())
		if err != nil {
			s.logger.Error("Failed to generate account number", "error", err)
			return nil, err
		}

		account := &domain.Account{
			ID:        id,
			Name:      req.Name,
			Email:     req.Email,
			Phone:     req.Phone,
			Balance:   req.InitialDeposit,
			PINHash:   pinHash,
			CreatedAt: s.now(),
			Type:      domain.AccountTypeSavings,
			Status:    domain.AccountStatusActive,
		}

		err = s.store.WithAccounts([]string{id}, func(tx *repository.Store) error {
			if err := tx.Account().CreateAccount(account); err != nil {
				return err
			}
			if !account.Balance.IsPositive() {
				return nil
			}
			return tx.Ledger().Append(id, domain.TransactionEntry{
				ID:          uuid.New(),
				Date:        account.CreatedAt,
				Kind:        domain.KindDeposit,
				Amount:      account.Balance,
				Description: initialDepositDescription,
				Balance:     account.Balance,
			})
		})
		if stderrors.Is(err, errors.ErrDuplicateAccount) {
			s.logger.Warn("Generated account number already taken, retrying", "account_id", id, "attempt", attempt)
			continue
		}
		if err != nil {
			return nil, err
		}

		s.logger.Info("Account created successfully", "account_id", id)
		return s.GetAccount(id)
	}

	return nil, errors.ErrIdentifierSpaceFull.WithDetails("could not reserve an account number")
}

// Login returns the account when pin matches. Unknown accounts and wrong PINs
// produce the same error.
func (s *AccountService) Login(accountID, pin string) (*domain.Account, error) {
	account, err := s.GetAccount(accountID)
	if err != nil {
		if stderrors.Is(err, errors.ErrAccountNotFound) {
			s.logger.Warn("Login failed", "account_id", accountID, "reason", "unknown account")
			return nil, errors.ErrAuthenticationFailed
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(account.PINHash, []byte(pin)); err != nil {
		s.logger.Warn("Login failed", "account_id", accountID, "reason", "wrong PIN")
		return nil, errors.ErrAuthenticationFailed
	}

	s.logger.Info("Login succeeded", "account_id", accountID)
	return account, nil
}

func (s *AccountService) GetAccount(accountID string) (*domain.Account, error) {
	s.logger.Info("Getting account", "account_id", accountID)

	var account *domain.Account
	err := s.store.WithAccounts([]string{accountID}, func(tx *repository.Store) error {
		var err error
		account, err = tx.Account().GetAccount(accountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// GetHistory returns the last limit entries of the account, oldest first.
// A non-positive limit returns the whole history.
func (s *AccountService) GetHistory(accountID string, limit int) ([]domain.TransactionEntry, error) {
	s.logger.Info("Getting history", "account_id", accountID, "limit", limit)

	var history []domain.TransactionEntry
	err := s.store.WithAccounts([]string{accountID}, func(tx *repository.Store) error {
		var err error
		history, err = tx.Ledger().Recent(accountID, limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return history, nil
}
