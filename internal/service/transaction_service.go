package service

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"smartbank/internal/domain"
	"smartbank/internal/errors"
	"smartbank/internal/repository"
)

// TransactionService moves money. Every operation runs with the locks of the
// accounts it touches held from validation to the last ledger append, so the
// balance snapshots it records are exact and no reader sees half a transfer.
type TransactionService struct {
	store  *repository.Store
	now    func() time.Time
	logger *slog.Logger
}

func NewTransactionService(store *repository.Store, logger *slog.Logger) *TransactionService {
	return &TransactionService{
		store:  store,
		now:    time.Now,
		logger: logger,
	}
}

type TransferRequest struct {
	SenderID    string
	RecipientID string
	Amount      decimal.Decimal
	Description string
}

type TransferResult struct {
	ID             uuid.UUID               `json:"transfer_id"`
	SenderEntry    domain.TransactionEntry `json:"sender_entry"`
	RecipientEntry domain.TransactionEntry `json:"recipient_entry"`
}

func (s *TransactionService) Deposit(accountID string, amount decimal.Decimal, description string) (*domain.TransactionEntry, error) {
	s.logger.Info("Processing deposit", "account_id", accountID, "amount", amount)

	if !amount.IsPositive() {
		return nil, errors.ErrInvalidAmount
	}
	if description == "" {
		description = string(domain.KindDeposit)
	}

	var entry domain.TransactionEntry
	err := s.store.WithAccounts([]string{accountID}, func(tx *repository.Store) error {
		balance, err := tx.Account().AdjustBalance(accountID, amount)
		if err != nil {
			return err
		}
		entry = s.newEntry(s.now(), domain.KindDeposit, amount, description, balance)
		return tx.Ledger().Append(accountID, entry)
	})
	if err != nil {
		s.logger.Warn("Deposit failed", "account_id", accountID, "error", err)
		return nil, err
	}

	s.logger.Info("Deposit completed", "account_id", accountID, "balance", entry.Balance)
	return &entry, nil
}

func (s *TransactionService) Withdraw(accountID string, amount decimal.Decimal, description string) (*domain.TransactionEntry, error) {
	s.logger.Info("Processing withdrawal", "account_id", accountID, "amount", amount)

	if !amount.IsPositive() {
		return nil, errors.ErrInvalidAmount
	}
	if description == "" {
		description = string(domain.KindWithdrawal)
	}

	var entry domain.TransactionEntry
	err := s.store.WithAccounts([]string{accountID}, func(tx *repository.Store) error {
		account, err := tx.Account().GetAccount(accountID)
		if err != nil {
			return err
		}
		if account.Balance.LessThan(amount) {
			return errors.ErrInsufficientFunds
		}

		balance, err := tx.Account().AdjustBalance(accountID, amount.Neg())
		if err != nil {
			return err
		}
		entry = s.newEntry(s.now(), domain.KindWithdrawal, amount.Neg(), description, balance)
		return tx.Ledger().Append(accountID, entry)
	})
	if err != nil {
		s.logger.Warn("Withdrawal failed", "account_id", accountID, "error", err)
		return nil, err
	}

	s.logger.Info("Withdrawal completed", "account_id", accountID, "balance", entry.Balance)
	return &entry, nil
}

// Transfer debits the sender, credits the recipient and records a mirrored
// pair of Transfer entries. Any validation failure leaves both accounts and
// both histories untouched.
func (s *TransactionService) Transfer(req *TransferRequest) (*TransferResult, error) {
	s.logger.Info("Processing transfer",
		"sender_id", req.SenderID,
		"recipient_id", req.RecipientID,
		"amount", req.Amount)

	if err := s.validateTransfer(req); err != nil {
		return nil, err
	}

	result := &TransferResult{ID: uuid.New()}
	err := s.store.WithAccounts([]string{req.SenderID, req.RecipientID}, func(tx *repository.Store) error {
		accounts := tx.Account()

		sender, err := accounts.GetAccount(req.SenderID)
		if err != nil {
			return err
		}
		if !accounts.Exists(req.RecipientID) {
			return errors.ErrAccountNotFound.WithDetails("recipient " + req.RecipientID)
		}
		if sender.Balance.LessThan(req.Amount) {
			return errors.ErrInsufficientFunds
		}

		senderBalance, err := accounts.AdjustBalance(req.SenderID, req.Amount.Neg())
		if err != nil {
			return err
		}
		recipientBalance, err := accounts.AdjustBalance(req.RecipientID, req.Amount)
		if err != nil {
			// unreachable while the recipient's lock is held; put the money back
			if _, restoreErr := accounts.AdjustBalance(req.SenderID, req.Amount); restoreErr != nil {
				s.logger.Error("Failed to restore sender balance", "sender_id", req.SenderID, "error", restoreErr)
			}
			return errors.NewAppError(errors.InternalError, "failed to credit recipient").WithDetails(err.Error())
		}

		now := s.now()
		result.SenderEntry = s.newEntry(now, domain.KindTransfer, req.Amount.Neg(),
			fmt.Sprintf("To %s: %s", req.RecipientID, req.Description), senderBalance)
		result.RecipientEntry = s.newEntry(now, domain.KindTransfer, req.Amount,
			fmt.Sprintf("From %s: %s", req.SenderID, req.Description), recipientBalance)

		if err := tx.Ledger().Append(req.SenderID, result.SenderEntry); err != nil {
			return err
		}
		return tx.Ledger().Append(req.RecipientID, result.RecipientEntry)
	})
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) && appErr.Code != errors.InternalError {
			s.logger.Warn("Transfer rejected", "transfer_id", result.ID, "error", err)
		} else {
			s.logger.Error("Transfer failed", "transfer_id", result.ID, "error", err)
		}
		return nil, err
	}

	s.logger.Info("Transfer completed successfully", "transfer_id", result.ID)
	return result, nil
}

func (s *TransactionService) validateTransfer(req *TransferRequest) error {
	if req.SenderID == req.RecipientID {
		return errors.ErrSameAccountTransfer
	}

	if !req.Amount.IsPositive() {
		return errors.ErrInvalidAmount
	}

	return nil
}

func (s *TransactionService) newEntry(date time.Time, kind domain.TransactionKind, amount decimal.Decimal, description string, balance decimal.Decimal) domain.TransactionEntry {
	return domain.TransactionEntry{
		ID:          uuid.New(),
		Date:        date,
		Kind:        kind,
		Amount:      amount,
		Description: description,
		Balance:     balance,
	}
}
