package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"smartbank/internal/domain"
	"smartbank/internal/service"
)

type cashOperation func(accountID string, amount decimal.Decimal, description string) (*domain.TransactionEntry, error)

type TransactionHandler struct {
	transactionService *service.TransactionService
}

func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

type CashRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
}

type TransferRequest struct {
	SenderAccountNumber    string `json:"sender_account_number"`
	RecipientAccountNumber string `json:"recipient_account_number"`
	Amount                 string `json:"amount"`
	Description            string `json:"description,omitempty"`
}

type TransferResponse struct {
	TransferID     string        `json:"transfer_id"`
	SenderEntry    EntryResponse `json:"sender_entry"`
	RecipientEntry EntryResponse `json:"recipient_entry"`
}

func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.cash(w, r, h.transactionService.Deposit)
}

func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.cash(w, r, h.transactionService.Withdraw)
}

func (h *TransactionHandler) cash(w http.ResponseWriter, r *http.Request, op cashOperation) {
	accountID := mux.Vars(r)["account_id"]

	var req CashRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		writeError(w, appErr)
		return
	}

	amount, appErr := parseAmount(req.Amount)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	entry, err := op(accountID, amount, req.Description)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newEntryResponse(*entry))
}

func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		writeError(w, appErr)
		return
	}

	amount, appErr := parseAmount(req.Amount)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	result, err := h.transactionService.Transfer(&service.TransferRequest{
		SenderID:    req.SenderAccountNumber,
		RecipientID: req.RecipientAccountNumber,
		Amount:      amount,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, TransferResponse{
		TransferID:     result.ID.String(),
		SenderEntry:    newEntryResponse(result.SenderEntry),
		RecipientEntry: newEntryResponse(result.RecipientEntry),
	})
}
