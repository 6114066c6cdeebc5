package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"smartbank/internal/domain"
	"smartbank/internal/errors"
	"smartbank/internal/service"
)

type AccountHandler struct {
	accountService      *service.AccountService
	historyDefaultLimit int
}

func NewAccountHandler(accountService *service.AccountService, historyDefaultLimit int) *AccountHandler {
	return &AccountHandler{
		accountService:      accountService,
		historyDefaultLimit: historyDefaultLimit,
	}
}

type CreateAccountRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	InitialDeposit string `json:"initial_deposit"`
	PIN            string `json:"pin"`
}

type LoginRequest struct {
	AccountNumber string `json:"account_number"`
	PIN           string `json:"pin"`
}

type AccountResponse struct {
	AccountNumber string    `json:"account_number"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Balance       string    `json:"balance"`
	AccountType   string    `json:"account_type"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type EntryResponse struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
	Balance     string    `json:"balance"`
}

func newAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		AccountNumber: account.ID,
		Name:          account.Name,
		Email:         account.Email,
		Phone:         account.Phone,
		Balance:       money(account.Balance),
		AccountType:   account.Type,
		Status:        account.Status,
		CreatedAt:     account.CreatedAt,
	}
}

func newEntryResponse(entry domain.TransactionEntry) EntryResponse {
	return EntryResponse{
		ID:          entry.ID.String(),
		Date:        entry.Date,
		Type:        string(entry.Kind),
		Amount:      money(entry.Amount),
		Description: entry.Description,
		Balance:     money(entry.Balance),
	}
}

func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		writeError(w, appErr)
		return
	}

	initialDeposit, appErr := parseAmount(req.InitialDeposit)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	account, err := h.accountService.CreateAccount(&service.CreateAccountRequest{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		InitialDeposit: initialDeposit,
		PIN:            req.PIN,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newAccountResponse(account))
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		writeError(w, appErr)
		return
	}

	account, err := h.accountService.Login(req.AccountNumber, req.PIN)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newAccountResponse(account))
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["account_id"]

	account, err := h.accountService.GetAccount(accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newAccountResponse(account))
}

// GetHistory serves the account statement. Without a limit query parameter
// the configured default applies; limit=0 returns the full history.
func (h *AccountHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["account_id"]

	limit := h.historyDefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, errors.NewAppErrorf(errors.InvalidInput, "limit must be a non-negative integer, got %q", raw))
			return
		}
		limit = n
	}

	history, err := h.accountService.GetHistory(accountID, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := make([]EntryResponse, 0, len(history))
	for _, entry := range history {
		response = append(response, newEntryResponse(entry))
	}

	writeJSON(w, http.StatusOK, response)
}
