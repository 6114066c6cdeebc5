package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"smartbank/internal/service"
)

type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

type AnalyticsResponse struct {
	TotalTransactions           int            `json:"total_transactions"`
	TransactionTypes            []string       `json:"transaction_types"`
	TypeStats                   map[string]int `json:"type_stats"`
	TotalDeposits               string         `json:"total_deposits"`
	TotalWithdrawals            string         `json:"total_withdrawals"`
	NetFlow                     string         `json:"net_flow"`
	HasDeposits                 bool           `json:"has_deposits"`
	HasLargeTransactions        bool           `json:"has_large_transactions"`
	MoreDepositsThanWithdrawals bool           `json:"more_deposits_than_withdrawals"`
	RecentDates                 []string       `json:"recent_dates"`
}

func (h *AnalyticsHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["account_id"]

	summary, err := h.analyticsService.GetAnalytics(accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := AnalyticsResponse{
		TotalTransactions:           summary.TotalTransactions,
		TransactionTypes:            make([]string, 0, len(summary.TransactionTypes)),
		TypeStats:                   make(map[string]int, len(summary.TypeStats)),
		TotalDeposits:               money(summary.TotalDeposits),
		TotalWithdrawals:            money(summary.TotalWithdrawals),
		NetFlow:                     money(summary.NetFlow),
		HasDeposits:                 summary.HasDeposits,
		HasLargeTransactions:        summary.HasLargeTransactions,
		MoreDepositsThanWithdrawals: summary.DepositCountExceedsWithdrawalCount,
		RecentDates:                 make([]string, 0, len(summary.RecentDates)),
	}
	for _, kind := range summary.TransactionTypes {
		response.TransactionTypes = append(response.TransactionTypes, string(kind))
	}
	for kind, count := range summary.TypeStats {
		response.TypeStats[string(kind)] = count
	}
	for _, date := range summary.RecentDates {
		response.RecentDates = append(response.RecentDates, date.Format(time.DateOnly))
	}

	writeJSON(w, http.StatusOK, response)
}
