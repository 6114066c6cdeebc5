package handler

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/shopspring/decimal"

	"smartbank/internal/errors"
)

type Response struct {
	Data  interface{} `json:"data,omitempty"`
	Error *Error      `json:"error,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := Response{Data: data}
	json.NewEncoder(w).Encode(response)
}

func writeError(w http.ResponseWriter, appErr *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")

	statusCode := appErr.HTTPStatus()
	errResponse := Error{
		Code:    string(appErr.Code),
		Message: appErr.Message,
		Details: appErr.Details,
	}

	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(Response{Error: &errResponse})
}

// writeServiceError renders err, hiding anything that is not an AppError.
func writeServiceError(w http.ResponseWriter, err error) {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		writeError(w, appErr)
		return
	}
	writeError(w, errors.NewAppError(errors.InternalError, "an unexpected error occurred"))
}

func decodeJSON(r *http.Request, dst interface{}) *errors.AppError {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error())
	}
	return nil
}

func parseAmount(raw string) (decimal.Decimal, *errors.AppError) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.NewAppError(errors.InvalidAmount, "invalid amount format").WithDetails(err.Error())
	}
	return amount, nil
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
