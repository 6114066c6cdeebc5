package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	AccountTypeSavings  = "Savings"
	AccountStatusActive = "Active"
)

type Account struct {
	ID        string          `json:"account_number"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Balance   decimal.Decimal `json:"balance"`
	PINHash   []byte          `json:"-"`
	CreatedAt time.Time       `json:"created_at"`
	Type      string          `json:"account_type"`
	Status    string          `json:"status"`
}

type AccountRepository interface {
	CreateAccount(account *Account) error
	GetAccount(id string) (*Account, error)
	AdjustBalance(id string, delta decimal.Decimal) (decimal.Decimal, error)
	Exists(id string) bool
	Identifiers() map[string]struct{}
}
