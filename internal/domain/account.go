// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrSenderAccountNotFound indicates that the transfer sender account is not found.
	ErrSenderAccountNotFound = errors.New("sender account not found")
	// ErrRecipientAccountNotFound indicates that the transfer recipient account is not found.
	ErrRecipientAccountNotFound = errors.New("recipient account not found")
	// ErrAccountAlreadyExists indicates that the user already has an account.
	ErrAccountAlreadyExists = errors.New("account already exists")
	// ErrOwnerNotFound indicates that the owner for the account is not found.
	ErrOwnerNotFound = errors.New("owner not found")
)

// Account types.
const (
	AccountTypeSavings  = "SAVINGS"
	AccountTypeChecking = "CHECKING"
)

// Account holds the balance data of a user.
//
// UserID identifies the owner, AccountNumber is an independent unique
// lookup key used to address the account in transfers.
type Account struct {
	UserID        string          `json:"user_id"`
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	AccountType   string          `json:"account_type"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreateAccountParams is the input data to create an account.
type CreateAccountParams struct {
	UserID        string          `json:"user_id"`
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	AccountType   string          `json:"account_type"`
}
