package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount indicates invalid amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount indicates non-positive amount.
	ErrNegativeAmount = errors.New("amount must be greater than zero")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrSelfTransfer indicates a transfer between accounts of the same user.
	ErrSelfTransfer = errors.New("transfer to own account is not allowed")
	// ErrCurrencyMismatch indicates that transfer accounts have different currencies.
	ErrCurrencyMismatch = errors.New("accounts currency mismatch")
)

// CreateTransferParams is the caller-facing input data for a transfer.
type CreateTransferParams struct {
	ToAccountNumber string          `json:"to_account_number"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
}

// TransferTxParams is the fully resolved input for the transfer transaction.
// Both parties are resolved before the commit so the transaction itself only
// performs writes.
type TransferTxParams struct {
	FromUserID        string          `json:"from_user_id"`
	FromAccountNumber string          `json:"from_account_number"`
	ToUserID          string          `json:"to_user_id"`
	ToAccountNumber   string          `json:"to_account_number"`
	Amount            decimal.Decimal `json:"amount"`
	FromDescription   string          `json:"from_description"`
	ToDescription     string          `json:"to_description"`
}

// TransferTxResult is the result of the transfer transaction.
type TransferTxResult struct {
	FromAccount Account     `json:"from_account"`
	ToAccount   Account     `json:"to_account"`
	FromEntry   Transaction `json:"from_entry"`
	ToEntry     Transaction `json:"to_entry"`
}
