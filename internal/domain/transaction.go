package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrTransactionNotFound indicates that the transaction is not found.
var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionType classifies a ledger entry from the owner's perspective.
type TransactionType string

// Supported transaction types.
const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// CategoryTransfer is the ledger category given to transfer entries.
const CategoryTransfer = "Transfer"

// Transaction is an immutable ledger entry recording a balance-affecting event.
// Entries are only ever appended, never updated.
type Transaction struct {
	ID           int64           `json:"id"`
	UserID       string          `json:"user_id"`
	Amount       decimal.Decimal `json:"amount"`
	Type         TransactionType `json:"type"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Reference    string          `json:"reference"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CreateTransactionParams is the input data to append a ledger entry.
type CreateTransactionParams struct {
	UserID       string          `json:"user_id"`
	Amount       decimal.Decimal `json:"amount"`
	Type         TransactionType `json:"type"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Reference    string          `json:"reference"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
}

// ListTransactionsParams is the input data to list the ledger entries of a user.
type ListTransactionsParams struct {
	UserID string `json:"user_id"`
	Limit  int32  `json:"limit"`
	Offset int32  `json:"offset"`
}
