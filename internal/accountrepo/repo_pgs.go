// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/go-dmitri/pocket-bank/internal/domain"
	"github.com/go-dmitri/pocket-bank/pkg/dbpkg"
	"github.com/go-dmitri/pocket-bank/pkg/errorspkg"
	"github.com/shopspring/decimal"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    accounts (user_id, account_number, balance, currency, account_type)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING user_id, account_number, balance, currency, account_type, created_at, updated_at
`

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.UserID,
		arg.AccountNumber,
		arg.Balance,
		arg.Currency,
		arg.AccountType,
	)

	var a domain.Account

	err := row.Scan(
		&a.UserID,
		&a.AccountNumber,
		&a.Balance,
		&a.Currency,
		&a.AccountType,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "accounts_user_id_fkey":
				return a, domain.ErrOwnerNotFound
			case "accounts_pkey", "accounts_account_number_key":
				return a, domain.ErrAccountAlreadyExists
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT
	user_id, account_number, balance, currency, account_type, created_at, updated_at
FROM accounts
WHERE user_id = $1
`

// Get returns the account owned by the given user.
func (r *RepoPGS) Get(ctx context.Context, userID string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, userID)

	var a domain.Account

	err := row.Scan(
		&a.UserID,
		&a.AccountNumber,
		&a.Balance,
		&a.Currency,
		&a.AccountType,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getByNumberQuery = `
SELECT
	user_id, account_number, balance, currency, account_type, created_at, updated_at
FROM accounts
WHERE account_number = $1
`

// GetByNumber returns the account with the given account number.
func (r *RepoPGS) GetByNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getByNumberQuery, accountNumber)

	var a domain.Account

	err := row.Scan(
		&a.UserID,
		&a.AccountNumber,
		&a.Balance,
		&a.Currency,
		&a.AccountType,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const subtractBalanceQuery = `
UPDATE accounts
SET balance = balance - $1, updated_at = now()
WHERE user_id = $2 AND balance >= $1
RETURNING user_id, account_number, balance, currency, account_type, created_at, updated_at
`

// SubtractBalance decrements the account's balance and returns the changed account.
//
// The decrement is conditional on the current balance covering the amount, so
// a concurrent transfer that drained the account between the caller's balance
// check and this statement fails here instead of overdrawing.
func (r *RepoPGS) SubtractBalance(ctx context.Context, amount decimal.Decimal, userID string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, subtractBalanceQuery, amount, userID)

	var a domain.Account

	err := row.Scan(
		&a.UserID,
		&a.AccountNumber,
		&a.Balance,
		&a.Currency,
		&a.AccountType,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrInsufficientBalance
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientBalance
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const addBalanceQuery = `
UPDATE accounts
SET balance = balance + $1, updated_at = now()
WHERE user_id = $2
RETURNING user_id, account_number, balance, currency, account_type, created_at, updated_at
`

// AddBalance increments the account's balance and returns the changed account.
func (r *RepoPGS) AddBalance(ctx context.Context, amount decimal.Decimal, userID string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, addBalanceQuery, amount, userID)

	var a domain.Account

	err := row.Scan(
		&a.UserID,
		&a.AccountNumber,
		&a.Balance,
		&a.Currency,
		&a.AccountType,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}
