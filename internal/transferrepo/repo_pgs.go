// Package transferrepo manages repository layer of transfers.
package transferrepo

import (
	"context"
	"database/sql"

	"github.com/go-dmitri/pocket-bank/internal/accountrepo"
	"github.com/go-dmitri/pocket-bank/internal/domain"
	"github.com/go-dmitri/pocket-bank/internal/transactionrepo"
	"github.com/go-dmitri/pocket-bank/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates transfer repository layer logic.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns transfer RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		conn: db,
	}
}

// Transfer moves money between two accounts.
//
// It updates both balances and appends the two mirrored ledger entries within
// a single database transaction, so all four writes become visible together
// or not at all. The sender decrement is conditional on sufficient balance,
// which closes the window between the caller's balance check and the commit.
func (r *RepoPGS) Transfer(ctx context.Context, arg domain.TransferTxParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	accountRepo := accountrepo.NewRepoPGS(tx)
	transactionRepo := transactionrepo.NewRepoPGS(tx)

	// To avoid deadlocks execute balance updates in consistent user id order.
	if arg.FromUserID < arg.ToUserID {
		result.FromAccount, err = accountRepo.SubtractBalance(ctx, arg.Amount, arg.FromUserID)
		if err != nil {
			return result, err
		}

		result.ToAccount, err = accountRepo.AddBalance(ctx, arg.Amount, arg.ToUserID)
		if err != nil {
			return result, err
		}
	} else {
		result.ToAccount, err = accountRepo.AddBalance(ctx, arg.Amount, arg.ToUserID)
		if err != nil {
			return result, err
		}

		result.FromAccount, err = accountRepo.SubtractBalance(ctx, arg.Amount, arg.FromUserID)
		if err != nil {
			return result, err
		}
	}

	result.FromEntry, err = transactionRepo.Create(ctx, domain.CreateTransactionParams{
		UserID:       arg.FromUserID,
		Amount:       arg.Amount,
		Type:         domain.TransactionTypeExpense,
		Category:     domain.CategoryTransfer,
		Description:  arg.FromDescription,
		Reference:    arg.ToAccountNumber,
		BalanceAfter: result.FromAccount.Balance,
	})
	if err != nil {
		return result, err
	}

	result.ToEntry, err = transactionRepo.Create(ctx, domain.CreateTransactionParams{
		UserID:       arg.ToUserID,
		Amount:       arg.Amount,
		Type:         domain.TransactionTypeIncome,
		Category:     domain.CategoryTransfer,
		Description:  arg.ToDescription,
		Reference:    arg.FromAccountNumber,
		BalanceAfter: result.ToAccount.Balance,
	})
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.TransferTxResult{}, errorspkg.ErrInternal
	}

	return result, nil
}
