// Package transferservice manages business logic layer of transfers.
package transferservice

import (
	"context"
	"fmt"

	"github.com/go-dmitri/pocket-bank/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Repo interface {
	Transfer(ctx context.Context, arg domain.TransferTxParams) (domain.TransferTxResult, error)
}

// AccountService provides the account lookups needed by transfer service layer.
type AccountService interface {
	Get(ctx context.Context, userID string) (domain.Account, error)
	GetByNumber(ctx context.Context, accountNumber string) (domain.Account, error)
}

// Service facilitates transfer service layer logic.
type Service struct {
	repo           Repo
	accountService AccountService
}

// New returns transfer service struct to manage transfer business logic.
func New(tr Repo, as AccountService) *Service {
	return &Service{
		repo:           tr,
		accountService: as,
	}
}

// validRequest checks the transfer preconditions in order, short-circuiting
// on the first failure, and resolves both parties.
func (s *Service) validRequest(ctx context.Context, fromUserID string, arg domain.CreateTransferParams) (domain.Account, domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var none domain.Account

	if arg.Amount.LessThanOrEqual(decimal.Zero) {
		l.Info().Str("amount", arg.Amount.String()).Msg("rejected transfer amount")
		return none, none, domain.ErrNegativeAmount
	}

	fromAccount, err := s.accountService.Get(ctx, fromUserID)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			return none, none, domain.ErrSenderAccountNotFound
		}

		l.Error().Err(err).Send()

		return none, none, err
	}

	if fromAccount.Balance.LessThan(arg.Amount) {
		return none, none, domain.ErrInsufficientBalance
	}

	toAccount, err := s.accountService.GetByNumber(ctx, arg.ToAccountNumber)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			return none, none, domain.ErrRecipientAccountNotFound
		}

		l.Error().Err(err).Send()

		return none, none, err
	}

	if fromAccount.UserID == toAccount.UserID {
		return none, none, domain.ErrSelfTransfer
	}

	if fromAccount.Currency != toAccount.Currency {
		return none, none, domain.ErrCurrencyMismatch
	}

	return fromAccount, toAccount, nil
}

// Transfer checks if the transfer request is valid and then executes it.
//
// The commit itself is a single repository transaction; once Transfer returns
// the move either happened in full, with both mirrored ledger entries, or not
// at all.
func (s *Service) Transfer(ctx context.Context, fromUserID string, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	fromAccount, toAccount, err := s.validRequest(ctx, fromUserID, arg)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	fromDescription := arg.Description
	if fromDescription == "" {
		fromDescription = fmt.Sprintf("Transfer to account %s", toAccount.AccountNumber)
	}

	return s.repo.Transfer(ctx, domain.TransferTxParams{
		FromUserID:        fromAccount.UserID,
		FromAccountNumber: fromAccount.AccountNumber,
		ToUserID:          toAccount.UserID,
		ToAccountNumber:   toAccount.AccountNumber,
		Amount:            arg.Amount,
		FromDescription:   fromDescription,
		ToDescription:     fmt.Sprintf("Transfer from account %s", fromAccount.AccountNumber),
	})
}
