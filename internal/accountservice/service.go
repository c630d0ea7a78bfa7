// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/go-dmitri/pocket-bank/internal/domain"
	"github.com/go-dmitri/pocket-bank/pkg/randompkg"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, userID string) (domain.Account, error)
	GetByNumber(ctx context.Context, accountNumber string) (domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo           Repo
	openingBalance decimal.Decimal
}

// New returns account service struct to manage account business logic.
// Accounts are opened with the given balance.
func New(ar Repo, openingBalance decimal.Decimal) *Service {
	return &Service{
		repo:           ar,
		openingBalance: openingBalance,
	}
}

// Create opens a savings account for the given user with a generated account
// number and the configured opening balance.
func (s *Service) Create(ctx context.Context, userID, currency string) (domain.Account, error) {
	return s.repo.Create(ctx, domain.CreateAccountParams{
		UserID:        userID,
		AccountNumber: randompkg.AccountNumber(),
		Balance:       s.openingBalance,
		Currency:      currency,
		AccountType:   domain.AccountTypeSavings,
	})
}

// Get returns the account owned by the given user.
func (s *Service) Get(ctx context.Context, userID string) (domain.Account, error) {
	return s.repo.Get(ctx, userID)
}

// GetByNumber returns the account with the given account number.
func (s *Service) GetByNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	return s.repo.GetByNumber(ctx, accountNumber)
}
