// Package transactionservice manages business logic layer of ledger transactions.
package transactionservice

import (
	"context"

	"github.com/go-dmitri/pocket-bank/internal/domain"
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	Get(ctx context.Context, id int64) (domain.Transaction, error)
	List(ctx context.Context, arg domain.ListTransactionsParams) ([]domain.Transaction, error)
}

// Service facilitates transaction service layer logic.
type Service struct {
	repo Repo
}

// New returns transaction service struct to manage transaction business logic.
func New(tr Repo) *Service {
	return &Service{repo: tr}
}

// Get returns the ledger entry with the given id.
func (s *Service) Get(ctx context.Context, id int64) (domain.Transaction, error) {
	return s.repo.Get(ctx, id)
}

// List returns a page of the user's ledger entries, newest first.
func (s *Service) List(ctx context.Context, userID string, pageSize, pageID int32) ([]domain.Transaction, error) {
	return s.repo.List(ctx, domain.ListTransactionsParams{
		UserID: userID,
		Limit:  pageSize,
		Offset: (pageID - 1) * pageSize,
	})
}
