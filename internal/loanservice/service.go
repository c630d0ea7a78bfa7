// Package loanservice manages business logic layer of loans.
package loanservice

import (
	"context"
	"fmt"

	"github.com/go-dmitri/pocket-bank/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by loan service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package loanservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateLoanParams) (domain.Loan, error)
	Get(ctx context.Context, id int64) (domain.Loan, error)
	List(ctx context.Context, userID string, status domain.LoanStatus) ([]domain.Loan, error)
	UpdateStatus(ctx context.Context, id int64, status domain.LoanStatus, rejectionReason string) (domain.Loan, error)
}

// NotificationService provides the notification sink interface needed by loan
// service layer. Notifications are best-effort only.
type NotificationService interface {
	Create(ctx context.Context, arg domain.CreateNotificationParams) (domain.Notification, error)
}

// Service facilitates loan service layer logic.
type Service struct {
	repo          Repo
	notifications NotificationService
}

// New returns loan service struct to manage loan business logic.
func New(lr Repo, ns NotificationService) *Service {
	return &Service{
		repo:          lr,
		notifications: ns,
	}
}

// Request validates and persists a new pending loan request. The installment
// figures are the Simulate output for the requested terms, frozen at creation
// time.
func (s *Service) Request(ctx context.Context, userID string, amount, annualRate decimal.Decimal, termMonths int32, purpose, notes string) (domain.Loan, error) {
	terms, err := Simulate(amount, annualRate, termMonths)
	if err != nil {
		return domain.Loan{}, err
	}

	loan, err := s.repo.Create(ctx, domain.CreateLoanParams{
		UserID:         userID,
		Amount:         amount,
		AnnualRate:     annualRate,
		TermMonths:     termMonths,
		MonthlyPayment: terms.MonthlyPayment,
		TotalToPay:     terms.TotalToPay,
		Purpose:        purpose,
		Notes:          notes,
	})
	if err != nil {
		return loan, err
	}

	s.notify(ctx, domain.CreateNotificationParams{
		UserID:        loan.UserID,
		Type:          domain.NotificationGeneral,
		Title:         "Loan Request Received",
		Message:       fmt.Sprintf("Your loan request for $%s has been received and is under review.", loan.Amount.StringFixed(2)),
		RelatedLoanID: &loan.ID,
	})

	return loan, nil
}

// Get returns the loan with the given id.
func (s *Service) Get(ctx context.Context, id int64) (domain.Loan, error) {
	return s.repo.Get(ctx, id)
}

// List returns the loans of the given user, newest first, optionally filtered
// by status.
func (s *Service) List(ctx context.Context, userID string, status domain.LoanStatus) ([]domain.Loan, error) {
	return s.repo.List(ctx, userID, status)
}

// SetStatus processes a pending loan. APPROVED and REJECTED are the only
// accepted target statuses; the repository refuses loans that already left
// the pending state. The owner is notified best-effort.
func (s *Service) SetStatus(ctx context.Context, id int64, status domain.LoanStatus, rejectionReason string) (domain.Loan, error) {
	if status != domain.LoanStatusApproved && status != domain.LoanStatusRejected {
		return domain.Loan{}, domain.ErrInvalidLoanStatus
	}

	loan, err := s.repo.UpdateStatus(ctx, id, status, rejectionReason)
	if err != nil {
		return loan, err
	}

	switch status {
	case domain.LoanStatusApproved:
		s.notify(ctx, domain.CreateNotificationParams{
			UserID:        loan.UserID,
			Type:          domain.NotificationLoanApproved,
			Title:         "Loan Approved",
			Message:       fmt.Sprintf("Your loan of $%s has been approved.", loan.Amount.StringFixed(2)),
			RelatedLoanID: &loan.ID,
		})
	case domain.LoanStatusRejected:
		msg := "Your loan request has been rejected."
		if rejectionReason != "" {
			msg += " " + rejectionReason
		}

		s.notify(ctx, domain.CreateNotificationParams{
			UserID:        loan.UserID,
			Type:          domain.NotificationLoanRejected,
			Title:         "Loan Rejected",
			Message:       msg,
			RelatedLoanID: &loan.ID,
		})
	}

	return loan, nil
}

// notify creates a notification and swallows any failure. A lost notification
// must never fail the primary operation.
func (s *Service) notify(ctx context.Context, arg domain.CreateNotificationParams) {
	if _, err := s.notifications.Create(ctx, arg); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("user_id", arg.UserID).Msg("loan notification dropped")
	}
}
