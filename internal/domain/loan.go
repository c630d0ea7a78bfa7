package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidLoanAmount indicates a non-positive loan amount.
	ErrInvalidLoanAmount = errors.New("loan amount must be greater than zero")
	// ErrInvalidLoanRate indicates a negative annual interest rate.
	ErrInvalidLoanRate = errors.New("interest rate cannot be negative")
	// ErrInvalidLoanTerm indicates a non-positive loan term.
	ErrInvalidLoanTerm = errors.New("loan term must be greater than zero months")
	// ErrLoanNotFound indicates that the loan is not found.
	ErrLoanNotFound = errors.New("loan not found")
	// ErrLoanAlreadyProcessed indicates that the loan has already left the pending state.
	ErrLoanAlreadyProcessed = errors.New("loan is not pending")
	// ErrInvalidLoanStatus indicates an unsupported target loan status.
	ErrInvalidLoanStatus = errors.New("invalid loan status")
)

// LoanStatus is the lifecycle state of a loan request.
type LoanStatus string

// All loan statuses. Only PENDING -> {APPROVED, REJECTED} is driven by an
// operation; the remaining states are administrative.
const (
	LoanStatusPending   LoanStatus = "PENDING"
	LoanStatusApproved  LoanStatus = "APPROVED"
	LoanStatusRejected  LoanStatus = "REJECTED"
	LoanStatusActive    LoanStatus = "ACTIVE"
	LoanStatusCompleted LoanStatus = "COMPLETED"
	LoanStatusCancelled LoanStatus = "CANCELLED"
)

// LoanTerms holds the derived figures of a loan simulation. A value is either
// complete or not produced at all.
type LoanTerms struct {
	MonthlyPayment      decimal.Decimal `json:"monthly_payment"`
	TotalToPay          decimal.Decimal `json:"total_to_pay"`
	TotalInterest       decimal.Decimal `json:"total_interest"`
	EffectiveAnnualRate decimal.Decimal `json:"effective_annual_rate"`
}

// Loan holds a loan request together with its frozen simulation figures.
// MonthlyPayment and TotalToPay are always the simulation output for
// (Amount, AnnualRate, TermMonths) at creation time and are never edited
// independently.
type Loan struct {
	ID              int64           `json:"id"`
	UserID          string          `json:"user_id"`
	Amount          decimal.Decimal `json:"amount"`
	AnnualRate      decimal.Decimal `json:"annual_rate"`
	TermMonths      int32           `json:"term_months"`
	MonthlyPayment  decimal.Decimal `json:"monthly_payment"`
	TotalToPay      decimal.Decimal `json:"total_to_pay"`
	Status          LoanStatus      `json:"status"`
	Purpose         string          `json:"purpose"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty"`
	ProcessedAt     *time.Time      `json:"processed_at,omitempty"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
}

// CreateLoanParams is the input data to persist a pending loan request.
type CreateLoanParams struct {
	UserID         string          `json:"user_id"`
	Amount         decimal.Decimal `json:"amount"`
	AnnualRate     decimal.Decimal `json:"annual_rate"`
	TermMonths     int32           `json:"term_months"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalToPay     decimal.Decimal `json:"total_to_pay"`
	Purpose        string          `json:"purpose"`
	Notes          string          `json:"notes"`
}
