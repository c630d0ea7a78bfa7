// Package loanrepo manages repository layer of loans.
package loanrepo

import (
	"context"
	"database/sql"

	"github.com/go-dmitri/pocket-bank/internal/domain"
	"github.com/go-dmitri/pocket-bank/pkg/dbpkg"
	"github.com/go-dmitri/pocket-bank/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates loan repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns loan RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const loanColumns = `
	id, user_id, amount, annual_rate, term_months, monthly_payment, total_to_pay,
	status, purpose, notes, created_at, updated_at, processed_at, rejection_reason
`

func scanLoan(row interface{ Scan(...interface{}) error }) (domain.Loan, error) {
	var (
		l               domain.Loan
		notes           sql.NullString
		updatedAt       sql.NullTime
		processedAt     sql.NullTime
		rejectionReason sql.NullString
	)

	err := row.Scan(
		&l.ID,
		&l.UserID,
		&l.Amount,
		&l.AnnualRate,
		&l.TermMonths,
		&l.MonthlyPayment,
		&l.TotalToPay,
		&l.Status,
		&l.Purpose,
		&notes,
		&l.CreatedAt,
		&updatedAt,
		&processedAt,
		&rejectionReason,
	)
	if err != nil {
		return l, err
	}

	l.Notes = notes.String
	l.RejectionReason = rejectionReason.String

	if updatedAt.Valid {
		l.UpdatedAt = &updatedAt.Time
	}

	if processedAt.Valid {
		l.ProcessedAt = &processedAt.Time
	}

	return l, nil
}

const createQuery = `
INSERT INTO loans (
    user_id, amount, annual_rate, term_months, monthly_payment, total_to_pay, status, purpose, notes
) VALUES (
    $1, $2, $3, $4, $5, $6, 'PENDING', $7, NULLIF($8, '')
) RETURNING` + loanColumns

// Create persists a pending loan request and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateLoanParams) (domain.Loan, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.UserID,
		arg.Amount,
		arg.AnnualRate,
		arg.TermMonths,
		arg.MonthlyPayment,
		arg.TotalToPay,
		arg.Purpose,
		arg.Notes,
	)

	loan, err := scanLoan(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "loans_user_id_fkey" {
				return loan, domain.ErrOwnerNotFound
			}
		}

		return loan, errorspkg.ErrInternal
	}

	return loan, nil
}

const getQuery = `
SELECT` + loanColumns + `
FROM loans
WHERE id = $1
`

// Get returns the loan with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Loan, error) {
	l := zerolog.Ctx(ctx)

	loan, err := scanLoan(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return loan, domain.ErrLoanNotFound
		}

		return loan, errorspkg.ErrInternal
	}

	return loan, nil
}

const listQuery = `
SELECT` + loanColumns + `
FROM loans
WHERE user_id = $1 AND ($2 = '' OR status = $2)
ORDER BY created_at DESC, id DESC
`

// List returns the loans of the given user, newest first, optionally filtered
// by status.
func (r *RepoPGS) List(ctx context.Context, userID string, status domain.LoanStatus) ([]domain.Loan, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, userID, string(status))
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Loan{}

	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, loan)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const updateStatusQuery = `
UPDATE loans
SET status = $2,
    updated_at = now(),
    processed_at = now(),
    rejection_reason = NULLIF($3, '')
WHERE id = $1 AND status = 'PENDING'
RETURNING` + loanColumns

// UpdateStatus moves a pending loan to the given status and stamps the
// processing time. A loan that already left the pending state is reported as
// already processed rather than silently overwritten.
func (r *RepoPGS) UpdateStatus(ctx context.Context, id int64, status domain.LoanStatus, rejectionReason string) (domain.Loan, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateStatusQuery, id, string(status), rejectionReason)

	loan, err := scanLoan(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			if _, getErr := r.Get(ctx, id); getErr == domain.ErrLoanNotFound {
				return loan, domain.ErrLoanNotFound
			}

			return loan, domain.ErrLoanAlreadyProcessed
		}

		return loan, errorspkg.ErrInternal
	}

	return loan, nil
}
