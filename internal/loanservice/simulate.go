package loanservice

import (
	"github.com/go-dmitri/pocket-bank/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// Simulate computes the fixed-installment (French system) figures for a loan.
//
// The monthly payment follows
//
//	payment = P * [r(1+r)^n] / [(1+r)^n - 1]
//
// where r is the monthly decimal rate (annual percent / 12 / 100) and n the
// term in months. The effective annual rate is the annualized result of
// compounding r monthly. A zero annual rate is an explicit branch: the
// principal is split evenly and no interest accrues.
//
// Simulate is pure and deterministic. Intermediate values are never rounded;
// the four reported figures are rounded to 2 decimals as the final step. The
// same function backs both the interactive simulator and the figures frozen
// onto a loan request, so the two can never diverge.
func Simulate(amount, annualRate decimal.Decimal, termMonths int32) (domain.LoanTerms, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.LoanTerms{}, domain.ErrInvalidLoanAmount
	}

	if annualRate.IsNegative() {
		return domain.LoanTerms{}, domain.ErrInvalidLoanRate
	}

	if termMonths <= 0 {
		return domain.LoanTerms{}, domain.ErrInvalidLoanTerm
	}

	term := decimal.NewFromInt32(termMonths)

	if annualRate.IsZero() {
		return domain.LoanTerms{
			MonthlyPayment:      amount.Div(term).Round(2),
			TotalToPay:          amount.Round(2),
			TotalInterest:       decimal.Zero.Round(2),
			EffectiveAnnualRate: decimal.Zero.Round(2),
		}, nil
	}

	monthlyRate := annualRate.Div(twelve).Div(hundred)

	growth := one.Add(monthlyRate).Pow(term)
	monthlyPayment := amount.Mul(monthlyRate.Mul(growth)).Div(growth.Sub(one))

	totalToPay := monthlyPayment.Mul(term)
	totalInterest := totalToPay.Sub(amount)
	effectiveAnnualRate := one.Add(monthlyRate).Pow(twelve).Sub(one).Mul(hundred)

	return domain.LoanTerms{
		MonthlyPayment:      monthlyPayment.Round(2),
		TotalToPay:          totalToPay.Round(2),
		TotalInterest:       totalInterest.Round(2),
		EffectiveAnnualRate: effectiveAnnualRate.Round(2),
	}, nil
}
