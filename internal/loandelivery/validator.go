package loandelivery

import (
	"github.com/go-dmitri/pocket-bank/internal/domain"
	"github.com/go-playground/validator/v10"
)

// ValidLoanStatus checks that the bound value names a known loan status.
var ValidLoanStatus validator.Func = func(fieldLevel validator.FieldLevel) bool {
	status, ok := fieldLevel.Field().Interface().(string)
	if !ok {
		return false
	}

	switch domain.LoanStatus(status) {
	case domain.LoanStatusPending,
		domain.LoanStatusApproved,
		domain.LoanStatusRejected,
		domain.LoanStatusActive,
		domain.LoanStatusCompleted,
		domain.LoanStatusCancelled:
		return true
	}

	return false
}
