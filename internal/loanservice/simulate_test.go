package loanservice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-dmitri/pocket-bank/internal/domain"
	"github.com/go-dmitri/pocket-bank/pkg/randompkg"
)

func TestSimulate(t *testing.T) {
	testCases := []struct {
		name       string
		amount     string
		annualRate string
		termMonths int32
		wantErr    error
		want       domain.LoanTerms
	}{
		{
			name:       "OK",
			amount:     "10000",
			annualRate: "12",
			termMonths: 12,
			want: domain.LoanTerms{
				MonthlyPayment:      decimal.RequireFromString("888.49"),
				TotalToPay:          decimal.RequireFromString("10661.85"),
				TotalInterest:       decimal.RequireFromString("661.85"),
				EffectiveAnnualRate: decimal.RequireFromString("12.68"),
			},
		},
		{
			name:       "ZeroRate",
			amount:     "5000",
			annualRate: "0",
			termMonths: 10,
			want: domain.LoanTerms{
				MonthlyPayment:      decimal.RequireFromString("500"),
				TotalToPay:          decimal.RequireFromString("5000"),
				TotalInterest:       decimal.Zero,
				EffectiveAnnualRate: decimal.Zero,
			},
		},
		{
			name:       "ZeroRateUnevenSplit",
			amount:     "1000",
			annualRate: "0",
			termMonths: 3,
			want: domain.LoanTerms{
				MonthlyPayment:      decimal.RequireFromString("333.33"),
				TotalToPay:          decimal.RequireFromString("1000"),
				TotalInterest:       decimal.Zero,
				EffectiveAnnualRate: decimal.Zero,
			},
		},
		{
			name:       "ZeroAmount",
			amount:     "0",
			annualRate: "12",
			termMonths: 12,
			wantErr:    domain.ErrInvalidLoanAmount,
		},
		{
			name:       "NegativeAmount",
			amount:     "-10000",
			annualRate: "12",
			termMonths: 12,
			wantErr:    domain.ErrInvalidLoanAmount,
		},
		{
			name:       "NegativeRate",
			amount:     "10000",
			annualRate: "-1",
			termMonths: 12,
			wantErr:    domain.ErrInvalidLoanRate,
		},
		{
			name:       "ZeroTerm",
			amount:     "10000",
			annualRate: "12",
			termMonths: 0,
			wantErr:    domain.ErrInvalidLoanTerm,
		},
		{
			name:       "NegativeTerm",
			amount:     "10000",
			annualRate: "12",
			termMonths: -6,
			wantErr:    domain.ErrInvalidLoanTerm,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			got, err := Simulate(
				decimal.RequireFromString(tc.amount),
				decimal.RequireFromString(tc.annualRate),
				tc.termMonths,
			)

			if tc.wantErr != nil {
				require.EqualError(t, err, tc.wantErr.Error())
				require.Empty(t, got)

				return
			}

			require.NoError(t, err)
			require.True(t, got.MonthlyPayment.Equal(tc.want.MonthlyPayment),
				"monthly payment: got %s, want %s", got.MonthlyPayment, tc.want.MonthlyPayment)
			require.True(t, got.TotalToPay.Equal(tc.want.TotalToPay),
				"total to pay: got %s, want %s", got.TotalToPay, tc.want.TotalToPay)
			require.True(t, got.TotalInterest.Equal(tc.want.TotalInterest),
				"total interest: got %s, want %s", got.TotalInterest, tc.want.TotalInterest)
			require.True(t, got.EffectiveAnnualRate.Equal(tc.want.EffectiveAnnualRate),
				"effective annual rate: got %s, want %s", got.EffectiveAnnualRate, tc.want.EffectiveAnnualRate)
		})
	}
}

func TestSimulateInvariants(t *testing.T) {
	for i := 0; i < 100; i++ {
		amount := decimal.NewFromInt(int64(randompkg.IntBetween(100, 1000000)))
		annualRate := decimal.NewFromInt(int64(randompkg.IntBetween(1, 40)))
		termMonths := int32(randompkg.IntBetween(1, 360))

		terms, err := Simulate(amount, annualRate, termMonths)
		require.NoError(t, err)

		term := decimal.NewFromInt32(termMonths)

		// The four figures are rounded independently, so the identities
		// only hold up to the accumulated rounding error.
		tolerance := decimal.RequireFromString("0.01").Mul(term)

		require.True(t, terms.MonthlyPayment.IsPositive())
		require.True(t, terms.TotalToPay.GreaterThan(amount),
			"total to pay %s must exceed principal %s", terms.TotalToPay, amount)
		require.True(t, terms.TotalInterest.IsPositive())

		diff := terms.MonthlyPayment.Mul(term).Sub(terms.TotalToPay).Abs()
		require.True(t, diff.LessThanOrEqual(tolerance),
			"monthly %s x %d deviates from total %s by %s", terms.MonthlyPayment, termMonths, terms.TotalToPay, diff)

		require.True(t, terms.TotalToPay.Sub(amount).Equal(terms.TotalInterest),
			"interest %s must equal total %s minus principal %s", terms.TotalInterest, terms.TotalToPay, amount)
	}
}

func TestSimulateIsDeterministic(t *testing.T) {
	amount := decimal.RequireFromString("12345.67")
	annualRate := decimal.RequireFromString("17.9")

	first, err := Simulate(amount, annualRate, 48)
	require.NoError(t, err)

	second, err := Simulate(amount, annualRate, 48)
	require.NoError(t, err)

	require.True(t, first.MonthlyPayment.Equal(second.MonthlyPayment))
	require.True(t, first.TotalToPay.Equal(second.TotalToPay))
	require.True(t, first.TotalInterest.Equal(second.TotalInterest))
	require.True(t, first.EffectiveAnnualRate.Equal(second.EffectiveAnnualRate))
}
