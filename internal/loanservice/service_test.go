package loanservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-dmitri/pocket-bank/internal/domain"
	"github.com/go-dmitri/pocket-bank/pkg/errorspkg"
	"github.com/go-dmitri/pocket-bank/pkg/randompkg"
)

func pendingLoan(id int64, userID string) domain.Loan {
	return domain.Loan{
		ID:             id,
		UserID:         userID,
		Amount:         decimal.RequireFromString("10000"),
		AnnualRate:     decimal.RequireFromString("12"),
		TermMonths:     12,
		MonthlyPayment: decimal.RequireFromString("888.49"),
		TotalToPay:     decimal.RequireFromString("10661.85"),
		Status:         domain.LoanStatusPending,
		Purpose:        "Home improvement",
		CreatedAt:      time.Now().Truncate(time.Second).UTC(),
	}
}

func TestRequest(t *testing.T) {
	testUser := randompkg.Owner()
	testLoan := pendingLoan(1, testUser)

	testCases := []struct {
		name          string
		amount        string
		annualRate    string
		termMonths    int32
		buildStubs    func(repo *MockRepo, notifications *MockNotificationService)
		checkResponse func(loan domain.Loan, err error)
	}{
		{
			name:       "OK",
			amount:     "10000",
			annualRate: "12",
			termMonths: 12,
			buildStubs: func(repo *MockRepo, notifications *MockNotificationService) {
				arg := domain.CreateLoanParams{
					UserID:         testUser,
					Amount:         decimal.RequireFromString("10000"),
					AnnualRate:     decimal.RequireFromString("12"),
					TermMonths:     12,
					MonthlyPayment: decimal.RequireFromString("888.49"),
					TotalToPay:     decimal.RequireFromString("10661.85"),
					Purpose:        "Home improvement",
				}

				repo.EXPECT().Create(gomock.Any(), gomock.Eq(arg)).
					Times(1).
					Return(testLoan, nil)

				notifications.EXPECT().Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Notification{}, nil)
			},
			checkResponse: func(loan domain.Loan, err error) {
				require.NoError(t, err)
				require.Equal(t, testLoan, loan)
			},
		},
		{
			name:       "InvalidAmount",
			amount:     "-10000",
			annualRate: "12",
			termMonths: 12,
			buildStubs: func(repo *MockRepo, notifications *MockNotificationService) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
				notifications.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(loan domain.Loan, err error) {
				require.Empty(t, loan)
				require.EqualError(t, err, domain.ErrInvalidLoanAmount.Error())
			},
		},
		{
			name:       "RepoError",
			amount:     "10000",
			annualRate: "12",
			termMonths: 12,
			buildStubs: func(repo *MockRepo, notifications *MockNotificationService) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Loan{}, errorspkg.ErrInternal)

				notifications.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(loan domain.Loan, err error) {
				require.Empty(t, loan)
				require.EqualError(t, err, errorspkg.ErrInternal.Error())
			},
		},
		{
			name:       "NotificationFailureIsSwallowed",
			amount:     "10000",
			annualRate: "12",
			termMonths: 12,
			buildStubs: func(repo *MockRepo, notifications *MockNotificationService) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(testLoan, nil)

				notifications.EXPECT().Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Notification{}, errorspkg.ErrInternal)
			},
			checkResponse: func(loan domain.Loan, err error) {
				require.NoError(t, err)
				require.Equal(t, testLoan, loan)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			notifications := NewMockNotificationService(ctrl)
			service := New(repo, notifications)

			tc.buildStubs(repo, notifications)

			loan, err := service.Request(context.Background(), testUser,
				decimal.RequireFromString(tc.amount),
				decimal.RequireFromString(tc.annualRate),
				tc.termMonths, "Home improvement", "")

			tc.checkResponse(loan, err)
		})
	}
}

func TestSetStatus(t *testing.T) {
	testUser := randompkg.Owner()
	now := time.Now().Truncate(time.Second).UTC()

	approvedLoan := pendingLoan(1, testUser)
	approvedLoan.Status = domain.LoanStatusApproved
	approvedLoan.ProcessedAt = &now

	rejectedLoan := pendingLoan(1, testUser)
	rejectedLoan.Status = domain.LoanStatusRejected
	rejectedLoan.ProcessedAt = &now
	rejectedLoan.RejectionReason = "Insufficient income"

	testCases := []struct {
		name            string
		status          domain.LoanStatus
		rejectionReason string
		buildStubs      func(repo *MockRepo, notifications *MockNotificationService)
		checkResponse   func(loan domain.Loan, err error)
	}{
		{
			name:   "Approve",
			status: domain.LoanStatusApproved,
			buildStubs: func(repo *MockRepo, notifications *MockNotificationService) {
				repo.EXPECT().
					UpdateStatus(gomock.Any(), gomock.Eq(int64(1)), gomock.Eq(domain.LoanStatusApproved), gomock.Eq("")).
					Times(1).
					Return(approvedLoan, nil)

				notifications.EXPECT().
					Create(gomock.Any(), gomock.AssignableToTypeOf(domain.CreateNotificationParams{})).
					Times(1).
					DoAndReturn(func(_ context.Context, arg domain.CreateNotificationParams) (domain.Notification, error) {
						require.Equal(t, testUser, arg.UserID)
						require.Equal(t, domain.NotificationLoanApproved, arg.Type)
						require.Equal(t, "Loan Approved", arg.Title)
						require.NotNil(t, arg.RelatedLoanID)
						require.Equal(t, int64(1), *arg.RelatedLoanID)

						return domain.Notification{}, nil
					})
			},
			checkResponse: func(loan domain.Loan, err error) {
				require.NoError(t, err)
				require.Equal(t, approvedLoan, loan)
			},
		},
		{
			name:            "Reject",
			status:          domain.LoanStatusRejected,
			rejectionReason: "Insufficient income",
			buildStubs: func(repo *MockRepo, notifications *MockNotificationService) {
				repo.EXPECT().
					UpdateStatus(gomock.Any(), gomock.Eq(int64(1)), gomock.Eq(domain.LoanStatusRejected), gomock.Eq("Insufficient income")).
					Times(1).
					Return(rejectedLoan, nil)

				notifications.EXPECT().
					Create(gomock.Any(), gomock.AssignableToTypeOf(domain.CreateNotificationParams{})).
					Times(1).
					DoAndReturn(func(_ context.Context, arg domain.CreateNotificationParams) (domain.Notification, error) {
						require.Equal(t, domain.NotificationLoanRejected, arg.Type)
						require.Equal(t, "Loan Rejected", arg.Title)
						require.Contains(t, arg.Message, "Insufficient income")

						return domain.Notification{}, nil
					})
			},
			checkResponse: func(loan domain.Loan, err error) {
				require.NoError(t, err)
				require.Equal(t, rejectedLoan, loan)
			},
		},
		{
			name:   "InvalidTargetStatus",
			status: domain.LoanStatusPending,
			buildStubs: func(repo *MockRepo, notifications *MockNotificationService) {
				repo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				notifications.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(loan domain.Loan, err error) {
				require.Empty(t, loan)
				require.EqualError(t, err, domain.ErrInvalidLoanStatus.Error())
			},
		},
		{
			name:   "AlreadyProcessed",
			status: domain.LoanStatusApproved,
			buildStubs: func(repo *MockRepo, notifications *MockNotificationService) {
				repo.EXPECT().
					UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Loan{}, domain.ErrLoanAlreadyProcessed)

				notifications.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(loan domain.Loan, err error) {
				require.Empty(t, loan)
				require.EqualError(t, err, domain.ErrLoanAlreadyProcessed.Error())
			},
		},
		{
			name:   "NotFound",
			status: domain.LoanStatusRejected,
			buildStubs: func(repo *MockRepo, notifications *MockNotificationService) {
				repo.EXPECT().
					UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Loan{}, domain.ErrLoanNotFound)

				notifications.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(loan domain.Loan, err error) {
				require.Empty(t, loan)
				require.EqualError(t, err, domain.ErrLoanNotFound.Error())
			},
		},
		{
			name:   "NotificationFailureIsSwallowed",
			status: domain.LoanStatusApproved,
			buildStubs: func(repo *MockRepo, notifications *MockNotificationService) {
				repo.EXPECT().
					UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(approvedLoan, nil)

				notifications.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Notification{}, errorspkg.ErrInternal)
			},
			checkResponse: func(loan domain.Loan, err error) {
				require.NoError(t, err)
				require.Equal(t, approvedLoan, loan)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			notifications := NewMockNotificationService(ctrl)
			service := New(repo, notifications)

			tc.buildStubs(repo, notifications)

			loan, err := service.SetStatus(context.Background(), 1, tc.status, tc.rejectionReason)

			tc.checkResponse(loan, err)
		})
	}
}
