package transferservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-dmitri/pocket-bank/internal/domain"
	"github.com/go-dmitri/pocket-bank/pkg/currencypkg"
	"github.com/go-dmitri/pocket-bank/pkg/errorspkg"
	"github.com/go-dmitri/pocket-bank/pkg/randompkg"
)

func testAccount(userID, accountNumber, balance, currency string) domain.Account {
	return domain.Account{
		UserID:        userID,
		AccountNumber: accountNumber,
		Balance:       decimal.RequireFromString(balance),
		Currency:      currency,
		AccountType:   domain.AccountTypeSavings,
		CreatedAt:     time.Now().Truncate(time.Second).UTC(),
	}
}

func TestTransfer(t *testing.T) {
	sender := testAccount(randompkg.Owner(), "1111111111", "500", currencypkg.USD)
	recipient := testAccount(randompkg.Owner(), "2222222222", "200", currencypkg.USD)
	eurRecipient := testAccount(randompkg.Owner(), "3333333333", "200", currencypkg.EUR)

	amount := decimal.RequireFromString("100")

	wantTxParams := domain.TransferTxParams{
		FromUserID:        sender.UserID,
		FromAccountNumber: sender.AccountNumber,
		ToUserID:          recipient.UserID,
		ToAccountNumber:   recipient.AccountNumber,
		Amount:            amount,
		FromDescription:   "Transfer to account " + recipient.AccountNumber,
		ToDescription:     "Transfer from account " + sender.AccountNumber,
	}

	senderAfter := sender
	senderAfter.Balance = decimal.RequireFromString("400")
	recipientAfter := recipient
	recipientAfter.Balance = decimal.RequireFromString("300")

	wantResult := domain.TransferTxResult{
		FromAccount: senderAfter,
		ToAccount:   recipientAfter,
		FromEntry: domain.Transaction{
			ID:           1,
			UserID:       sender.UserID,
			Amount:       amount,
			Type:         domain.TransactionTypeExpense,
			Category:     domain.CategoryTransfer,
			Description:  wantTxParams.FromDescription,
			Reference:    recipient.AccountNumber,
			BalanceAfter: senderAfter.Balance,
		},
		ToEntry: domain.Transaction{
			ID:           2,
			UserID:       recipient.UserID,
			Amount:       amount,
			Type:         domain.TransactionTypeIncome,
			Category:     domain.CategoryTransfer,
			Description:  wantTxParams.ToDescription,
			Reference:    sender.AccountNumber,
			BalanceAfter: recipientAfter.Balance,
		},
	}

	testCases := []struct {
		name          string
		arg           domain.CreateTransferParams
		buildStubs    func(repo *MockRepo, accountService *MockAccountService)
		checkResponse func(res domain.TransferTxResult, err error)
	}{
		{
			name: "NegativeAmount",
			arg: domain.CreateTransferParams{
				ToAccountNumber: recipient.AccountNumber,
				Amount:          decimal.RequireFromString("-100"),
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrNegativeAmount.Error())
			},
		},
		{
			name: "ZeroAmount",
			arg: domain.CreateTransferParams{
				ToAccountNumber: recipient.AccountNumber,
				Amount:          decimal.Zero,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrNegativeAmount.Error())
			},
		},
		{
			name: "SenderNotFound",
			arg: domain.CreateTransferParams{
				ToAccountNumber: recipient.AccountNumber,
				Amount:          amount,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(sender.UserID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)

				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrSenderAccountNotFound.Error())
			},
		},
		{
			name: "SenderLookupError",
			arg: domain.CreateTransferParams{
				ToAccountNumber: recipient.AccountNumber,
				Amount:          amount,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(sender.UserID)).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)

				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, errorspkg.ErrInternal.Error())
			},
		},
		{
			// The funds check runs before the recipient is ever resolved.
			name: "InsufficientBalance",
			arg: domain.CreateTransferParams{
				ToAccountNumber: recipient.AccountNumber,
				Amount:          decimal.RequireFromString("500.01"),
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(sender.UserID)).
					Times(1).
					Return(sender, nil)

				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInsufficientBalance.Error())
			},
		},
		{
			name: "RecipientNotFound",
			arg: domain.CreateTransferParams{
				ToAccountNumber: "0000000000",
				Amount:          amount,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(sender.UserID)).
					Times(1).
					Return(sender, nil)

				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Eq("0000000000")).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)

				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrRecipientAccountNotFound.Error())
			},
		},
		{
			name: "SelfTransfer",
			arg: domain.CreateTransferParams{
				ToAccountNumber: sender.AccountNumber,
				Amount:          amount,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(sender.UserID)).
					Times(1).
					Return(sender, nil)

				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Eq(sender.AccountNumber)).
					Times(1).
					Return(sender, nil)

				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrSelfTransfer.Error())
			},
		},
		{
			name: "CurrencyMismatch",
			arg: domain.CreateTransferParams{
				ToAccountNumber: eurRecipient.AccountNumber,
				Amount:          amount,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(sender.UserID)).
					Times(1).
					Return(sender, nil)

				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Eq(eurRecipient.AccountNumber)).
					Times(1).
					Return(eurRecipient, nil)

				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrCurrencyMismatch.Error())
			},
		},
		{
			name: "OK",
			arg: domain.CreateTransferParams{
				ToAccountNumber: recipient.AccountNumber,
				Amount:          amount,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(sender.UserID)).
					Times(1).
					Return(sender, nil)

				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Eq(recipient.AccountNumber)).
					Times(1).
					Return(recipient, nil)

				repo.EXPECT().Transfer(gomock.Any(), gomock.Eq(wantTxParams)).
					Times(1).
					Return(wantResult, nil)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.NoError(t, err)
				require.Equal(t, wantResult, res)
				require.True(t, res.FromAccount.Balance.Equal(decimal.RequireFromString("400")))
				require.True(t, res.ToAccount.Balance.Equal(decimal.RequireFromString("300")))
			},
		},
		{
			name: "CustomDescription",
			arg: domain.CreateTransferParams{
				ToAccountNumber: recipient.AccountNumber,
				Amount:          amount,
				Description:     "Rent",
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(sender.UserID)).
					Times(1).
					Return(sender, nil)

				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Eq(recipient.AccountNumber)).
					Times(1).
					Return(recipient, nil)

				custom := wantTxParams
				custom.FromDescription = "Rent"

				repo.EXPECT().Transfer(gomock.Any(), gomock.Eq(custom)).
					Times(1).
					Return(wantResult, nil)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.NoError(t, err)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			accountService := NewMockAccountService(ctrl)
			service := New(repo, accountService)

			tc.buildStubs(repo, accountService)

			res, err := service.Transfer(context.Background(), sender.UserID, tc.arg)

			tc.checkResponse(res, err)
		})
	}
}
