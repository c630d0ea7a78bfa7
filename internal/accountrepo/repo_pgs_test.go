package accountrepo

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-dmitri/pocket-bank/internal/domain"
	"github.com/go-dmitri/pocket-bank/internal/userrepo"
	"github.com/go-dmitri/pocket-bank/pkg/currencypkg"
	"github.com/go-dmitri/pocket-bank/pkg/dbpkg"
	"github.com/go-dmitri/pocket-bank/pkg/passpkg"
	"github.com/go-dmitri/pocket-bank/pkg/randompkg"
)

func createRandomUser(t *testing.T, repo *userrepo.RepoPGS) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(10))
	require.NoError(t, err)

	user, err := repo.Create(context.Background(), domain.CreateUserParams{
		Username:       randompkg.Owner(),
		HashedPassword: hashedPassword,
		FullName:       randompkg.Owner(),
		Email:          randompkg.Email(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, user)

	return user
}

func createRandomAccount(t *testing.T, repo *RepoPGS, userID, balance string) domain.Account {
	t.Helper()

	arg := domain.CreateAccountParams{
		UserID:        userID,
		AccountNumber: randompkg.AccountNumber(),
		Balance:       decimal.RequireFromString(balance),
		Currency:      currencypkg.USD,
		AccountType:   domain.AccountTypeSavings,
	}

	account, err := repo.Create(context.Background(), arg)
	require.NoError(t, err)
	require.NotEmpty(t, account)

	require.Equal(t, arg.UserID, account.UserID)
	require.Equal(t, arg.AccountNumber, account.AccountNumber)
	require.True(t, account.Balance.Equal(arg.Balance))
	require.Equal(t, arg.Currency, account.Currency)
	require.Equal(t, arg.AccountType, account.AccountType)
	require.NotZero(t, account.CreatedAt)

	return account
}

func TestCreate(t *testing.T) {
	tx := dbpkg.SetupTX(t, "postgres")
	repo := NewRepoPGS(tx)
	user := createRandomUser(t, userrepo.NewRepoPGS(tx))

	createRandomAccount(t, repo, user.Username, "1000")
}

func TestCreateUnknownOwner(t *testing.T) {
	tx := dbpkg.SetupTX(t, "postgres")
	repo := NewRepoPGS(tx)

	_, err := repo.Create(context.Background(), domain.CreateAccountParams{
		UserID:        "nosuchuser",
		AccountNumber: randompkg.AccountNumber(),
		Balance:       decimal.Zero,
		Currency:      currencypkg.USD,
		AccountType:   domain.AccountTypeSavings,
	})
	require.EqualError(t, err, domain.ErrOwnerNotFound.Error())
}

func TestCreateDuplicate(t *testing.T) {
	tx := dbpkg.SetupTX(t, "postgres")
	repo := NewRepoPGS(tx)
	user := createRandomUser(t, userrepo.NewRepoPGS(tx))

	createRandomAccount(t, repo, user.Username, "1000")

	_, err := repo.Create(context.Background(), domain.CreateAccountParams{
		UserID:        user.Username,
		AccountNumber: randompkg.AccountNumber(),
		Balance:       decimal.Zero,
		Currency:      currencypkg.USD,
		AccountType:   domain.AccountTypeSavings,
	})
	require.EqualError(t, err, domain.ErrAccountAlreadyExists.Error())
}

func TestGet(t *testing.T) {
	tx := dbpkg.SetupTX(t, "postgres")
	repo := NewRepoPGS(tx)
	user := createRandomUser(t, userrepo.NewRepoPGS(tx))
	account := createRandomAccount(t, repo, user.Username, "1000")

	got, err := repo.Get(context.Background(), user.Username)
	require.NoError(t, err)
	require.Equal(t, account.AccountNumber, got.AccountNumber)
	require.True(t, got.Balance.Equal(account.Balance))

	_, err = repo.Get(context.Background(), "nosuchuser")
	require.EqualError(t, err, domain.ErrAccountNotFound.Error())
}

func TestGetByNumber(t *testing.T) {
	tx := dbpkg.SetupTX(t, "postgres")
	repo := NewRepoPGS(tx)
	user := createRandomUser(t, userrepo.NewRepoPGS(tx))
	account := createRandomAccount(t, repo, user.Username, "1000")

	got, err := repo.GetByNumber(context.Background(), account.AccountNumber)
	require.NoError(t, err)
	require.Equal(t, user.Username, got.UserID)

	_, err = repo.GetByNumber(context.Background(), "0000000000")
	require.EqualError(t, err, domain.ErrAccountNotFound.Error())
}

func TestSubtractBalance(t *testing.T) {
	tx := dbpkg.SetupTX(t, "postgres")
	repo := NewRepoPGS(tx)
	user := createRandomUser(t, userrepo.NewRepoPGS(tx))
	createRandomAccount(t, repo, user.Username, "500")

	got, err := repo.SubtractBalance(context.Background(), decimal.RequireFromString("100"), user.Username)
	require.NoError(t, err)
	require.True(t, got.Balance.Equal(decimal.RequireFromString("400")))

	// The conditional update refuses to overdraw even though the earlier
	// read saw sufficient funds.
	_, err = repo.SubtractBalance(context.Background(), decimal.RequireFromString("400.01"), user.Username)
	require.EqualError(t, err, domain.ErrInsufficientBalance.Error())

	got, err = repo.Get(context.Background(), user.Username)
	require.NoError(t, err)
	require.True(t, got.Balance.Equal(decimal.RequireFromString("400")))
}

func TestAddBalance(t *testing.T) {
	tx := dbpkg.SetupTX(t, "postgres")
	repo := NewRepoPGS(tx)
	user := createRandomUser(t, userrepo.NewRepoPGS(tx))
	createRandomAccount(t, repo, user.Username, "200")

	got, err := repo.AddBalance(context.Background(), decimal.RequireFromString("100"), user.Username)
	require.NoError(t, err)
	require.True(t, got.Balance.Equal(decimal.RequireFromString("300")))

	_, err = repo.AddBalance(context.Background(), decimal.RequireFromString("100"), "nosuchuser")
	require.EqualError(t, err, domain.ErrAccountNotFound.Error())
}
