// Package userservice manages business logic layer of users.
package userservice

import (
	"context"

	"github.com/go-dmitri/pocket-bank/internal/domain"
	"github.com/go-dmitri/pocket-bank/pkg/errorspkg"
	"github.com/go-dmitri/pocket-bank/pkg/passpkg"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error)
	Get(ctx context.Context, username string) (domain.User, error)
}

// AccountOpener opens the banking account that backs a newly registered user.
type AccountOpener interface {
	Create(ctx context.Context, userID, currency string) (domain.Account, error)
}

// Service facilitates user service layer logic.
type Service struct {
	repo            Repo
	accounts        AccountOpener
	defaultCurrency string
}

// New returns user service struct to manage user business logic.
func New(ur Repo, ao AccountOpener, defaultCurrency string) *Service {
	return &Service{
		repo:            ur,
		accounts:        ao,
		defaultCurrency: defaultCurrency,
	}
}

// NewUserWithoutPassword returns user with removed sensitive data.
func NewUserWithoutPassword(u domain.User) domain.UserWithoutPassword {
	return domain.UserWithoutPassword{
		Username:  u.Username,
		FullName:  u.FullName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// Create registers a user and opens their account.
func (s *Service) Create(ctx context.Context, username, password, fullname, email string) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var result domain.UserWithoutPassword

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	gotUser, err := s.repo.Create(ctx, domain.CreateUserParams{
		Username:       username,
		HashedPassword: hashedPassword,
		FullName:       fullname,
		Email:          email,
	})
	if err != nil {
		return result, err
	}

	if _, err := s.accounts.Create(ctx, gotUser.Username, s.defaultCurrency); err != nil {
		l.Error().Err(err).Str("username", gotUser.Username).Msg("account opening failed")
		return result, err
	}

	return NewUserWithoutPassword(gotUser), nil
}

// CheckPassword checks if the password is valid for the given username.
func (s *Service) CheckPassword(ctx context.Context, username, pass string) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var response domain.UserWithoutPassword

	gotUser, err := s.repo.Get(ctx, username)
	if err != nil {
		return response, err
	}

	err = passpkg.Check(pass, gotUser.HashedPassword)
	if err != nil {
		l.Warn().Err(err).Send()
		return response, domain.ErrWrongPassword
	}

	return NewUserWithoutPassword(gotUser), nil
}
