// Package notificationservice manages business logic layer of notifications.
package notificationservice

import (
	"context"

	"github.com/go-dmitri/pocket-bank/internal/domain"
)

// Repo provides data access layer interface needed by notification service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package notificationservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateNotificationParams) (domain.Notification, error)
	List(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id int64, userID string) (domain.Notification, error)
	MarkAllRead(ctx context.Context, userID string) error
}

// Service facilitates notification service layer logic.
type Service struct {
	repo Repo
}

// New returns notification service struct to manage notification business logic.
func New(nr Repo) *Service {
	return &Service{repo: nr}
}

// Create creates the notification and then returns it.
func (s *Service) Create(ctx context.Context, arg domain.CreateNotificationParams) (domain.Notification, error) {
	return s.repo.Create(ctx, arg)
}

// List returns the notifications of the given user, newest first.
func (s *Service) List(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	return s.repo.List(ctx, userID, unreadOnly)
}

// MarkRead marks the notification as read for the given user.
func (s *Service) MarkRead(ctx context.Context, id int64, userID string) (domain.Notification, error) {
	return s.repo.MarkRead(ctx, id, userID)
}

// MarkAllRead marks every unread notification of the given user as read.
func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllRead(ctx, userID)
}
