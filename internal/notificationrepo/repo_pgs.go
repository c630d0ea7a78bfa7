// Package notificationrepo manages repository layer of notifications.
package notificationrepo

import (
	"context"
	"database/sql"

	"github.com/go-dmitri/pocket-bank/internal/domain"
	"github.com/go-dmitri/pocket-bank/pkg/dbpkg"
	"github.com/go-dmitri/pocket-bank/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates notification repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns notification RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    notifications (user_id, type, title, message, related_loan_id)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING id, user_id, type, title, message, is_read, related_loan_id, created_at
`

// Create creates the notification and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateNotificationParams) (domain.Notification, error) {
	l := zerolog.Ctx(ctx)

	var relatedLoanID sql.NullInt64
	if arg.RelatedLoanID != nil {
		relatedLoanID = sql.NullInt64{Int64: *arg.RelatedLoanID, Valid: true}
	}

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.UserID,
		arg.Type,
		arg.Title,
		arg.Message,
		relatedLoanID,
	)

	n, err := scanNotification(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "notifications_user_id_fkey" {
				return n, domain.ErrOwnerNotFound
			}
		}

		return n, errorspkg.ErrInternal
	}

	return n, nil
}

func scanNotification(row interface{ Scan(...interface{}) error }) (domain.Notification, error) {
	var (
		n             domain.Notification
		relatedLoanID sql.NullInt64
	)

	err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.Type,
		&n.Title,
		&n.Message,
		&n.IsRead,
		&relatedLoanID,
		&n.CreatedAt,
	)
	if err != nil {
		return n, err
	}

	if relatedLoanID.Valid {
		n.RelatedLoanID = &relatedLoanID.Int64
	}

	return n, nil
}

const listQuery = `
SELECT
	id, user_id, type, title, message, is_read, related_loan_id, created_at
FROM notifications
WHERE user_id = $1 AND (NOT $2 OR is_read = false)
ORDER BY created_at DESC, id DESC
`

// List returns the notifications of the given user, newest first. With
// unreadOnly set, read notifications are filtered out.
func (r *RepoPGS) List(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, userID, unreadOnly)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Notification{}

	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, n)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const markReadQuery = `
UPDATE notifications
SET is_read = true
WHERE id = $1 AND user_id = $2
RETURNING id, user_id, type, title, message, is_read, related_loan_id, created_at
`

// MarkRead marks the notification as read for the given user.
func (r *RepoPGS) MarkRead(ctx context.Context, id int64, userID string) (domain.Notification, error) {
	l := zerolog.Ctx(ctx)

	n, err := scanNotification(r.db.QueryRowContext(ctx, markReadQuery, id, userID))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return n, domain.ErrNotificationNotFound
		}

		return n, errorspkg.ErrInternal
	}

	return n, nil
}

const markAllReadQuery = `
UPDATE notifications
SET is_read = true
WHERE user_id = $1 AND is_read = false
`

// MarkAllRead marks every unread notification of the given user as read.
func (r *RepoPGS) MarkAllRead(ctx context.Context, userID string) error {
	l := zerolog.Ctx(ctx)

	if _, err := r.db.ExecContext(ctx, markAllReadQuery, userID); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}
