package domain

import (
	"errors"
	"time"
)

// ErrNotificationNotFound indicates that the notification is not found.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationType classifies a notification.
type NotificationType string

// All notification types.
const (
	NotificationLoanApproved    NotificationType = "LOAN_APPROVED"
	NotificationLoanRejected    NotificationType = "LOAN_REJECTED"
	NotificationPaymentReceived NotificationType = "PAYMENT_RECEIVED"
	NotificationPaymentDue      NotificationType = "PAYMENT_DUE"
	NotificationAccountUpdate   NotificationType = "ACCOUNT_UPDATE"
	NotificationGeneral         NotificationType = "GENERAL"
)

// Notification holds a message addressed to a user.
type Notification struct {
	ID            int64            `json:"id"`
	UserID        string           `json:"user_id"`
	Type          NotificationType `json:"type"`
	Title         string           `json:"title"`
	Message       string           `json:"message"`
	IsRead        bool             `json:"is_read"`
	RelatedLoanID *int64           `json:"related_loan_id,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// CreateNotificationParams is the input data to create a notification.
type CreateNotificationParams struct {
	UserID        string           `json:"user_id"`
	Type          NotificationType `json:"type"`
	Title         string           `json:"title"`
	Message       string           `json:"message"`
	RelatedLoanID *int64           `json:"related_loan_id,omitempty"`
}
