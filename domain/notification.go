package domain

import "time"

type NotificationType string

const (
	NotifyBookingCreated   NotificationType = "booking_created"
	NotifyBookingConfirmed NotificationType = "booking_confirmed"
	NotifyBookingCancelled NotificationType = "booking_cancelled"
	NotifyBookingReminder  NotificationType = "booking_reminder"
	NotifySystem           NotificationType = "system"
)

type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	BookingID string           `json:"booking_id,omitempty"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

type NotificationCreateRequest struct {
	UserID    string           `json:"user_id"`
	BookingID string           `json:"booking_id,omitempty"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
}

// NotificationFilter is encoded to a query string; zero fields are omitted.
type NotificationFilter struct {
	Unread bool `url:"unread,omitempty"`
	Limit  int  `url:"limit,omitempty"`
	Offset int  `url:"offset,omitempty"`
}
