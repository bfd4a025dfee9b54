package notify

import "github.com/washly/washly-go/domain"

// Mailer is the booking side channel. Failures here must never fail the
// booking itself; callers log and move on.
type Mailer interface {
	Send(toEmail, toName, subject, text, html string) (string, error)
	SendBookingConfirmation(toEmail, toName string, booking *domain.Booking) error
}
