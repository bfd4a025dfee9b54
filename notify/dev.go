package notify

import (
	"fmt"

	"github.com/washly/washly-go/domain"
	"github.com/washly/washly-go/pkg/logger"
)

// DevMailer prints emails to the log instead of sending them.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) Send(toEmail, toName, subject, text, _ string) (string, error) {
	logger.Info("DEV EMAIL",
		"to", toEmail,
		"to_name", toName,
		"subject", subject,
		"text", text,
	)
	return "dev-mail", nil
}

func (d *DevMailer) SendBookingConfirmation(toEmail, toName string, booking *domain.Booking) error {
	_, err := d.Send(toEmail, toName, "Your car wash booking is in",
		fmt.Sprintf("Booking #%s scheduled for %s", booking.ID, booking.ScheduledAt), "")
	return err
}
