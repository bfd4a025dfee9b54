package washly

import (
	"context"
	"net/http"

	"github.com/google/go-querystring/query"
	"github.com/google/uuid"

	"github.com/washly/washly-go/cache"
	"github.com/washly/washly-go/domain"
	"github.com/washly/washly-go/pkg/logger"
	"github.com/washly/washly-go/pkg/signals"
)

// BookingService wraps the booking endpoints. Reads feed list views and
// degrade to empty on failure; writes propagate their errors and
// invalidate the booking cache keys they affect.
type BookingService struct {
	c *Client
}

// filterKey builds a cache key from a prefix and the filter's encoded form
// so differently-filtered lists do not collide.
func filterKey(prefix string, filter interface{}) string {
	if filter == nil {
		return prefix
	}
	values, err := query.Values(filter)
	if err != nil || len(values) == 0 {
		return prefix
	}
	return cache.Key(prefix, values.Encode())
}

// Create books a service for the signed-in customer. Without a session no
// request is sent; a login-required signal is raised instead so the UI can
// prompt and retry. The confirmation email and in-app notification are
// side channels: their failures are logged, never returned.
func (s *BookingService) Create(ctx context.Context, req domain.BookingCreateRequest) (*domain.Booking, error) {
	session, err := s.c.CurrentSession()
	if err != nil {
		if publishErr := s.c.bus.Publish(ctx, signals.LoginRequired, signals.LoginRequiredEvent{
			Reason: signals.ReasonAuthNeeded,
			Intent: "create_booking",
		}); publishErr != nil {
			logger.ErrorContext(ctx, "Failed to publish login required signal", "error", publishErr)
		}
		return nil, ErrNoSession
	}

	headers := map[string]string{"Idempotency-Key": uuid.NewString()}
	var booking domain.Booking
	if err := s.c.do(ctx, http.MethodPost, "/bookings", req, &booking, headers); err != nil {
		return nil, err
	}

	s.c.invalidate(ctx, keyMyBookings)

	s.notifyCreated(ctx, session, &booking)

	if err := s.c.bus.Publish(ctx, signals.BookingCreated, signals.BookingCreatedEvent{
		BookingID:     booking.ID,
		ServiceID:     booking.ServiceID,
		CustomerEmail: session.User.Email,
		ScheduledAt:   booking.ScheduledAt,
		CreatedAt:     booking.CreatedAt,
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking created signal", "error", err, "booking_id", booking.ID)
	}

	return &booking, nil
}

// notifyCreated runs the best-effort side channels after a booking lands.
func (s *BookingService) notifyCreated(ctx context.Context, session *Session, booking *domain.Booking) {
	name := session.User.FirstName
	if err := s.c.mailer.SendBookingConfirmation(session.User.Email, name, booking); err != nil {
		logger.WarnContext(ctx, "Booking confirmation email failed", "error", err, "booking_id", booking.ID)
	}

	notifReq := domain.NotificationCreateRequest{
		UserID:    session.User.ID,
		BookingID: booking.ID,
		Type:      domain.NotifyBookingCreated,
		Title:     "Booking received",
		Message:   "Your car wash booking is in. We'll let you know once the provider confirms.",
	}
	if err := s.c.post(ctx, "/notifications", notifReq, nil); err != nil {
		logger.WarnContext(ctx, "In-app booking notification failed", "error", err, "booking_id", booking.ID)
	}
}

// Mine lists the signed-in customer's bookings. A failed or malformed
// fetch yields an empty list, never an error.
func (s *BookingService) Mine(ctx context.Context, filter *domain.BookingFilter) []domain.Booking {
	key := filterKey(keyMyBookings, filter)
	path := queryPath("/bookings/my-bookings", filter)
	return cachedList[domain.Booking](ctx, s.c, key, path, s.c.staleness.BookingsTTL)
}

// ForProvider lists bookings against the signed-in provider's business.
func (s *BookingService) ForProvider(ctx context.Context, filter *domain.BookingFilter) []domain.Booking {
	key := filterKey(keyProviderBookings, filter)
	path := queryPath("/bookings/provider", filter)
	return cachedList[domain.Booking](ctx, s.c, key, path, s.c.staleness.BookingsTTL)
}

// UpdateStatus moves a booking to next on behalf of the provider. The
// transition table gates the call client-side; the server remains the
// authority and may still reject it.
func (s *BookingService) UpdateStatus(ctx context.Context, id string, current, next domain.BookingStatus) (*domain.Booking, error) {
	if !current.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	var booking domain.Booking
	if err := s.c.patch(ctx, "/bookings/"+id, domain.BookingStatusUpdate{Status: next}, &booking); err != nil {
		return nil, err
	}

	s.c.invalidate(ctx, keyProviderBookings, keyMyBookings)
	return &booking, nil
}

// Cancel cancels the customer's booking. Only pending and confirmed
// bookings qualify; anything later returns ErrNotCancellable without a
// request being issued.
func (s *BookingService) Cancel(ctx context.Context, id string, current domain.BookingStatus) (*domain.Booking, error) {
	if current != domain.BookingPending && current != domain.BookingConfirmed {
		return nil, ErrNotCancellable
	}

	var booking domain.Booking
	if err := s.c.patch(ctx, "/bookings/"+id+"/cancel", nil, &booking); err != nil {
		return nil, err
	}

	s.c.invalidate(ctx, keyMyBookings, keyProviderBookings)
	return &booking, nil
}
