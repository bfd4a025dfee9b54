package domain

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
	BookingNoShow     BookingStatus = "no_show"
)

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingInProgress, BookingCompleted, BookingCancelled, BookingNoShow:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// bookingTransitions lists the allowed next states per current state. The
// server is authoritative; this table only gates which actions the client
// offers and issues.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:    {BookingConfirmed, BookingCancelled, BookingNoShow},
	BookingConfirmed:  {BookingInProgress, BookingCancelled, BookingNoShow},
	BookingInProgress: {BookingCompleted, BookingNoShow},
	BookingCompleted:  {},
	BookingCancelled:  {},
	BookingNoShow:     {},
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

// NextStatuses returns the states reachable from s, in table order.
func (s BookingStatus) NextStatuses() []BookingStatus {
	next := make([]BookingStatus, len(bookingTransitions[s]))
	copy(next, bookingTransitions[s])
	return next
}

type VehicleType string

const (
	VehicleSedan      VehicleType = "sedan"
	VehicleSUV        VehicleType = "suv"
	VehicleTruck      VehicleType = "truck"
	VehicleMotorcycle VehicleType = "motorcycle"
)

type Booking struct {
	ID                  string        `json:"id"`
	Status              BookingStatus `json:"status"`
	CustomerID          string        `json:"customer_id"`
	ServiceID           string        `json:"service_id"`
	BusinessID          string        `json:"business_id"`
	CustomerName        string        `json:"customer_name"`
	CustomerEmail       string        `json:"customer_email"`
	CustomerPhone       string        `json:"customer_phone"`
	VehicleType         VehicleType   `json:"vehicle_type"`
	ScheduledAt         time.Time     `json:"scheduled_at"`
	SpecialInstructions string        `json:"special_instructions"`
	TotalAmount         float64       `json:"total_amount"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// CanCancel reports whether the customer may still cancel. Only bookings that
// the provider has not started yet qualify.
func (b *Booking) CanCancel() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}

func (b *Booking) IsOwner(userID string) bool {
	return b.CustomerID == userID
}

type BookingCreateRequest struct {
	ServiceID           string      `json:"service_id"`
	VehicleType         VehicleType `json:"vehicle_type"`
	ScheduledAt         time.Time   `json:"scheduled_at"`
	SpecialInstructions string      `json:"special_instructions,omitempty"`
}

// BookingFilter is encoded to a query string; zero fields are omitted.
type BookingFilter struct {
	Status BookingStatus `url:"status,omitempty"`
	From   string        `url:"from,omitempty"`
	To     string        `url:"to,omitempty"`
	Limit  int           `url:"limit,omitempty"`
	Offset int           `url:"offset,omitempty"`
}

type BookingStatusUpdate struct {
	Status BookingStatus `json:"status"`
}
