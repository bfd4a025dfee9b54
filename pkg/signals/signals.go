package signals

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/washly/washly-go/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type Subscriber interface {
	Subscribe(subject string, handler func(msg *Message)) error
	Close() error
}

type Bus interface {
	Publisher
	Subscriber
}

type Message struct {
	Subject   string
	Data      []byte
	Timestamp time.Time
	ID        string
}

// Decode unmarshals the message payload into v.
func (m *Message) Decode(v interface{}) error {
	return json.Unmarshal(m.Data, v)
}

// InProcessBus delivers signals synchronously to subscribers within the same
// process. Cross-component notification only; this is not network messaging.
type InProcessBus struct {
	mu       sync.RWMutex
	handlers map[string][]func(msg *Message)
	closed   bool
	seq      int64
}

func NewInProcessBus() *InProcessBus {
	return &InProcessBus{
		handlers: make(map[string][]func(msg *Message)),
	}
}

func (b *InProcessBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal signal data: %w", err)
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return fmt.Errorf("signal bus closed")
	}
	b.seq++
	msg := &Message{
		Subject:   subject,
		Data:      payload,
		Timestamp: time.Now(),
		ID:        fmt.Sprintf("%d", b.seq),
	}
	handlers := make([]func(msg *Message), len(b.handlers[subject]))
	copy(handlers, b.handlers[subject])
	b.mu.Unlock()

	logger.DebugContext(ctx, "Publishing signal", "subject", subject, "data", string(payload))

	for _, h := range handlers {
		h(msg)
	}
	return nil
}

func (b *InProcessBus) Subscribe(subject string, handler func(msg *Message)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return fmt.Errorf("signal bus closed")
	}
	b.handlers[subject] = append(b.handlers[subject], handler)
	return nil
}

func (b *InProcessBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.handlers = make(map[string][]func(msg *Message))
	return nil
}

// Signal subjects
const (
	// Auth signals
	AuthChanged   = "auth.changed"
	LoginRequired = "auth.login_required"

	// Booking signals
	BookingCreated = "booking.created"

	// Notification signals
	NotificationReceived = "notification.received"
)

// Signal payloads
type AuthChangedEvent struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	LoggedIn  bool      `json:"logged_in"`
	ChangedAt time.Time `json:"changed_at"`
}

type LoginRequiredEvent struct {
	Reason string `json:"reason"`
	Intent string `json:"intent,omitempty"`
}

type BookingCreatedEvent struct {
	BookingID     string    `json:"booking_id"`
	ServiceID     string    `json:"service_id"`
	CustomerEmail string    `json:"customer_email"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	CreatedAt     time.Time `json:"created_at"`
}

type NotificationReceivedEvent struct {
	NotificationID string `json:"notification_id"`
	Type           string `json:"type"`
	Message        string `json:"message"`
}

// Reasons carried by LoginRequiredEvent.
const (
	ReasonSessionExpired = "session_expired"
	ReasonAuthNeeded     = "auth_needed"
)
