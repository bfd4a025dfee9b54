package washly

import (
	"context"
	"sync"
	"time"

	"github.com/washly/washly-go/domain"
	"github.com/washly/washly-go/pkg/logger"
	"github.com/washly/washly-go/pkg/signals"
)

// NotificationService wraps the notification endpoints and runs the
// fixed-interval poller that stands in for server push. The poller only
// runs while a session is active.
type NotificationService struct {
	c            *Client
	pollInterval time.Duration

	mu       sync.Mutex
	stopPoll chan struct{}
	pollDone chan struct{}
	seen     map[string]bool
}

// List returns the user's notifications. Failures yield an empty list.
func (s *NotificationService) List(ctx context.Context, filter *domain.NotificationFilter) []domain.Notification {
	key := filterKey(keyNotifications, filter)
	path := queryPath("/notifications", filter)
	return cachedList[domain.Notification](ctx, s.c, key, path, s.c.staleness.NotificationsTTL)
}

// MarkRead flips a notification's read flag.
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	if err := s.c.patch(ctx, "/notifications/"+id+"/read", nil, nil); err != nil {
		return err
	}

	s.c.invalidate(ctx, keyNotifications)
	return nil
}

// Create posts an in-app notification. Booking creation uses this as a
// best-effort side channel; direct callers get the error.
func (s *NotificationService) Create(ctx context.Context, req domain.NotificationCreateRequest) error {
	return s.c.post(ctx, "/notifications", req, nil)
}

// WatchSession ties the poller to the session lifecycle: it starts on
// login, stops on logout, and starts immediately if a session is already
// present.
func (s *NotificationService) WatchSession(ctx context.Context) error {
	err := s.c.bus.Subscribe(signals.AuthChanged, func(msg *signals.Message) {
		var event signals.AuthChangedEvent
		if err := msg.Decode(&event); err != nil {
			logger.Warn("Malformed auth changed signal", "error", err)
			return
		}
		if event.LoggedIn {
			s.StartPolling(ctx)
		} else {
			s.StopPolling()
		}
	})
	if err != nil {
		return err
	}

	if _, err := s.c.CurrentSession(); err == nil {
		s.StartPolling(ctx)
	}
	return nil
}

// StartPolling begins interval refetches. Calling it while a poller is
// already running is a no-op.
func (s *NotificationService) StartPolling(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopPoll != nil {
		return
	}
	s.stopPoll = make(chan struct{})
	s.pollDone = make(chan struct{})
	s.seen = make(map[string]bool)
	go s.poll(ctx, s.stopPoll, s.pollDone)
}

// StopPolling halts the poller and waits for it to exit.
func (s *NotificationService) StopPolling() {
	s.mu.Lock()
	stop, done := s.stopPoll, s.pollDone
	s.stopPoll, s.pollDone = nil, nil
	s.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
}

func (s *NotificationService) poll(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	interval := s.pollInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick refetches unread notifications and raises a signal for each one not
// seen before.
func (s *NotificationService) tick(ctx context.Context) {
	// bypass staleness so the poll actually hits the server
	s.c.invalidate(ctx, keyNotifications)

	items := s.List(ctx, &domain.NotificationFilter{Unread: true})

	s.mu.Lock()
	fresh := items[:0:0]
	for _, n := range items {
		if !s.seen[n.ID] {
			s.seen[n.ID] = true
			fresh = append(fresh, n)
		}
	}
	s.mu.Unlock()

	for _, n := range fresh {
		if err := s.c.bus.Publish(ctx, signals.NotificationReceived, signals.NotificationReceivedEvent{
			NotificationID: n.ID,
			Type:           string(n.Type),
			Message:        n.Message,
		}); err != nil {
			logger.WarnContext(ctx, "Failed to publish notification signal", "error", err)
		}
	}
}
