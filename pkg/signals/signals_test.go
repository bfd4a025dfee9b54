package signals

import (
	"context"
	"testing"
)

func TestInProcessBusPublishSubscribe(t *testing.T) {
	bus := NewInProcessBus()
	defer bus.Close()

	var got []LoginRequiredEvent
	err := bus.Subscribe(LoginRequired, func(msg *Message) {
		var event LoginRequiredEvent
		if err := msg.Decode(&event); err != nil {
			t.Errorf("decode: %v", err)
			return
		}
		got = append(got, event)
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if err := bus.Publish(ctx, LoginRequired, LoginRequiredEvent{Reason: ReasonAuthNeeded, Intent: "create_booking"}); err != nil {
		t.Fatal(err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(got))
	}
	if got[0].Reason != ReasonAuthNeeded || got[0].Intent != "create_booking" {
		t.Fatalf("unexpected payload %+v", got[0])
	}
}

func TestInProcessBusSubjectIsolation(t *testing.T) {
	bus := NewInProcessBus()
	defer bus.Close()

	var authHits, bookingHits int
	bus.Subscribe(AuthChanged, func(msg *Message) { authHits++ })
	bus.Subscribe(BookingCreated, func(msg *Message) { bookingHits++ })

	ctx := context.Background()
	if err := bus.Publish(ctx, AuthChanged, AuthChangedEvent{UserID: "user-1", LoggedIn: true}); err != nil {
		t.Fatal(err)
	}

	if authHits != 1 || bookingHits != 0 {
		t.Fatalf("expected only the auth subscriber to fire, got auth=%d booking=%d", authHits, bookingHits)
	}
}

func TestInProcessBusFanOut(t *testing.T) {
	bus := NewInProcessBus()
	defer bus.Close()

	var first, second int
	bus.Subscribe(AuthChanged, func(msg *Message) { first++ })
	bus.Subscribe(AuthChanged, func(msg *Message) { second++ })

	if err := bus.Publish(context.Background(), AuthChanged, AuthChangedEvent{LoggedIn: false}); err != nil {
		t.Fatal(err)
	}
	if first != 1 || second != 1 {
		t.Fatalf("expected both subscribers to fire once, got %d and %d", first, second)
	}
}

func TestInProcessBusMessageIDs(t *testing.T) {
	bus := NewInProcessBus()
	defer bus.Close()

	var ids []string
	bus.Subscribe(BookingCreated, func(msg *Message) { ids = append(ids, msg.ID) })

	ctx := context.Background()
	bus.Publish(ctx, BookingCreated, BookingCreatedEvent{BookingID: "bk-1"})
	bus.Publish(ctx, BookingCreated, BookingCreatedEvent{BookingID: "bk-2"})

	if len(ids) != 2 || ids[0] == ids[1] {
		t.Fatalf("expected two distinct message IDs, got %v", ids)
	}
}

func TestInProcessBusClosed(t *testing.T) {
	bus := NewInProcessBus()
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}

	if err := bus.Publish(context.Background(), AuthChanged, AuthChangedEvent{}); err == nil {
		t.Error("expected publish on a closed bus to fail")
	}
	if err := bus.Subscribe(AuthChanged, func(msg *Message) {}); err == nil {
		t.Error("expected subscribe on a closed bus to fail")
	}
}
