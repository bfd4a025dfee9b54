package domain

import "testing"

func TestBookingStatusTransitions(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingCancelled, true},
		{BookingPending, BookingNoShow, true},
		{BookingPending, BookingCompleted, false},
		{BookingPending, BookingInProgress, false},
		{BookingConfirmed, BookingInProgress, true},
		{BookingConfirmed, BookingCancelled, true},
		{BookingConfirmed, BookingCompleted, false},
		{BookingInProgress, BookingCompleted, true},
		{BookingInProgress, BookingNoShow, true},
		{BookingInProgress, BookingCancelled, false},
		{BookingCompleted, BookingPending, false},
		{BookingCancelled, BookingConfirmed, false},
		{BookingNoShow, BookingPending, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	terminal := []BookingStatus{BookingCompleted, BookingCancelled, BookingNoShow}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("expected %s to be terminal", s)
		}
		if len(s.NextStatuses()) != 0 {
			t.Errorf("terminal status %s should have no next statuses", s)
		}
	}

	active := []BookingStatus{BookingPending, BookingConfirmed, BookingInProgress}
	for _, s := range active {
		if s.IsTerminal() {
			t.Errorf("did not expect %s to be terminal", s)
		}
	}
}

func TestNextStatusesReturnsCopy(t *testing.T) {
	next := BookingPending.NextStatuses()
	if len(next) != 3 {
		t.Fatalf("expected 3 next statuses for pending, got %d", len(next))
	}
	next[0] = BookingCompleted
	if BookingPending.CanTransitionTo(BookingCompleted) {
		t.Fatal("mutating the returned slice must not affect the transition table")
	}
}

func TestBookingCanCancel(t *testing.T) {
	for status, want := range map[BookingStatus]bool{
		BookingPending:    true,
		BookingConfirmed:  true,
		BookingInProgress: false,
		BookingCompleted:  false,
		BookingCancelled:  false,
		BookingNoShow:     false,
	} {
		b := Booking{Status: status}
		if got := b.CanCancel(); got != want {
			t.Errorf("CanCancel with status %s = %v, want %v", status, got, want)
		}
	}
}

func TestParseBookingStatus(t *testing.T) {
	if s, ok := ParseBookingStatus("in_progress"); !ok || s != BookingInProgress {
		t.Errorf("ParseBookingStatus(in_progress) = %q, %v", s, ok)
	}
	if _, ok := ParseBookingStatus("started"); ok {
		t.Error("expected unknown status to be rejected")
	}
	if _, ok := ParseBookingStatus(""); ok {
		t.Error("expected empty status to be rejected")
	}
}

func TestParseRole(t *testing.T) {
	if r, ok := ParseRole("service_provider"); !ok || r != RoleProvider {
		t.Errorf("ParseRole(service_provider) = %q, %v", r, ok)
	}
	if _, ok := ParseRole("manager"); ok {
		t.Error("expected unknown role to be rejected")
	}

	provider := User{Role: RoleProvider}
	customer := User{Role: RoleCustomer}
	if !provider.IsProvider() || customer.IsProvider() {
		t.Error("IsProvider should be true only for service providers")
	}
}

func TestBookingIsOwner(t *testing.T) {
	b := Booking{CustomerID: "user-1"}
	if !b.IsOwner("user-1") {
		t.Error("expected owner match")
	}
	if b.IsOwner("user-2") {
		t.Error("expected non-owner mismatch")
	}
}
