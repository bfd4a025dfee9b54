package cache

import (
	"context"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	if got := Key("business-services", "biz-1"); got != "business-services:biz-1" {
		t.Errorf("Key() = %q", got)
	}
	if got := Key("services"); got != "services" {
		t.Errorf("Key() = %q", got)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	c := New(NewMemoryBackend())
	defer c.Close()
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	var out payload
	hit, err := c.GetJSON(ctx, "services", &out)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Fatal("expected a miss on an empty cache")
	}

	in := payload{Name: "premium-wash", Count: 3}
	if err := c.SetJSON(ctx, "services", in, time.Minute); err != nil {
		t.Fatal(err)
	}

	hit, err = c.GetJSON(ctx, "services", &out)
	if err != nil {
		t.Fatal(err)
	}
	if !hit || out != in {
		t.Fatalf("expected hit with %+v, got hit=%v %+v", in, hit, out)
	}
}

func TestMemoryBackendExpiry(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()

	if err := backend.Set(ctx, "stale", []byte("x"), 10*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := backend.Get(ctx, "stale"); !ok {
		t.Fatal("expected fresh entry to be present")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok, _ := backend.Get(ctx, "stale"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestInvalidateByPrefix(t *testing.T) {
	c := New(NewMemoryBackend())
	ctx := context.Background()

	keys := []string{
		Key("my-bookings"),
		Key("my-bookings", "status=pending"),
		Key("provider-bookings"),
	}
	for _, k := range keys {
		if err := c.SetJSON(ctx, k, []string{"x"}, time.Minute); err != nil {
			t.Fatal(err)
		}
	}

	if err := c.Invalidate(ctx, "my-bookings"); err != nil {
		t.Fatal(err)
	}

	var out []string
	for _, k := range keys[:2] {
		if hit, _ := c.GetJSON(ctx, k, &out); hit {
			t.Errorf("expected %q to be invalidated", k)
		}
	}
	if hit, _ := c.GetJSON(ctx, keys[2], &out); !hit {
		t.Error("unrelated prefix should survive invalidation")
	}
}
