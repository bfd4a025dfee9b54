package washly

import (
	"context"
	"encoding/json"
	"time"

	"github.com/washly/washly-go/domain"
	"github.com/washly/washly-go/pkg/logger"
	"github.com/washly/washly-go/pkg/signals"
	"github.com/washly/washly-go/store"
)

// ProfileService wraps profile reads and updates for the signed-in user.
type ProfileService struct {
	c *Client
}

// Get resolves the current profile, serving a cached copy inside the
// staleness window.
func (s *ProfileService) Get(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if ok, err := s.c.cache.GetJSON(ctx, keyProfile, &user); err == nil && ok {
		return &user, nil
	}

	if err := s.c.get(ctx, "/auth/profile", &user); err != nil {
		return nil, err
	}

	if err := s.c.cache.SetJSON(ctx, keyProfile, &user, s.c.staleness.ProfileTTL); err != nil {
		logger.WarnContext(ctx, "Failed to cache profile", "error", err)
	}
	return &user, nil
}

// Update applies a partial profile update, refreshes the stored user copy
// and announces the change so headers and menus re-render.
func (s *ProfileService) Update(ctx context.Context, patch domain.ProfilePatch) (*domain.User, error) {
	var user domain.User
	if err := s.c.patch(ctx, "/auth/profile", patch, &user); err != nil {
		return nil, err
	}

	if data, err := json.Marshal(&user); err == nil {
		if err := s.c.store.Set(store.KeyUserData, string(data)); err != nil {
			logger.WarnContext(ctx, "Failed to refresh cached user", "error", err)
		}
	}
	s.c.invalidate(ctx, keyProfile)

	if err := s.c.bus.Publish(ctx, signals.AuthChanged, signals.AuthChangedEvent{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		LoggedIn:  true,
		ChangedAt: time.Now(),
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to publish auth changed signal", "error", err)
	}
	return &user, nil
}
