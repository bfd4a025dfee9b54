package state

import (
	"context"
	"sync"

	washly "github.com/washly/washly-go"
	"github.com/washly/washly-go/domain"
	"github.com/washly/washly-go/pkg/logger"
	"github.com/washly/washly-go/pkg/signals"
)

// AuthSnapshot is the auth state consumed by UI layers.
type AuthSnapshot struct {
	User              *domain.User
	IsAuthenticated   bool
	IsServiceProvider bool
	Loading           bool
	Err               error
}

// AuthManager tracks the signed-in user. It reacts to auth signals on the
// bus, so state stays correct no matter which component triggered the
// change.
type AuthManager struct {
	client *washly.Client

	mu      sync.RWMutex
	user    *domain.User
	loading bool
	err     error
}

func NewAuthManager(client *washly.Client) (*AuthManager, error) {
	m := &AuthManager{client: client}

	err := client.Bus().Subscribe(signals.AuthChanged, func(msg *signals.Message) {
		var event signals.AuthChangedEvent
		if err := msg.Decode(&event); err != nil {
			logger.Warn("Malformed auth changed signal", "error", err)
			return
		}
		m.mu.Lock()
		defer m.mu.Unlock()
		if !event.LoggedIn {
			m.user = nil
			return
		}
		if session, err := client.CurrentSession(); err == nil {
			m.user = session.User
		}
	})
	if err != nil {
		return nil, err
	}

	err = client.Bus().Subscribe(signals.LoginRequired, func(msg *signals.Message) {
		m.mu.Lock()
		m.user = nil
		m.mu.Unlock()
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

// Bootstrap resolves the stored session at startup. A token whose user
// cannot be resolved is discarded rather than trusted.
func (m *AuthManager) Bootstrap(ctx context.Context) {
	m.mu.Lock()
	m.loading = true
	m.err = nil
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	if _, err := m.client.CurrentSession(); err != nil {
		return
	}

	user, err := m.client.Auth.Me(ctx)
	if err != nil {
		logger.Warn("Stored token could not resolve a user, discarding session", "error", err)
		m.client.Auth.Logout(ctx)
		m.mu.Lock()
		m.user = nil
		m.err = err
		m.mu.Unlock()
		return
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
}

func (m *AuthManager) Login(ctx context.Context, creds domain.LoginRequest) error {
	_, err := m.client.Auth.Login(ctx, creds)
	m.setErr(err)
	return err
}

func (m *AuthManager) Register(ctx context.Context, req domain.RegisterRequest) error {
	_, err := m.client.Auth.Register(ctx, req)
	m.setErr(err)
	return err
}

func (m *AuthManager) Logout(ctx context.Context) {
	m.client.Auth.Logout(ctx)
}

func (m *AuthManager) setErr(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

func (m *AuthManager) Snapshot() AuthSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return AuthSnapshot{
		User:              m.user,
		IsAuthenticated:   m.user != nil,
		IsServiceProvider: m.user != nil && m.user.IsProvider(),
		Loading:           m.loading,
		Err:               m.err,
	}
}
