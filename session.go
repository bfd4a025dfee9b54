package washly

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/washly/washly-go/domain"
	"github.com/washly/washly-go/pkg/logger"
	"github.com/washly/washly-go/store"
)

// Session is the authenticated state owned by the client: both tokens plus
// the cached user object. A stored access token without a parseable user is
// treated as no session at all.
type Session struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *domain.User `json:"user"`
}

func (c *Client) accessToken() string {
	if token, ok := c.store.Get(store.KeyAuthToken); ok && token != "" {
		return token
	}
	// legacy key kept in sync with auth_token
	if token, ok := c.store.Get(store.KeyToken); ok {
		return token
	}
	return ""
}

// saveSession persists tokens and the user object. Storage is only touched
// on a fully successful auth response; a failed login leaves it as it was.
func (c *Client) saveSession(s *Session) error {
	userData, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := c.store.Set(store.KeyAuthToken, s.AccessToken); err != nil {
		return fmt.Errorf("persist access token: %w", err)
	}
	if err := c.store.Set(store.KeyToken, s.AccessToken); err != nil {
		return fmt.Errorf("persist legacy token: %w", err)
	}
	if err := c.store.Set(store.KeyRefreshToken, s.RefreshToken); err != nil {
		return fmt.Errorf("persist refresh token: %w", err)
	}
	if err := c.store.Set(store.KeyUserData, string(userData)); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	c.loginSignalled.Store(false)
	// whatever is cached under user-scoped keys belonged to the previous
	// session
	c.invalidate(context.Background(), userScopedKeys...)
	return nil
}

func (c *Client) saveAccessToken(token string) error {
	if err := c.store.Set(store.KeyAuthToken, token); err != nil {
		return fmt.Errorf("persist access token: %w", err)
	}
	if err := c.store.Set(store.KeyToken, token); err != nil {
		return fmt.Errorf("persist legacy token: %w", err)
	}
	c.loginSignalled.Store(false)
	return nil
}

func (c *Client) clearSession() {
	for _, key := range []string{store.KeyAuthToken, store.KeyToken, store.KeyRefreshToken, store.KeyUserData} {
		if err := c.store.Delete(key); err != nil {
			logger.Warn("Failed to clear session key", "key", key, "error", err)
		}
	}
	c.invalidate(context.Background(), userScopedKeys...)
}

// CurrentSession returns the stored session. Fail-closed: if the cached
// user object is missing or unparseable the whole session is discarded and
// ErrNoSession is returned.
func (c *Client) CurrentSession() (*Session, error) {
	token := c.accessToken()
	if token == "" {
		return nil, ErrNoSession
	}

	userData, ok := c.store.Get(store.KeyUserData)
	if !ok || userData == "" {
		c.clearSession()
		return nil, ErrNoSession
	}

	var user domain.User
	if err := json.Unmarshal([]byte(userData), &user); err != nil {
		logger.Warn("Stored user data is malformed, discarding session", "error", err)
		c.clearSession()
		return nil, ErrNoSession
	}

	refresh, _ := c.store.Get(store.KeyRefreshToken)
	return &Session{
		AccessToken:  token,
		RefreshToken: refresh,
		User:         &user,
	}, nil
}

// TokenExpiry reads the expiry claim from the stored access token without
// verifying the signature; verification is the server's job, the client
// only needs the timestamp for refresh decisions.
func (c *Client) TokenExpiry() (time.Time, error) {
	token := c.accessToken()
	if token == "" {
		return time.Time{}, ErrNoSession
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("parse access token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("access token has no expiry claim")
	}
	return claims.ExpiresAt.Time, nil
}

// NeedsRefresh reports whether the access token expires within the window.
// An unreadable token also reports true so the caller attempts a refresh.
func (c *Client) NeedsRefresh(window time.Duration) bool {
	expiry, err := c.TokenExpiry()
	if err != nil {
		return true
	}
	return time.Until(expiry) < window
}
