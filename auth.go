package washly

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/washly/washly-go/domain"
	"github.com/washly/washly-go/pkg/logger"
	"github.com/washly/washly-go/pkg/signals"
	"github.com/washly/washly-go/store"
)

// AuthService owns the session lifecycle: sign in, sign up, refresh and
// sign out. Successful logins persist tokens and the user object through
// the client's store and announce themselves on the signal bus.
type AuthService struct {
	c *Client
}

type authResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *domain.User `json:"user"`
}

// Login exchanges credentials for a session. On failure nothing is
// persisted and the API error is returned as-is.
func (s *AuthService) Login(ctx context.Context, creds domain.LoginRequest) (*Session, error) {
	var resp authResponse
	if err := s.c.post(ctx, "/auth/signin", creds, &resp); err != nil {
		return nil, err
	}
	return s.persist(ctx, &resp)
}

// signupPayload is the wire shape of the signup endpoints; the backend
// takes a single name field while the client keeps first/last split.
type signupPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Register creates an account and opens a session. The endpoint depends on
// the requested role: providers go through the service-provider flow.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (*Session, error) {
	endpoint := "/auth/signup"
	if req.Role == domain.RoleProvider {
		endpoint = "/auth/register/service-provider"
	}

	payload := signupPayload{
		Name:     strings.TrimSpace(req.FirstName + " " + req.LastName),
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	}

	var resp authResponse
	if err := s.c.post(ctx, endpoint, payload, &resp); err != nil {
		return nil, err
	}
	return s.persist(ctx, &resp)
}

func (s *AuthService) persist(ctx context.Context, resp *authResponse) (*Session, error) {
	if resp.AccessToken == "" || resp.User == nil {
		return nil, fmt.Errorf("auth response missing token or user")
	}

	session := &Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		User:         resp.User,
	}
	if err := s.c.saveSession(session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	if err := s.c.bus.Publish(ctx, signals.AuthChanged, signals.AuthChangedEvent{
		UserID:    resp.User.ID,
		Email:     resp.User.Email,
		Role:      string(resp.User.Role),
		LoggedIn:  true,
		ChangedAt: time.Now(),
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to publish auth changed signal", "error", err)
	}
	return session, nil
}

// Logout invalidates the session server-side on a best-effort basis;
// local storage is cleared regardless of how that call went.
func (s *AuthService) Logout(ctx context.Context) {
	session, err := s.c.CurrentSession()
	if err != nil {
		return
	}

	if err := s.c.post(ctx, "/auth/logout", nil, nil); err != nil {
		logger.WarnContext(ctx, "Server-side logout failed", "error", err)
	}
	s.c.clearSession()

	if err := s.c.bus.Publish(ctx, signals.AuthChanged, signals.AuthChangedEvent{
		UserID:    session.User.ID,
		Email:     session.User.Email,
		Role:      string(session.User.Role),
		LoggedIn:  false,
		ChangedAt: time.Now(),
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to publish auth changed signal", "error", err)
	}
}

// Refresh exchanges the stored refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context) (string, error) {
	refresh, ok := s.c.store.Get(store.KeyRefreshToken)
	if !ok || refresh == "" {
		return "", ErrNoRefreshToken
	}

	body := map[string]string{"refresh_token": refresh}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := s.c.post(ctx, "/auth/refresh", body, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("refresh response missing access token")
	}
	if err := s.c.saveAccessToken(resp.AccessToken); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Me resolves the current user from the API and refreshes the cached copy.
func (s *AuthService) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := s.c.get(ctx, "/auth/profile", &user); err != nil {
		return nil, err
	}

	if data, err := json.Marshal(&user); err == nil {
		if err := s.c.store.Set(store.KeyUserData, string(data)); err != nil {
			logger.WarnContext(ctx, "Failed to refresh cached user", "error", err)
		}
	}
	return &user, nil
}
