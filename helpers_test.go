package washly_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	washly "github.com/washly/washly-go"
	"github.com/washly/washly-go/domain"
	"github.com/washly/washly-go/pkg/config"
	"github.com/washly/washly-go/store"
)

// ---------- Test Setup ----------

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		API: config.APIConfig{
			BaseURL:          baseURL,
			RequestTimeout:   5 * time.Second,
			PollInterval:     20 * time.Millisecond,
			AutosaveInterval: 20 * time.Millisecond,
		},
		Cache: config.CacheConfig{
			BookingsTTL:      time.Minute,
			ServicesTTL:      time.Minute,
			BusinessTTL:      time.Minute,
			NotificationsTTL: time.Minute,
			ProfileTTL:       time.Minute,
		},
		Email: config.EmailConfig{DevMode: true},
	}
}

func newTestClient(t *testing.T, handler http.Handler, opts ...washly.Option) *washly.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return washly.New(testConfig(server.URL), opts...)
}

// signToken builds a real HS256 token so expiry parsing has something to read.
func signToken(t *testing.T, ttl time.Duration) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func testUser(role domain.Role) *domain.User {
	return &domain.User{
		ID:        "user-1",
		Email:     "casey@example.com",
		FirstName: "Casey",
		LastName:  "Nguyen",
		Phone:     "+15550100",
		Role:      role,
	}
}

// seedSession writes a valid session straight into the client's store, the
// way a previous run would have left it.
func seedSession(t *testing.T, client *washly.Client, role domain.Role) {
	t.Helper()

	userData, err := json.Marshal(testUser(role))
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}

	token := signToken(t, time.Hour)
	st := client.Store()
	for key, value := range map[string]string{
		store.KeyAuthToken:    token,
		store.KeyToken:        token,
		store.KeyRefreshToken: "refresh-1",
		store.KeyUserData:     string(userData),
	} {
		if err := st.Set(key, value); err != nil {
			t.Fatalf("seed %s: %v", key, err)
		}
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v interface{}) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}
