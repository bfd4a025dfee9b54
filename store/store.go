package store

// Storage keys. KeyAuthToken and KeyToken are duplicated on purpose: older
// builds of the web client read "token" while current ones read "auth_token",
// and both must stay in sync.
const (
	KeyAuthToken    = "auth_token"
	KeyToken        = "token"
	KeyRefreshToken = "refresh_token"
	KeyUserData     = "user_data"
	KeyBizDraft     = "business_registration_draft"
)

// Store is the persistent key-value state behind the session and drafts.
// Only the HTTP client and the draft helpers may write the keys above.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
	Clear() error
}
