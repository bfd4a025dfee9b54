package washly

// Cache key prefixes. Mutations invalidate every prefix whose underlying
// data they touch; list reads key their entries under prefix + filter.
const (
	keyServices         = "services"
	keyCategories       = "service-categories"
	keyBusinessServices = "business-services"
	keyMyBookings       = "my-bookings"
	keyProviderBookings = "provider-bookings"
	keyMyBusiness       = "my-business"
	keyNotifications    = "notifications"
	keyProfile          = "profile"
)

// userScopedKeys are the prefixes whose entries belong to whoever is signed
// in. An auth change (login, logout, expiry) changes whose data they refer
// to, so the session lifecycle drops them wholesale.
var userScopedKeys = []string{
	keyMyBookings,
	keyProviderBookings,
	keyNotifications,
	keyProfile,
	keyMyBusiness,
}
