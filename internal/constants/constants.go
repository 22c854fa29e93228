package constants

const (
	// ContextKeyUserID is the session and gin context key holding the signed-in user id.
	ContextKeyUserID = "user_id"

	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "team_session"

	// Pagination
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// DefaultMaxLoginRetries locks an account after this many consecutive failed logins.
	DefaultMaxLoginRetries = 5
)
