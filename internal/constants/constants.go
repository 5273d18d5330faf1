package constants

// Session / context keys
const (
	ContextKeyUserID = "user_id"
)

// Pagination limits
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Auth
const (
	MinPasswordLength = 8
)

// DefaultOrganizationName is the organization every user is attached to
// unless they already belong to another one.
const DefaultOrganizationName = "Blurr"

// ChatRecentLimit is how many recent tasks/projects the assistant inspects.
const ChatRecentLimit = 5
