package constants

import "time"

// Session and context keys
const (
	SessionCookieName = "campus_session"
	ContextKeyUserID  = "user_id"
	ContextKeyActor   = "actor"
)

// Auth rules
const (
	MinPasswordLength = 6
	MinNameLength     = 2
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Storage buckets
const (
	BucketEventImages   = "event_images"
	BucketResources     = "resources"
	BucketTeamDocuments = "team-documents"
)

// Registration rules
const (
	MaxTeamMembers     = 4
	MaxDocumentSize    = 20 << 20
	DefaultDocFileName = "presentation.ppt"
)

// Upload limits for admin-managed files
const (
	MaxEventImageSize = 5 << 20
	MaxResourceSize   = 50 << 20
)

// Query retention
const (
	ResolvedQueryRetention = 24 * time.Hour
	QueryCleanupLockKey    = "campus:user_queries:cleanup_lock"
)

// Filter sentinel used by list endpoints
const FilterAll = "all"
