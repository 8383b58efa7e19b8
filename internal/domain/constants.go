package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Gemini defaults
const (
	DefaultModel    = "gemini-2.5-flash"
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"

	DefaultTemperature        = 0.1
	DefaultMaxOutputTokens    = 3000
	DefaultSummaryTemperature = 0.3
	DefaultSummaryMaxTokens   = 4000

	// DefaultHTTPClientTimeout is the timeout for HTTP client requests
	DefaultHTTPClientTimeout = 60 * time.Second
)

// Context gathering caps
const (
	DefaultListingLimit = 50
	DefaultTreeLimit    = 30
	DefaultFilesLimit   = 50
	DefaultMentionLimit = 20
)

// History and cache constants
const (
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
	// DefaultHistoryRetainDays is the default number of days to retain history
	DefaultHistoryRetainDays = 30
	// DefaultMaxCacheEntries is the maximum number of cache entries
	DefaultMaxCacheEntries = 100
	// DefaultCacheTTL is how long a cached model response stays valid
	DefaultCacheTTL = time.Hour
)

// MaxSummaryFileBytes caps how much of a file is sent for summarization.
const MaxSummaryFileBytes = 1 << 20

// ResponsePreviewBytes is how much of a raw response verbose mode prints.
const ResponsePreviewBytes = 300
