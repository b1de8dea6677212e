package constants

import "time"

const (
	DefaultCacheTTL  = 10 * time.Minute
	RedisDialTimeout = 3 * time.Second
)

const (
	ReadTimeout     = 10 * time.Second
	WriteTimeout    = 30 * time.Second
	ShutdownTimeout = 5 * time.Second
	AnalyzeTimeout  = 2 * time.Minute
)

// SQLite allows a single writer; one connection also keeps ":memory:" databases shared.
const (
	DBMaxOpenConns    = 1
	DBMaxIdleConns    = 1
	DBConnMaxLifetime = 0
	DBBusyTimeoutMs   = 5000
)

const (
	DuelConfidenceFactor = 5.0
	DefaultListLimit     = 20
	FormGuideLength      = 10
	AnalyzeMaxTokens     = 1024
)
