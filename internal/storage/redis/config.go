package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TTL settings. Games persist indefinitely by default; reservation
	// records carry a TTL slightly past their own expiry so stale
	// tokens age out of the index on their own.
	GameTTL            time.Duration
	ReservationTTLSlop time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:                "redis://localhost:6379",
		PoolSize:           10,
		MinIdleConns:       2,
		GameTTL:            0, // no expiry
		ReservationTTLSlop: time.Minute,
	}
}
