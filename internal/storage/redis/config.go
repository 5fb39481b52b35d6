package redis

import "time"

// Config holds Redis connection and retention settings
type Config struct {
	// URL is a redis:// or rediss:// connection URL
	URL string
	// KeyPrefix namespaces every key, so several servers can share a database
	KeyPrefix string

	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration

	// Games and seat tokens expire after inactivity
	GameTTL time.Duration
	SeatTTL time.Duration
	// SummaryTTL of 0 keeps finished game summaries forever
	SummaryTTL time.Duration
}

// DefaultConfig returns defaults suitable for a single local Redis
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		KeyPrefix:    "blokus",
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		GameTTL:      24 * time.Hour,
		SeatTTL:      24 * time.Hour,
	}
}

func (c Config) keys() keyspace {
	if c.KeyPrefix == "" {
		return keyspace(DefaultConfig().KeyPrefix)
	}
	return keyspace(c.KeyPrefix)
}
