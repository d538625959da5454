package game

import "time"

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible mine layouts.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// PlayerName is used when the player leaves the name prompt empty, and
	// as the only name in full-screen mode. Empty falls back to "Anonymous N".
	PlayerName string

	// TickInterval is how long one timer second lasts. Zero means time.Second.
	TickInterval time.Duration
}

func (c Config) tickInterval() time.Duration {
	if c.TickInterval <= 0 {
		return time.Second
	}
	return c.TickInterval
}

func (c Config) seed() int64 {
	if c.Seed == 0 {
		return time.Now().UnixNano()
	}
	return c.Seed
}
