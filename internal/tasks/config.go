package tasks

import "time"

// Config holds task queue settings.
type Config struct {
	Workers         int
	ReleaseAfter    time.Duration
	CleanupInterval time.Duration
}

// Defaults fills unset fields with sensible values.
func (c Config) Defaults() Config {
	if c.Workers <= 0 {
		c.Workers = 2
	}
	if c.ReleaseAfter <= 0 {
		c.ReleaseAfter = 15 * time.Minute
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = time.Hour
	}
	return c
}
