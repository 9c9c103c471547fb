package worker

import (
	"fmt"
	"time"
)

// Config holds the configuration for the background job worker.
type Config struct {
	Concurrency       int           // Polling goroutines (default 2)
	PollInterval      time.Duration // Idle poll period per goroutine (default 5s)
	JobTimeout        time.Duration // Context deadline for one job (default 5m)
	ShutdownTimeout   time.Duration // Grace period for running jobs on Stop (default 30s)
	StaleJobThreshold time.Duration // Running jobs older than this are reset on Start (default 10m)
}

// DefaultConfig returns the defaults used when nothing is configured.
// Report rendering is CPU-bound and short; two goroutines keep up with a
// busy day of submissions.
func DefaultConfig() Config {
	return Config{
		Concurrency:       2,
		PollInterval:      5 * time.Second,
		JobTimeout:        5 * time.Minute,
		ShutdownTimeout:   30 * time.Second,
		StaleJobThreshold: 10 * time.Minute,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	switch {
	case c.Concurrency < 1:
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	case c.Concurrency > 100:
		return fmt.Errorf("concurrency too high (max 100), got %d", c.Concurrency)
	case c.PollInterval < time.Second:
		return fmt.Errorf("poll interval must be at least 1 second, got %v", c.PollInterval)
	case c.JobTimeout < time.Second:
		return fmt.Errorf("job timeout must be at least 1 second, got %v", c.JobTimeout)
	case c.ShutdownTimeout < time.Second:
		return fmt.Errorf("shutdown timeout must be at least 1 second, got %v", c.ShutdownTimeout)
	case c.StaleJobThreshold < time.Minute:
		return fmt.Errorf("stale job threshold must be at least 1 minute, got %v", c.StaleJobThreshold)
	}
	return nil
}
