// Package worker provides background job processing for the Kyubii API:
// warming the route cache for the predefined courses so the first map load
// of the day never waits on the routing provider.
package worker

import "time"

// PrewarmConfig holds configuration for the course prewarm job.
type PrewarmConfig struct {
	// CourseIDs limits prewarming to specific courses. Empty means all
	// courses in the catalog.
	CourseIDs []string

	// Concurrency is the number of courses resolved in parallel.
	// Default: 2. The public routing provider rate-limits aggressively, so
	// this stays low.
	Concurrency int

	// Timeout bounds the resolution of a single course route.
	// Default: 60 seconds.
	Timeout time.Duration
}

func (c PrewarmConfig) withDefaults() PrewarmConfig {
	if c.Concurrency <= 0 {
		c.Concurrency = 2
	}
	if c.Timeout <= 0 {
		c.Timeout = 60 * time.Second
	}
	return c
}
