package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/kyubii/kyubii-api/internal/catalog"
	"github.com/kyubii/kyubii-api/internal/routing"
)

// Prewarmer resolves course routes ahead of demand to populate the route
// cache.
type Prewarmer struct {
	catalog  catalog.Repository
	resolver *routing.Resolver
	logger   zerolog.Logger
}

// PrewarmerConfig holds dependencies for a Prewarmer.
type PrewarmerConfig struct {
	Catalog  catalog.Repository
	Resolver *routing.Resolver
	Logger   zerolog.Logger
}

// NewPrewarmer creates a course route prewarmer.
func NewPrewarmer(cfg PrewarmerConfig) *Prewarmer {
	return &Prewarmer{
		catalog:  cfg.Catalog,
		resolver: cfg.Resolver,
		logger:   cfg.Logger.With().Str("component", "prewarmer").Logger(),
	}
}

// PrewarmResult contains the outcome of one prewarm run.
type PrewarmResult struct {
	StartTime time.Time
	Duration  time.Duration

	// Requested is the number of courses selected for warming.
	Requested int

	// Warmed counts courses whose route resolved against the provider or
	// was already cached.
	Warmed int

	// Failed counts courses that degraded to the straight-line fallback;
	// those stay uncached and are retried on the next run.
	Failed int
}

type courseOutcome struct {
	courseID string
	warmed   bool
}

// Run resolves the route of every selected course through a small worker
// pool. Courses whose resolution degrades are counted as failed but do not
// abort the run.
func (p *Prewarmer) Run(ctx context.Context, cfg PrewarmConfig) (*PrewarmResult, error) {
	cfg = cfg.withDefaults()
	start := time.Now()

	courses, err := p.selectCourses(ctx, cfg.CourseIDs)
	if err != nil {
		return nil, err
	}
	spots, err := p.catalog.ListSpots(ctx)
	if err != nil {
		return nil, err
	}

	result := &PrewarmResult{StartTime: start, Requested: len(courses)}

	p.logger.Info().
		Int("courses", len(courses)).
		Int("concurrency", cfg.Concurrency).
		Msg("starting course route prewarm")

	coursesChan := make(chan catalog.Course, len(courses))
	outcomes := make(chan courseOutcome, len(courses))

	var wg sync.WaitGroup
	for i := 0; i < cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for course := range coursesChan {
				outcomes <- p.warmCourse(ctx, course, spots, cfg.Timeout)
			}
		}()
	}

	for _, c := range courses {
		coursesChan <- c
	}
	close(coursesChan)

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	for outcome := range outcomes {
		if outcome.warmed {
			result.Warmed++
		} else {
			result.Failed++
		}
	}

	result.Duration = time.Since(start)

	p.logger.Info().
		Int("warmed", result.Warmed).
		Int("failed", result.Failed).
		Dur("duration", result.Duration).
		Msg("course route prewarm completed")

	return result, nil
}

func (p *Prewarmer) selectCourses(ctx context.Context, courseIDs []string) ([]catalog.Course, error) {
	all, err := p.catalog.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	if len(courseIDs) == 0 {
		return all, nil
	}

	wanted := make(map[string]bool, len(courseIDs))
	for _, id := range courseIDs {
		wanted[id] = true
	}

	selected := make([]catalog.Course, 0, len(courseIDs))
	for _, c := range all {
		if wanted[c.ID] {
			selected = append(selected, c)
		}
	}
	return selected, nil
}

func (p *Prewarmer) warmCourse(ctx context.Context, course catalog.Course, spots []catalog.Spot, timeout time.Duration) courseOutcome {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	waypoints := catalog.CourseWaypoints(&course, spots)
	res := p.resolver.ResolveLatest(ctx, waypoints)

	// A degraded path is not cached, so the course stays cold.
	if res.Degraded {
		p.logger.Warn().
			Str("course_id", course.ID).
			Msg("course route did not warm, provider degraded")
	}
	return courseOutcome{courseID: course.ID, warmed: !res.Degraded}
}
