// Package scheduler keeps common cache keys warm and sweeps expired
// entries on a fixed period.
package scheduler

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/airtribe-projects/news-aggregator-api-Anirudhcv678/internal/news/sources"
)

// DefaultInterval is the period between refresh cycles.
const DefaultInterval = 15 * time.Minute

// CommonPreferences are the preference sets refreshed every cycle. The
// empty set and the "general" topic are distinct cache keys on the fetch
// path even though they issue the same provider queries.
var CommonPreferences = [][]string{
	nil,
	{"technology"},
	{"business"},
	{"health"},
	{"science"},
	{"sports"},
	{"entertainment"},
	{"general"},
}

// Fetcher is the aggregation path the scheduler drives.
type Fetcher interface {
	FetchByPreferences(ctx context.Context, preferences []string) []sources.Article
}

// Sweeper evicts expired cache entries.
type Sweeper interface {
	SweepExpired() int
}

// Scheduler runs refresh cycles in the background. It is either stopped or
// running; Start and Stop are both idempotent, and once Stop returns no
// further cycle will run.
type Scheduler struct {
	fetcher  Fetcher
	sweeper  Sweeper
	interval time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a Scheduler. A non-positive interval falls back to
// DefaultInterval.
func New(fetcher Fetcher, sweeper Sweeper, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		fetcher:  fetcher,
		sweeper:  sweeper,
		interval: interval,
		logger:   slog.Default(),
	}
}

// Start launches the background loop: one cycle immediately, then one per
// interval. Calling Start on a running scheduler does nothing.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(ctx, s.done)
}

// Stop cancels the loop and waits for it to exit. Safe to call repeatedly
// and on a scheduler that was never started.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	s.logger.Info("refresh scheduler started", "interval", s.interval)

	s.runCycle(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("refresh scheduler stopped")
			return
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

// runCycle refreshes every common preference set, then sweeps. A failing
// key only costs its own entry: the fetch path absorbs provider errors, so
// the remaining keys always get their turn.
func (s *Scheduler) runCycle(ctx context.Context) {
	start := time.Now()
	for _, preferences := range CommonPreferences {
		select {
		case <-ctx.Done():
			return
		default:
		}
		articles := s.fetcher.FetchByPreferences(ctx, preferences)
		s.logger.Info("cache refreshed", "preferences", label(preferences), "articles", len(articles))
	}
	removed := s.sweeper.SweepExpired()
	s.logger.Info("refresh cycle completed", "swept", removed, "duration", time.Since(start))
}

func label(preferences []string) string {
	if len(preferences) == 0 {
		return "(none)"
	}
	return strings.Join(preferences, ",")
}
