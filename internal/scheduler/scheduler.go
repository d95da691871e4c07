// Package scheduler wires up the cron job that periodically regenerates the
// synthetic market corpus behind price estimates.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/clicksy/clicksy-api/internal/logging"
	"github.com/clicksy/clicksy-api/internal/metrics"
	"github.com/clicksy/clicksy-api/internal/types"
)

// CorpusStore receives freshly generated corpora.
type CorpusStore interface {
	Replace(corpus []types.MarketListing)
}

// CorpusGenerator produces a corpus. *pricing.Generator satisfies it.
type CorpusGenerator interface {
	Generate() []types.MarketListing
}

// Scheduler wraps robfig/cron and manages the refresh loop.
type Scheduler struct {
	cron  *cron.Cron
	store CorpusStore
	spec  string // cron spec, e.g. "@every 24h"
	log   zerolog.Logger

	mu  sync.Mutex // serializes access to gen
	gen CorpusGenerator
}

// New creates a Scheduler that regenerates the corpus on spec.
// An empty spec disables the periodic job; Refresh still works.
func New(store CorpusStore, gen CorpusGenerator, spec string) *Scheduler {
	l := logging.WithComponent("scheduler")
	return &Scheduler{
		cron:  cron.New(cron.WithLogger(cronLogger{log: l})),
		store: store,
		gen:   gen,
		spec:  spec,
		log:   l,
	}
}

// Start registers the job and starts the scheduler. It does not refresh
// immediately; callers seed the store with Refresh first.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.spec == "" {
		s.log.Info().Msg("Corpus refresh disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.spec, func() {
		if ctx.Err() != nil {
			return
		}
		s.Refresh()
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Msg("Cron started")
	return nil
}

// Refresh generates a new corpus, swaps it into the store and returns its size.
func (s *Scheduler) Refresh() int {
	s.mu.Lock()
	corpus := s.gen.Generate()
	s.mu.Unlock()

	s.store.Replace(corpus)
	metrics.RecordCorpusRefresh(len(corpus))
	s.log.Info().Int("listings", len(corpus)).Msg("Market corpus regenerated")
	return len(corpus)
}

// Stop shuts the scheduler down and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("Cron stopped")
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
