// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Reader reads one candidate's remote count. contract.Client satisfies it.
type Reader interface {
	TallyFor(ctx context.Context, candidate string) (uint64, error)
}

// Options tunes the synchronizer.
type Options struct {
	// Concurrency caps in-flight reads per refresh. 0 means one goroutine
	// per candidate, all started before any result is awaited.
	Concurrency int
	// Logger overrides the default slog logger.
	Logger *slog.Logger
}

func (o *Options) defaults() {
	if o.Concurrency < 0 {
		o.Concurrency = 0
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// RefreshResult describes what a single Refresh observed.
type RefreshResult struct {
	Changed  bool
	Version  uint64
	Snapshot Snapshot
	// Updated lists candidates whose count changed in this refresh.
	Updated []string
	// Failed lists candidates whose read failed; their counts were kept.
	Failed []string
}

// Stats are point-in-time counters.
type Stats struct {
	Refreshes    int64
	Changes      int64
	ReadFailures int64
	// ConsecutiveFailures counts, per candidate, failed reads since its
	// last successful one.
	ConsecutiveFailures map[string]int64
	LastRefresh         time.Time
}

// Synchronizer keeps a local snapshot of remote tallies. Refresh may be
// called from any number of goroutines; reads run concurrently and only
// the final compare-and-replace is serialized.
type Synchronizer struct {
	names  []string
	reader Reader
	opts   Options

	// mu guards everything below it.
	mu          sync.Mutex
	current     Snapshot
	version     uint64
	changed     chan struct{}
	lastRefresh time.Time
	consecutive map[string]int64

	refreshes    atomic.Int64
	changes      atomic.Int64
	readFailures atomic.Int64
}

// New creates a Synchronizer whose snapshot starts with every name at 0.
func New(names []string, reader Reader, opts Options) *Synchronizer {
	opts.defaults()
	own := make([]string, len(names))
	copy(own, names)

	return &Synchronizer{
		names:       own,
		reader:      reader,
		opts:        opts,
		current:     NewSnapshot(own),
		changed:     make(chan struct{}),
		consecutive: make(map[string]int64, len(own)),
	}
}

// Snapshot returns the current snapshot.
func (s *Synchronizer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Version returns the change signal. It advances by one each time the
// snapshot is replaced and never otherwise.
func (s *Synchronizer) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Current returns the snapshot and its version as one consistent pair.
func (s *Synchronizer) Current() (Snapshot, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.version
}

// Changes returns a channel that is closed on the next snapshot change.
// Call again after it fires to wait for the following one.
func (s *Synchronizer) Changes() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changed
}

// WaitForChange blocks until the version differs from since or ctx is
// done. A since the synchronizer never issued, such as one held across a
// restart, returns at once. The latest snapshot and version are always
// returned, along with ctx.Err() on expiry.
func (s *Synchronizer) WaitForChange(ctx context.Context, since uint64) (Snapshot, uint64, error) {
	for {
		s.mu.Lock()
		snap, version, ch := s.current, s.version, s.changed
		s.mu.Unlock()

		if version != since {
			return snap, version, nil
		}

		select {
		case <-ctx.Done():
			return snap, version, ctx.Err()
		case <-ch:
		}
	}
}

// Stats returns a copy of the refresh counters.
func (s *Synchronizer) Stats() Stats {
	s.mu.Lock()
	consecutive := make(map[string]int64, len(s.consecutive))
	for k, v := range s.consecutive {
		consecutive[k] = v
	}
	last := s.lastRefresh
	s.mu.Unlock()

	return Stats{
		Refreshes:           s.refreshes.Load(),
		Changes:             s.changes.Load(),
		ReadFailures:        s.readFailures.Load(),
		ConsecutiveFailures: consecutive,
		LastRefresh:         last,
	}
}

// Refresh reads every candidate's remote count and folds the successful
// reads into the snapshot. Failed reads are logged and leave that
// candidate's count as it was. Refresh itself never fails.
func (s *Synchronizer) Refresh(ctx context.Context) RefreshResult {
	s.refreshes.Add(1)
	reads := s.fetch(ctx)

	updates := make(map[string]uint64, len(reads))
	var failed []string
	for i, r := range reads {
		name := s.names[i]
		if r.err != nil {
			s.readFailures.Add(1)
			failed = append(failed, name)
			s.opts.Logger.Warn("tally read failed", "candidate", name, "error", r.err)
			continue
		}
		updates[name] = r.votes
	}

	result := s.apply(updates, failed)
	if result.Changed {
		s.opts.Logger.Info("tally changed",
			"version", result.Version,
			"updated", result.Updated,
			"failed", len(failed),
		)
	} else {
		s.opts.Logger.Debug("tally unchanged", "version", result.Version, "failed", len(failed))
	}
	return result
}

// Run refreshes every interval until ctx is done. A non-positive interval
// returns immediately.
func (s *Synchronizer) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.opts.Logger.Info("tally: periodic refresh started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			s.opts.Logger.Info("tally: periodic refresh stopped")
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

type read struct {
	votes uint64
	err   error
}

// fetch issues one read per candidate and waits for all of them. Each task
// reports into its own slot and returns nil, so Wait never short-circuits.
func (s *Synchronizer) fetch(ctx context.Context) []read {
	reads := make([]read, len(s.names))

	var g errgroup.Group
	if s.opts.Concurrency > 0 {
		g.SetLimit(s.opts.Concurrency)
	}
	for i, name := range s.names {
		g.Go(func() error {
			votes, err := s.reader.TallyFor(ctx, name)
			reads[i] = read{votes: votes, err: err}
			return nil
		})
	}
	_ = g.Wait()

	return reads
}

// apply is the only place the snapshot is replaced.
func (s *Synchronizer) apply(updates map[string]uint64, failed []string) RefreshResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastRefresh = time.Now()
	for _, name := range s.names {
		if _, ok := updates[name]; ok {
			s.consecutive[name] = 0
		}
	}
	for _, name := range failed {
		s.consecutive[name]++
	}

	next := s.current.with(updates)
	if next.Equal(s.current) {
		return RefreshResult{Version: s.version, Snapshot: s.current, Failed: failed}
	}

	updated := s.current.Diff(next)
	s.current = next
	s.version++
	close(s.changed)
	s.changed = make(chan struct{})
	s.changes.Add(1)

	return RefreshResult{
		Changed:  true,
		Version:  s.version,
		Snapshot: next,
		Updated:  updated,
		Failed:   failed,
	}
}
