// Package tracker drives position resolution and the log feed on wall-clock tickers.
package tracker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/courier-tracker/internal/domain"
	"github.com/couchcryptid/courier-tracker/internal/observability"
	"github.com/jonboulle/clockwork"
)

var phases = []domain.Phase{
	domain.PhasePreMission,
	domain.PhaseActive,
	domain.PhaseInTransit,
	domain.PhaseComplete,
}

// Publisher forwards snapshots to an external sink.
type Publisher interface {
	Publish(ctx context.Context, snap domain.Snapshot) error
}

// Settings controls tick cadence and log retention.
type Settings struct {
	PositionInterval time.Duration
	LogInterval      time.Duration
	LogCapacity      int
}

// Tracker resolves the courier position on every position tick and appends a
// generated message on every log tick. Run must be called from one goroutine;
// Snapshot, Logs and CheckReadiness are safe to call concurrently with it.
type Tracker struct {
	table     *domain.StationTable
	generator *domain.MessageGenerator
	publisher Publisher
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics
	settings  Settings

	logs  *domain.LogBuffer
	ready atomic.Bool

	mu           sync.RWMutex
	latest       domain.Snapshot
	lastLocation string
}

// New creates a Tracker. Pass a nil publisher to disable snapshot publishing.
func New(table *domain.StationTable, generator *domain.MessageGenerator, publisher Publisher,
	clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics, settings Settings) *Tracker {
	return &Tracker{
		table:     table,
		generator: generator,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
		metrics:   metrics,
		settings:  settings,
		logs:      domain.NewLogBuffer(settings.LogCapacity),
	}
}

// CheckReadiness returns nil once the first position has been resolved.
func (t *Tracker) CheckReadiness(_ context.Context) error {
	if !t.ready.Load() {
		return errors.New("tracker has not resolved a position yet")
	}
	return nil
}

// Run resolves immediately, then ticks until the context is cancelled.
func (t *Tracker) Run(ctx context.Context) error {
	t.logger.Info("tracker started",
		"stations", t.table.Len(),
		"position_interval", t.settings.PositionInterval,
		"log_interval", t.settings.LogInterval,
	)
	t.metrics.TrackerRunning.Set(1)
	defer t.metrics.TrackerRunning.Set(0)

	t.Tick(ctx)
	t.EmitLog()

	positions := t.clock.NewTicker(t.settings.PositionInterval)
	defer positions.Stop()
	logs := t.clock.NewTicker(t.settings.LogInterval)
	defer logs.Stop()

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("tracker stopping", "reason", ctx.Err())
			return nil
		case <-positions.Chan():
			t.Tick(ctx)
		case <-logs.Chan():
			t.EmitLog()
		}
	}
}

// Tick resolves the current position, stores it and publishes it.
func (t *Tracker) Tick(ctx context.Context) domain.Snapshot {
	start := time.Now()
	now := t.clock.Now()

	snap := domain.Snapshot{
		State:     t.table.Resolve(now),
		Delivered: domain.DeliveredCount(now),
	}
	t.metrics.ResolveDuration.Observe(time.Since(start).Seconds())
	t.metrics.PositionTicks.Inc()
	t.recordState(snap.State)

	t.mu.Lock()
	t.latest = snap
	previous := t.lastLocation
	t.lastLocation = snap.State.Current.Name
	t.mu.Unlock()

	if previous != "" && previous != snap.State.Current.Name {
		t.logger.Info("location changed",
			"from", previous,
			"to", snap.State.Current.Name,
			"phase", snap.State.Phase,
		)
		if msg := domain.ArrivalMessage(snap.State); msg != "" {
			t.appendLog(domain.NewLogEntry(now, msg, domain.PriorityHigh))
		}
	}

	t.publish(ctx, snap)
	t.ready.Store(true)
	return snap
}

// EmitLog generates one message for the latest snapshot and appends it.
func (t *Tracker) EmitLog() domain.LogEntry {
	snap := t.Snapshot()
	current := snap.State.Current

	priority := domain.PriorityNormal
	if current.Name == domain.HomeBase.Name {
		priority = domain.PriorityLow
	}
	msg := t.generator.Generate(current.Name, current.Region, snap.State.Speed, snap.Delivered)

	entry := domain.NewLogEntry(t.clock.Now(), msg, priority)
	t.appendLog(entry)
	return entry
}

// Snapshot returns the latest resolved snapshot.
func (t *Tracker) Snapshot() domain.Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.latest
}

// Logs returns the log feed, newest first.
func (t *Tracker) Logs() []domain.LogEntry {
	return t.logs.Entries()
}

func (t *Tracker) appendLog(e domain.LogEntry) {
	t.logs.Append(e)
	t.metrics.LogEntries.WithLabelValues(string(e.Priority)).Inc()
	t.logger.Debug("log entry", "message", e.Message, "priority", e.Priority)
}

func (t *Tracker) recordState(state domain.ResolvedState) {
	t.metrics.StationsVisited.Set(float64(len(state.Visited)))
	t.metrics.MinutesRemaining.Set(float64(state.MinutesRemaining))
	for _, p := range phases {
		v := 0.0
		if p == state.Phase {
			v = 1
		}
		t.metrics.Phase.WithLabelValues(string(p)).Set(v)
	}
}

// publish is best effort: a failed write is logged and the next tick supersedes it.
func (t *Tracker) publish(ctx context.Context, snap domain.Snapshot) {
	if t.publisher == nil {
		return
	}
	if err := t.publisher.Publish(ctx, snap); err != nil {
		if ctx.Err() != nil {
			return
		}
		t.logger.Warn("publish snapshot failed", "error", err, "location", snap.State.Current.Name)
		t.metrics.PublishErrors.Inc()
		return
	}
	t.metrics.SnapshotsPublished.Inc()
}
