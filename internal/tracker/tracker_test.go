package tracker_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/couchcryptid/courier-tracker/internal/domain"
	"github.com/couchcryptid/courier-tracker/internal/observability"
	"github.com/couchcryptid/courier-tracker/internal/tracker"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockPublisher struct {
	mu    sync.Mutex
	snaps []domain.Snapshot
	err   error
}

func (m *mockPublisher) Publish(_ context.Context, snap domain.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.snaps = append(m.snaps, snap)
	return nil
}

func (m *mockPublisher) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.snaps)
}

// fixedSource always draws the same value.
type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

var (
	kiritimati = domain.Station{Name: "KIRITIMATI", Offset: 14, Region: "OCEANIA", Geo: domain.Geo{Lat: 1.87, Lon: -157.36}}
	london     = domain.Station{Name: "LONDON", Offset: 0, Region: "EUROPE", Geo: domain.Geo{Lat: 51.5, Lon: -0.13}}
)

func newTestTracker(t *testing.T, clock clockwork.Clock, pub tracker.Publisher) (*tracker.Tracker, *observability.Metrics) {
	t.Helper()
	table, err := domain.NewStationTable([]domain.Station{london, kiritimati})
	require.NoError(t, err)

	metrics := observability.NewMetricsForTesting()
	tr := tracker.New(table, domain.NewMessageGenerator(fixedSource(0)), pub, clock, slog.Default(), metrics, tracker.Settings{
		PositionInterval: time.Second,
		LogInterval:      6 * time.Second,
		LogCapacity:      5,
	})
	return tr, metrics
}

// --- tests ---

func TestTracker_TickResolvesAndPublishes(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.December, 25, 9, 0, 0, 0, time.UTC))
	pub := &mockPublisher{}
	tr, metrics := newTestTracker(t, clock, pub)

	require.Error(t, tr.CheckReadiness(context.Background()))

	snap := tr.Tick(context.Background())

	assert.Equal(t, domain.PhaseActive, snap.State.Phase)
	assert.Equal(t, "KIRITIMATI", snap.State.Current.Name)
	assert.Equal(t, 61, snap.State.MinutesRemaining)
	assert.Equal(t, domain.DeliveredCount(clock.Now()), snap.Delivered)
	assert.Equal(t, snap, tr.Snapshot())
	require.NoError(t, tr.CheckReadiness(context.Background()))
	assert.Equal(t, 1, pub.count())
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.SnapshotsPublished), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.Phase.WithLabelValues("active")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(metrics.Phase.WithLabelValues("pre-mission")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.StationsVisited), 0)
}

func TestTracker_LocationChangeAddsHighPriorityEntry(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.December, 25, 9, 0, 0, 0, time.UTC))
	tr, _ := newTestTracker(t, clock, nil)

	tr.Tick(context.Background())
	assert.Empty(t, tr.Logs())

	clock.Advance(2 * time.Hour)
	snap := tr.Tick(context.Background())
	require.Equal(t, "LONDON", snap.State.Current.Name)

	logs := tr.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, "ARRIVED: LONDON", logs[0].Message)
	assert.Equal(t, domain.PriorityHigh, logs[0].Priority)
	assert.Equal(t, "11:00:00", logs[0].Timestamp)
}

func TestTracker_EmitLog(t *testing.T) {
	t.Run("home base entries are low priority standby messages", func(t *testing.T) {
		clock := clockwork.NewFakeClockAt(time.Date(2024, time.December, 1, 12, 0, 0, 0, time.UTC))
		tr, metrics := newTestTracker(t, clock, nil)
		tr.Tick(context.Background())

		entry := tr.EmitLog()

		assert.Equal(t, "PRE-FLIGHT CHECKLIST IN PROGRESS", entry.Message)
		assert.Equal(t, domain.PriorityLow, entry.Priority)
		assert.NotEmpty(t, entry.ID)
		assert.InDelta(t, 1, testutil.ToFloat64(metrics.LogEntries.WithLabelValues("low")), 0)
	})

	t.Run("station entries use the current location", func(t *testing.T) {
		clock := clockwork.NewFakeClockAt(time.Date(2024, time.December, 25, 12, 0, 0, 0, time.UTC))
		tr, _ := newTestTracker(t, clock, nil)
		tr.Tick(context.Background())

		entry := tr.EmitLog()

		assert.Equal(t, "DELIVERING PRESENTS IN LONDON", entry.Message)
		assert.Equal(t, domain.PriorityNormal, entry.Priority)
	})

	t.Run("buffer keeps the newest five", func(t *testing.T) {
		clock := clockwork.NewFakeClockAt(time.Date(2024, time.December, 25, 12, 0, 0, 0, time.UTC))
		tr, _ := newTestTracker(t, clock, nil)
		tr.Tick(context.Background())

		var last domain.LogEntry
		for i := 0; i < 8; i++ {
			last = tr.EmitLog()
		}

		logs := tr.Logs()
		require.Len(t, logs, 5)
		assert.Equal(t, last.ID, logs[0].ID)
	})
}

func TestTracker_PublishErrorIsNotFatal(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.December, 25, 12, 0, 0, 0, time.UTC))
	pub := &mockPublisher{err: errors.New("broker down")}
	tr, metrics := newTestTracker(t, clock, pub)

	snap := tr.Tick(context.Background())

	assert.Equal(t, "LONDON", snap.State.Current.Name)
	require.NoError(t, tr.CheckReadiness(context.Background()))
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.PublishErrors), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(metrics.SnapshotsPublished), 0)
}

func TestTracker_Run(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.December, 25, 12, 0, 0, 0, time.UTC))
	pub := &mockPublisher{}
	tr, metrics := newTestTracker(t, clock, pub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- tr.Run(ctx) }()

	// Both tickers are registered once the loop is waiting.
	blockCtx, blockCancel := context.WithTimeout(ctx, 2*time.Second)
	defer blockCancel()
	require.NoError(t, clock.BlockUntilContext(blockCtx, 2))

	require.NoError(t, tr.CheckReadiness(ctx))
	assert.Len(t, tr.Logs(), 1)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.TrackerRunning), 0)

	clock.Advance(6 * time.Second)

	assert.Eventually(t, func() bool { return len(tr.Logs()) >= 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return pub.count() >= 2 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("tracker did not stop")
	}
	assert.InDelta(t, 0, testutil.ToFloat64(metrics.TrackerRunning), 0)
}
