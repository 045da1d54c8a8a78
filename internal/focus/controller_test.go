package focus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/abhisek/focusflow/internal/blocklist"
	"github.com/abhisek/focusflow/internal/store"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

type fakeAnalytics struct {
	mu    sync.Mutex
	rec   store.AnalyticsRecord
	saves []store.AnalyticsRecord
}

func (f *fakeAnalytics) Load(context.Context) (store.AnalyticsRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rec, nil
}

func (f *fakeAnalytics) Save(_ context.Context, rec store.AnalyticsRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rec = rec
	f.saves = append(f.saves, rec)
	return nil
}

func (f *fakeAnalytics) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

type fakeSessions struct {
	starts []string
	ends   int
	modes  []bool
}

func (f *fakeSessions) StartFocusSession(_ context.Context, origin string) (string, error) {
	f.starts = append(f.starts, origin)
	return "id", nil
}

func (f *fakeSessions) EndFocusSession(context.Context) error {
	f.ends++
	return nil
}

func (f *fakeSessions) SetFocusMode(_ context.Context, on bool) error {
	f.modes = append(f.modes, on)
	return nil
}

func newTestController(t *testing.T, opts ...Option) (*Controller, *fakeClock, *fakeAnalytics) {
	t.Helper()
	clock := &fakeClock{now: monday}
	fa := &fakeAnalytics{}
	sites, _ := blocklist.New([]string{"reddit.com"})
	base := []Option{
		WithClock(clock.Now),
		WithAnalyticsStore(fa),
		// The loop never fires during a test; ticks are driven by hand.
		WithIntervals(time.Hour, time.Minute),
	}
	c := NewController(sites, append(base, opts...)...)
	return c, clock, fa
}

func TestController_AccountsWholeSeconds(t *testing.T) {
	defer goleak.VerifyNone(t)
	c, clock, _ := newTestController(t)
	ctx := context.Background()
	require.NoError(t, c.Start(ctx))
	defer c.Stop()

	require.NoError(t, c.SetFocus(ctx, true, OriginManual))

	clock.Advance(5500 * time.Millisecond)
	c.Tick(ctx)
	assert.Equal(t, 5*time.Second, c.Snapshot().Analytics.Daily)

	clock.Advance(500 * time.Millisecond)
	c.Tick(ctx)
	assert.Equal(t, 6*time.Second, c.Snapshot().Analytics.Daily)
	assert.Equal(t, 6*time.Second, c.Snapshot().Analytics.Weekly)
}

func TestController_NoAccountingWhenOff(t *testing.T) {
	c, clock, _ := newTestController(t)
	clock.Advance(time.Minute)
	c.Tick(context.Background())
	assert.Zero(t, c.Snapshot().Analytics.Daily)
}

func TestController_SavesEveryInterval(t *testing.T) {
	defer goleak.VerifyNone(t)
	c, clock, fa := newTestController(t)
	ctx := context.Background()
	require.NoError(t, c.Start(ctx))
	defer c.Stop()
	require.NoError(t, c.SetFocus(ctx, true, OriginManual))

	clock.Advance(10 * time.Second)
	c.Tick(ctx)
	assert.Equal(t, 0, fa.saveCount())

	clock.Advance(50 * time.Second)
	c.Tick(ctx)
	require.Equal(t, 1, fa.saveCount())
	assert.Equal(t, time.Minute, fa.rec.Daily)
}

func TestController_LongGapForcesSave(t *testing.T) {
	c, clock, fa := newTestController(t, WithIntervals(time.Hour, time.Hour))
	ctx := context.Background()
	require.NoError(t, c.Start(ctx))
	defer c.Stop()
	require.NoError(t, c.SetFocus(ctx, true, OriginManual))

	clock.Advance(90 * time.Second)
	c.Tick(ctx)
	assert.Equal(t, 1, fa.saveCount())
}

func TestController_RollsOverAtMidnight(t *testing.T) {
	c, clock, fa := newTestController(t)
	fa.rec = store.AnalyticsRecord{Daily: time.Hour, Weekly: 2 * time.Hour, LastReset: monday}
	ctx := context.Background()
	require.NoError(t, c.Start(ctx))
	defer c.Stop()
	require.NoError(t, c.SetFocus(ctx, true, OriginManual))

	clock.Advance(24 * time.Hour)
	c.Tick(ctx)
	snap := c.Snapshot()
	assert.Equal(t, 24*time.Hour, snap.Analytics.Daily, "daily reset then credited with the gap")
	assert.Equal(t, 26*time.Hour, snap.Analytics.Weekly)
}

func TestController_SetFocusRecords(t *testing.T) {
	fs := &fakeSessions{}
	c, clock, fa := newTestController(t, WithSessionRecorder(fs), WithModeStore(fs))
	ctx := context.Background()

	require.NoError(t, c.SetFocus(ctx, true, OriginSchedule))
	require.NoError(t, c.SetFocus(ctx, true, OriginManual)) // no-op
	clock.Advance(3 * time.Second)
	require.NoError(t, c.SetFocus(ctx, false, OriginManual))

	assert.Equal(t, []string{OriginSchedule}, fs.starts)
	assert.Equal(t, 1, fs.ends)
	assert.Equal(t, []bool{true, false}, fs.modes)
	assert.Equal(t, 3*time.Second, fa.rec.Daily, "turning off credits and saves the remainder")
	assert.True(t, c.Snapshot().FocusStart.IsZero())
}

func TestController_StartStopIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)
	c, _, _ := newTestController(t, WithIntervals(time.Millisecond, time.Minute))
	ctx := context.Background()

	require.NoError(t, c.Start(ctx))
	require.NoError(t, c.Start(ctx))
	assert.True(t, c.Snapshot().Running)

	c.Stop()
	c.Stop()
	assert.False(t, c.Snapshot().Running)
}

func TestController_RunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)
	c, _, _ := newTestController(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestController_CheckURL(t *testing.T) {
	c, _, _ := newTestController(t)
	ctx := context.Background()

	assert.Equal(t, blocklist.Allow, c.CheckURL("https://reddit.com/", blocklist.MainFrame).Kind)

	require.NoError(t, c.SetFocus(ctx, true, OriginManual))
	assert.Equal(t, blocklist.Redirect, c.CheckURL("https://reddit.com/", blocklist.MainFrame).Kind)

	sites, _ := blocklist.New([]string{"netflix.com"})
	c.SetBlockedSites(sites)
	assert.Equal(t, blocklist.Allow, c.CheckURL("https://reddit.com/", blocklist.MainFrame).Kind)
	assert.Equal(t, []string{"netflix.com"}, c.Snapshot().Sites)
}

func TestController_RestoreDoesNotRecord(t *testing.T) {
	fs := &fakeSessions{}
	c, clock, _ := newTestController(t, WithSessionRecorder(fs), WithModeStore(fs))
	c.Restore(true)
	assert.True(t, c.Snapshot().FocusOn)
	assert.Empty(t, fs.starts)
	assert.Empty(t, fs.modes)

	clock.Advance(2 * time.Second)
	c.Tick(context.Background())
	assert.Equal(t, 2*time.Second, c.Snapshot().Analytics.Daily)
}

func TestController_RestoreOffCreditsTime(t *testing.T) {
	c, clock, _ := newTestController(t)
	c.Restore(true)
	clock.Advance(4 * time.Second)
	c.Restore(false)

	snap := c.Snapshot()
	assert.False(t, snap.FocusOn)
	assert.Equal(t, 4*time.Second, snap.Analytics.Daily)
}
