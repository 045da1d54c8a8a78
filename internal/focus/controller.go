// Package focus owns focus mode: the on/off state, the blocklist it
// enforces, focus-time accounting, the per-tab video guard and the
// auto-focus schedule.
package focus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/focusflow/internal/blocklist"
	"github.com/abhisek/focusflow/internal/store"
)

// Focus session origins.
const (
	OriginManual   = "manual"
	OriginSchedule = "schedule"
)

// Defaults for the tracking loop.
const (
	DefaultTickInterval = time.Second
	DefaultSaveInterval = time.Minute
	// forceSaveElapsed forces a save when a single tick accounts for more
	// than this, e.g. after the machine slept.
	forceSaveElapsed = time.Minute
)

// AnalyticsStore loads and persists focus-time totals.
type AnalyticsStore interface {
	Load(ctx context.Context) (store.AnalyticsRecord, error)
	Save(ctx context.Context, rec store.AnalyticsRecord) error
}

// SessionRecorder records focus-mode intervals.
type SessionRecorder interface {
	StartFocusSession(ctx context.Context, origin string) (string, error)
	EndFocusSession(ctx context.Context) error
}

// ModeStore persists the focus-mode flag.
type ModeStore interface {
	SetFocusMode(ctx context.Context, on bool) error
}

// State is a read-only copy of the controller state.
type State struct {
	FocusOn    bool
	FocusStart time.Time
	Sites      []string
	Analytics  Analytics
	Running    bool
}

// Controller is the single owner of focus-mode state. All methods are safe
// for concurrent use.
type Controller struct {
	mu            sync.Mutex
	focusOn       bool
	focusStart    time.Time
	sites         blocklist.List
	analytics     Analytics
	lastAccounted time.Time
	lastSave      time.Time

	analyticsStore AnalyticsStore
	sessions       SessionRecorder
	modes          ModeStore
	decider        Decider
	guards         map[string]*VideoGuard // by tab
	logger         *zap.Logger
	tick           time.Duration
	saveEvery      time.Duration
	now            func() time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Controller.
type Option func(*Controller)

// WithAnalyticsStore loads totals on Start and persists them while tracking.
func WithAnalyticsStore(s AnalyticsStore) Option {
	return func(c *Controller) { c.analyticsStore = s }
}

// WithSessionRecorder records a session for every on/off transition.
func WithSessionRecorder(r SessionRecorder) Option {
	return func(c *Controller) { c.sessions = r }
}

// WithModeStore persists the focus flag on every change.
func WithModeStore(m ModeStore) Option {
	return func(c *Controller) { c.modes = m }
}

// WithDecider enables EvaluateVideo, classifying through d.
func WithDecider(d Decider) Option {
	return func(c *Controller) { c.decider = d }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithIntervals sets the tick and save intervals.
func WithIntervals(tick, save time.Duration) Option {
	return func(c *Controller) {
		if tick > 0 {
			c.tick = tick
		}
		if save > 0 {
			c.saveEvery = save
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// NewController creates a stopped controller with focus mode off.
func NewController(sites blocklist.List, opts ...Option) *Controller {
	c := &Controller{
		sites:     sites,
		logger:    zap.NewNop(),
		tick:      DefaultTickInterval,
		saveEvery: DefaultSaveInterval,
		now:       time.Now,
		guards:    make(map[string]*VideoGuard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Restore adopts a focus state that was changed elsewhere, at startup or by
// another process, without persisting or recording a transition. Time
// accrued before an adopted off is still credited.
func (c *Controller) Restore(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.focusOn == on {
		return
	}
	now := c.now()
	if on {
		c.focusStart = now
		c.lastAccounted = now
	} else {
		c.accountLocked(now)
		c.focusStart = time.Time{}
	}
	c.focusOn = on
}

// Start loads persisted analytics and launches the tracking loop. Calling
// Start on a running controller is a no-op.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done != nil {
		return nil
	}

	now := c.now()
	if c.analyticsStore != nil {
		rec, err := c.analyticsStore.Load(ctx)
		if err != nil {
			return fmt.Errorf("load analytics: %w", err)
		}
		c.analytics = FromRecord(rec)
	}
	if c.analytics.LastReset.IsZero() {
		c.analytics.LastReset = now
	}
	c.lastSave = now
	if c.focusOn {
		c.lastAccounted = now
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	go c.run(runCtx, c.done)

	c.logger.Debug("focus tracking started", zap.Duration("tick", c.tick))
	return nil
}

// Stop ends the tracking loop, waits for it to exit and flushes analytics.
// Calling Stop on a stopped controller is a no-op.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.done == nil {
		c.mu.Unlock()
		return
	}
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	cancel()
	<-done

	if err := c.flush(context.Background()); err != nil {
		c.logger.Warn("failed to save analytics on stop", zap.Error(err))
	}
	c.logger.Debug("focus tracking stopped")
}

// Run starts the controller and blocks until ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	if err := c.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	c.Stop()
	return nil
}

func (c *Controller) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick(ctx)
		}
	}
}

// Tick accounts focus time since the previous tick and saves when due.
// The tracking loop calls it every tick interval.
func (c *Controller) Tick(ctx context.Context) {
	c.mu.Lock()
	if !c.focusOn {
		c.mu.Unlock()
		return
	}
	now := c.now()
	elapsed := c.accountLocked(now)
	due := now.Sub(c.lastSave) >= c.saveEvery || elapsed > forceSaveElapsed
	rec := c.analytics.record()
	c.mu.Unlock()

	if !due || c.analyticsStore == nil {
		return
	}
	if err := c.analyticsStore.Save(ctx, rec); err != nil {
		if !errors.Is(err, context.Canceled) {
			c.logger.Warn("failed to save analytics", zap.Error(err))
		}
		return
	}
	c.mu.Lock()
	c.lastSave = now
	c.mu.Unlock()
}

// accountLocked rolls the totals over and credits the whole seconds since
// the last accounting. It returns the credited duration.
func (c *Controller) accountLocked(now time.Time) time.Duration {
	c.analytics = c.analytics.Rollover(now)
	elapsed := now.Sub(c.lastAccounted).Truncate(time.Second)
	if elapsed <= 0 {
		return 0
	}
	c.analytics = c.analytics.Add(elapsed)
	c.lastAccounted = c.lastAccounted.Add(elapsed)
	return elapsed
}

func (c *Controller) flush(ctx context.Context) error {
	if c.analyticsStore == nil {
		return nil
	}
	c.mu.Lock()
	rec := c.analytics.record()
	c.mu.Unlock()
	if err := c.analyticsStore.Save(ctx, rec); err != nil {
		return err
	}
	c.mu.Lock()
	c.lastSave = c.now()
	c.mu.Unlock()
	return nil
}

// SetFocus turns focus mode on or off. Setting the current state again is
// a no-op. Turning focus off credits the time accrued since the last tick.
func (c *Controller) SetFocus(ctx context.Context, on bool, origin string) error {
	c.mu.Lock()
	if c.focusOn == on {
		c.mu.Unlock()
		return nil
	}
	now := c.now()
	if on {
		c.focusStart = now
		c.lastAccounted = now
	} else {
		c.accountLocked(now)
		c.focusStart = time.Time{}
	}
	c.focusOn = on
	c.mu.Unlock()

	c.logger.Info("focus mode changed", zap.Bool("on", on), zap.String("origin", origin))

	var errs []error
	if c.modes != nil {
		if err := c.modes.SetFocusMode(ctx, on); err != nil {
			errs = append(errs, fmt.Errorf("persist focus mode: %w", err))
		}
	}
	if c.sessions != nil {
		var err error
		if on {
			_, err = c.sessions.StartFocusSession(ctx, origin)
		} else {
			err = c.sessions.EndFocusSession(ctx)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("record focus session: %w", err))
		}
	}
	if !on {
		if err := c.flush(ctx); err != nil {
			errs = append(errs, fmt.Errorf("save analytics: %w", err))
		}
	}
	return errors.Join(errs...)
}

// SetBlockedSites replaces the enforced blocklist.
func (c *Controller) SetBlockedSites(l blocklist.List) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sites = l
}

// CheckURL decides what happens to a request under the current state.
func (c *Controller) CheckURL(rawURL string, rt blocklist.ResourceType) blocklist.Action {
	c.mu.Lock()
	sites, on := c.sites, c.focusOn
	c.mu.Unlock()
	return sites.Check(rawURL, rt, on)
}

// EvaluateVideo runs the page's tab guard when focus mode is on.
func (c *Controller) EvaluateVideo(ctx context.Context, page VideoPage) (VideoAction, error) {
	c.mu.Lock()
	if !c.focusOn || c.decider == nil {
		c.mu.Unlock()
		return VideoAction{}, nil
	}
	g, ok := c.guards[page.Tab]
	if !ok {
		g = NewVideoGuard(c.decider)
		c.guards[page.Tab] = g
	}
	c.mu.Unlock()
	return g.Evaluate(ctx, page)
}

// CloseTab forgets the guard state of a closed tab.
func (c *Controller) CloseTab(tab string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.guards, tab)
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		FocusOn:    c.focusOn,
		FocusStart: c.focusStart,
		Sites:      c.sites.Sites(),
		Analytics:  c.analytics,
		Running:    c.done != nil,
	}
}
