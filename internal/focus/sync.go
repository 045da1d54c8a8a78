package focus

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/focusflow/internal/blocklist"
)

// SettingsReader is the part of the settings store a StoreSync polls.
type SettingsReader interface {
	FocusMode(ctx context.Context) (bool, error)
	BlockedSites(ctx context.Context) ([]string, error)
}

// StoreSync adopts focus-mode and blocklist changes written to the store by
// other processes. It acts only when a stored value differs from its own
// previous read, never on a difference from the controller: changes the
// controller made itself are persisted first and must not be undone by a
// read that raced with them.
type StoreSync struct {
	settings SettingsReader
	c        *Controller
	logger   *zap.Logger

	focusOn bool
	sites   []string
}

// NewStoreSync creates a sync primed with the controller's current state,
// so it must be created after the controller adopted the stored values.
func NewStoreSync(settings SettingsReader, c *Controller, logger *zap.Logger) *StoreSync {
	if logger == nil {
		logger = zap.NewNop()
	}
	st := c.Snapshot()
	return &StoreSync{settings: settings, c: c, logger: logger, focusOn: st.FocusOn, sites: st.Sites}
}

// Sync reads the store once.
func (s *StoreSync) Sync(ctx context.Context) error {
	on, err := s.settings.FocusMode(ctx)
	if err != nil {
		return err
	}
	stored, err := s.settings.BlockedSites(ctx)
	if err != nil {
		return err
	}

	if on != s.focusOn {
		s.focusOn = on
		s.logger.Info("adopting stored focus mode", zap.Bool("on", on))
		s.c.Restore(on)
	}
	list, _ := blocklist.New(stored)
	if sites := list.Sites(); !slices.Equal(sites, s.sites) {
		s.sites = sites
		s.logger.Info("adopting stored blocklist", zap.Int("sites", list.Len()))
		s.c.SetBlockedSites(list)
	}
	return nil
}

// Run syncs every interval until ctx is done. Failed reads are logged and
// retried on the next tick.
func (s *StoreSync) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.Sync(ctx); err != nil && ctx.Err() == nil {
				s.logger.Warn("state sync failed", zap.Error(err))
			}
		}
	}
}
