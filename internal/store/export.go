package store

import (
	"context"
	"fmt"
	"time"
)

// ExportData is a full dump of everything the store holds.
type ExportData struct {
	ExportedAt      time.Time             `json:"exported_at"`
	FocusMode       bool                  `json:"focus_mode"`
	BlockedSites    []string              `json:"blocked_sites"`
	Preferences     Preferences           `json:"preferences"`
	Analytics       ExportAnalytics       `json:"analytics"`
	Classifications []ClassificationEvent `json:"classifications"`
	FocusSessions   []FocusSession        `json:"focus_sessions"`
}

// ExportAnalytics reports focus time in seconds.
type ExportAnalytics struct {
	DailySeconds  int64     `json:"daily"`
	WeeklySeconds int64     `json:"weekly"`
	LastReset     time.Time `json:"last_reset"`
}

// Export collects settings, analytics and every stored event.
func (s *Store) Export(ctx context.Context) (*ExportData, error) {
	settings := s.SettingsRepo()
	out := &ExportData{ExportedAt: s.now()}

	var err error
	if out.FocusMode, err = settings.FocusMode(ctx); err != nil {
		return nil, fmt.Errorf("export focus mode: %w", err)
	}
	if out.BlockedSites, err = settings.BlockedSites(ctx); err != nil {
		return nil, fmt.Errorf("export blocked sites: %w", err)
	}
	if out.Preferences, err = settings.Preferences(ctx); err != nil {
		return nil, fmt.Errorf("export preferences: %w", err)
	}

	rec, err := s.AnalyticsRepo().Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("export analytics: %w", err)
	}
	out.Analytics = ExportAnalytics{
		DailySeconds:  int64(rec.Daily / time.Second),
		WeeklySeconds: int64(rec.Weekly / time.Second),
		LastReset:     rec.LastReset,
	}

	events := s.EventRepo()
	if out.Classifications, err = events.RecentClassifications(ctx, QueryOpts{}); err != nil {
		return nil, fmt.Errorf("export classifications: %w", err)
	}
	if out.FocusSessions, err = events.FocusSessions(ctx, QueryOpts{}); err != nil {
		return nil, fmt.Errorf("export focus sessions: %w", err)
	}
	return out, nil
}
