package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Preferences are the user options edited from the popup.
type Preferences struct {
	// AutoFocus is "" (off) or AutoFocusCustom, which enables the
	// ScheduleStart..ScheduleEnd window.
	AutoFocus         string   `json:"auto_focus"`
	ScheduleStart     string   `json:"schedule_start"`
	ScheduleEnd       string   `json:"schedule_end"`
	NotifyDistraction bool     `json:"notify_distraction"`
	DailyReport       bool     `json:"daily_report"`
	StrictMode        bool     `json:"strict_mode"`
	AllowedCategories []string `json:"allowed_categories"`
	CollectAnalytics  bool     `json:"collect_analytics"`
}

// AutoFocusCustom turns on the scheduled focus window.
const AutoFocusCustom = "custom"

// ScheduleEnabled reports whether the auto-focus window is in use.
func (p Preferences) ScheduleEnabled() bool {
	return p.AutoFocus == AutoFocusCustom
}

// DefaultPreferences returns the preferences of a fresh install.
func DefaultPreferences() Preferences {
	return Preferences{
		ScheduleStart:     "09:00",
		ScheduleEnd:       "17:00",
		NotifyDistraction: true,
		DailyReport:       false,
		StrictMode:        false,
		AllowedCategories: []string{"education", "science"},
		CollectAnalytics:  true,
	}
}

// SettingsRepo persists focus mode, the blocklist and preferences.
type SettingsRepo interface {
	FocusMode(ctx context.Context) (bool, error)
	SetFocusMode(ctx context.Context, on bool) error

	// BlockedSites returns the stored blocklist. The first read on an
	// empty database seeds and returns the default sites.
	BlockedSites(ctx context.Context) ([]string, error)
	SetBlockedSites(ctx context.Context, sites []string) error

	// Preferences returns stored preferences, or the defaults if none.
	Preferences(ctx context.Context) (Preferences, error)
	SetPreferences(ctx context.Context, p Preferences) error
}

// AnalyticsRecord is the persisted focus-time accounting.
type AnalyticsRecord struct {
	Daily     time.Duration `json:"daily"`
	Weekly    time.Duration `json:"weekly"`
	LastReset time.Time     `json:"last_reset"`
}

// AnalyticsRepo persists the single analytics record.
type AnalyticsRepo interface {
	// Load returns the stored record. On an empty database the record is
	// initialized with zero totals and LastReset set to now.
	Load(ctx context.Context) (AnalyticsRecord, error)
	Save(ctx context.Context, rec AnalyticsRecord) error
	// Reset zeroes both totals and sets LastReset to now.
	Reset(ctx context.Context) error
}

// ClassificationEventData captures a single classification decision.
type ClassificationEventData struct {
	VideoID          string  `json:"video_id,omitempty"`
	Title            string  `json:"title"`
	Channel          string  `json:"channel"`
	Educational      bool    `json:"educational"`
	Source           string  `json:"source"`
	Confidence       float64 `json:"confidence"`
	EducationalScore int     `json:"educational_score"`
	DistractingScore int     `json:"distracting_score"`
	FallbackScore    int     `json:"fallback_score"`
	Reasoning        string  `json:"reasoning"`
}

// ClassificationEvent is a stored classification with ordering metadata.
type ClassificationEvent struct {
	ID        string    `json:"id"`
	Sequence  int64     `json:"sequence"`
	Timestamp time.Time `json:"timestamp"`
	ClassificationEventData
}

// FocusSession is one focus-mode interval. EndedAt is zero while open.
type FocusSession struct {
	ID        string    `json:"id"`
	Sequence  int64     `json:"sequence"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at,omitempty"`
	Origin    string    `json:"origin"`
}

// Duration returns the session length, measured to now if still open.
func (f FocusSession) Duration(now time.Time) time.Duration {
	end := f.EndedAt
	if end.IsZero() {
		end = now
	}
	return end.Sub(f.StartedAt)
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendClassification records a classification decision.
	AppendClassification(ctx context.Context, data ClassificationEventData) error

	// RecentClassifications returns classifications newest first.
	RecentClassifications(ctx context.Context, opts QueryOpts) ([]ClassificationEvent, error)

	// StartFocusSession opens a session and returns its ID. An already
	// open session is returned instead of starting a second one.
	StartFocusSession(ctx context.Context, origin string) (string, error)

	// EndFocusSession closes every open session.
	EndFocusSession(ctx context.Context) error

	// FocusSessions returns sessions newest first.
	FocusSessions(ctx context.Context, opts QueryOpts) ([]FocusSession, error)
}
