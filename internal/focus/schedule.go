package focus

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ErrInvalidTime is returned for schedule times not in HH:MM form.
var ErrInvalidTime = errors.New("invalid schedule time")

var timeHHMM = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// FocusSetter is driven by the schedule.
type FocusSetter interface {
	SetFocus(ctx context.Context, on bool, origin string) error
}

// Schedule is a daily auto-focus window, e.g. 09:00 to 17:00. A window
// whose end is before its start wraps past midnight.
type Schedule struct {
	start, end time.Duration // offsets from midnight
	loc        *time.Location
	logger     *zap.Logger
}

// NewSchedule parses HH:MM start and end times in loc.
func NewSchedule(start, end string, loc *time.Location, logger *zap.Logger) (*Schedule, error) {
	s, err := parseHHMM(start)
	if err != nil {
		return nil, err
	}
	e, err := parseHHMM(end)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Schedule{start: s, end: e, loc: loc, logger: logger}, nil
}

// Active reports whether now falls inside the window.
func (s *Schedule) Active(now time.Time) bool {
	t := now.In(s.loc)
	m := time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
	switch {
	case s.start == s.end:
		return false
	case s.start < s.end:
		return m >= s.start && m < s.end
	default:
		return m >= s.start || m < s.end
	}
}

// StartSpec and EndSpec are the cron expressions for the window edges.
func (s *Schedule) StartSpec() string { return cronSpec(s.start) }
func (s *Schedule) EndSpec() string   { return cronSpec(s.end) }

// Run turns focus on at the window start and off at its end until ctx is
// done. If the window is already open, focus is turned on immediately.
func (s *Schedule) Run(ctx context.Context, target FocusSetter) error {
	set := func(on bool) {
		if err := target.SetFocus(ctx, on, OriginSchedule); err != nil {
			s.logger.Warn("scheduled focus change failed", zap.Bool("on", on), zap.Error(err))
		}
	}

	c := cron.New(cron.WithLocation(s.loc))
	if _, err := c.AddFunc(s.StartSpec(), func() { set(true) }); err != nil {
		return fmt.Errorf("add start cron: %w", err)
	}
	if _, err := c.AddFunc(s.EndSpec(), func() { set(false) }); err != nil {
		return fmt.Errorf("add end cron: %w", err)
	}

	if s.Active(time.Now()) {
		set(true)
	}

	c.Start()
	s.logger.Info("focus schedule running",
		zap.String("start", s.StartSpec()),
		zap.String("end", s.EndSpec()),
		zap.String("location", s.loc.String()))

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

func cronSpec(offset time.Duration) string {
	h := int(offset / time.Hour)
	m := int((offset % time.Hour) / time.Minute)
	return fmt.Sprintf("%d %d * * *", m, h)
}

func parseHHMM(v string) (time.Duration, error) {
	if !timeHHMM.MatchString(v) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, v)
	}
	parsed, err := time.Parse("15:04", v)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	return time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute, nil
}
