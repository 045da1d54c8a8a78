package focus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func at(hhmm string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", "2026-03-02 "+hhmm)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSchedule_Active(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		now        string
		want       bool
	}{
		{"inside day window", "09:00", "17:00", "12:30", true},
		{"at start", "09:00", "17:00", "09:00", true},
		{"at end", "09:00", "17:00", "17:00", false},
		{"before start", "09:00", "17:00", "08:59", false},
		{"overnight late", "22:00", "06:00", "23:15", true},
		{"overnight early", "22:00", "06:00", "05:59", true},
		{"overnight midday", "22:00", "06:00", "12:00", false},
		{"equal times", "09:00", "09:00", "09:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSchedule(tt.start, tt.end, time.UTC, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Active(at(tt.now)))
		})
	}
}

func TestSchedule_ActiveUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	s, err := NewSchedule("09:00", "17:00", loc, nil)
	require.NoError(t, err)
	// 05:00 UTC is 10:00 in loc.
	assert.True(t, s.Active(at("05:00")))
	assert.False(t, s.Active(at("13:00")))
}

func TestSchedule_Specs(t *testing.T) {
	s, err := NewSchedule("09:00", "17:30", time.UTC, nil)
	require.NoError(t, err)
	assert.Equal(t, "0 9 * * *", s.StartSpec())
	assert.Equal(t, "30 17 * * *", s.EndSpec())
}

func TestSchedule_InvalidTime(t *testing.T) {
	for _, v := range []string{"", "9:00", "24:00", "12:60", "noon", "12:00:00"} {
		_, err := NewSchedule(v, "17:00", time.UTC, nil)
		assert.ErrorIs(t, err, ErrInvalidTime, "start %q", v)
	}
}

type recordingSetter struct {
	mu    sync.Mutex
	calls []bool
}

func (r *recordingSetter) SetFocus(_ context.Context, on bool, origin string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if origin == OriginSchedule {
		r.calls = append(r.calls, on)
	}
	return nil
}

func TestSchedule_RunTurnsFocusOnInsideWindow(t *testing.T) {
	defer goleak.VerifyNone(t)
	now := time.Now().UTC()
	s, err := NewSchedule(now.Add(-time.Hour).Format("15:04"), now.Add(time.Hour).Format("15:04"), time.UTC, nil)
	require.NoError(t, err)

	target := &recordingSetter{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, s.Run(ctx, target))
	assert.Equal(t, []bool{true}, target.calls)
}

func TestSchedule_RunIdleOutsideWindow(t *testing.T) {
	defer goleak.VerifyNone(t)
	s, err := NewSchedule("09:00", "09:00", time.UTC, nil)
	require.NoError(t, err)

	target := &recordingSetter{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, s.Run(ctx, target))
	assert.Empty(t, target.calls)
}
