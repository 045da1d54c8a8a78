package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/abhisek/focusflow/internal/config"
	"github.com/abhisek/focusflow/internal/store"
)

func TestRunTracker_BadScheduleStartsNothing(t *testing.T) {
	defer goleak.VerifyNone(t)

	st, err := store.Open("file:TestRunTracker_BadSchedule?mode=memory&cache=shared")
	require.NoError(t, err)
	defer st.Close()

	prefs := store.DefaultPreferences()
	prefs.AutoFocus = store.AutoFocusCustom
	prefs.ScheduleStart = "25:00"
	require.NoError(t, st.SettingsRepo().SetPreferences(context.Background(), prefs))

	e := &env{cfg: config.Default(), logger: zap.NewNop(), store: st}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = runTracker(ctx, cancel, e, false)
	assert.ErrorContains(t, err, "auto-focus schedule")
}
