package app

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/focusflow/internal/blocklist"
	"github.com/abhisek/focusflow/internal/classifier"
	"github.com/abhisek/focusflow/internal/focus"
	"github.com/abhisek/focusflow/internal/pipeline"
	"github.com/abhisek/focusflow/internal/router"
	"github.com/abhisek/focusflow/internal/screen"
	"github.com/abhisek/focusflow/internal/screens/home"
	"github.com/abhisek/focusflow/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		store.WithDefaultSites([]string{"reddit.com"}))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestBackend(t *testing.T) (*backend, *store.Store) {
	t.Helper()
	st := openTestStore(t)
	c := focus.NewController(blocklist.List{},
		focus.WithModeStore(st.SettingsRepo()),
		focus.WithSessionRecorder(st.EventRepo()),
	)
	return &backend{
		settings:   st.SettingsRepo(),
		analytics:  st.AnalyticsRepo(),
		controller: c,
		now:        time.Now,
	}, st
}

func TestBackend_Status(t *testing.T) {
	ctx := context.Background()
	b, st := newTestBackend(t)
	require.NoError(t, st.SettingsRepo().SetFocusMode(ctx, true))

	status, err := b.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, home.Status{FocusOn: true, Sites: 1}, status)
}

func TestBackend_SetFocus(t *testing.T) {
	ctx := context.Background()
	b, st := newTestBackend(t)

	require.NoError(t, b.SetFocus(ctx, true))

	on, err := st.SettingsRepo().FocusMode(ctx)
	require.NoError(t, err)
	assert.True(t, on)

	sessions, err := st.EventRepo().FocusSessions(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, focus.OriginManual, sessions[0].Origin)
	assert.True(t, sessions[0].EndedAt.IsZero())

	// The controller picked up the stored blocklist.
	assert.Equal(t, blocklist.Redirect, b.controller.CheckURL("https://www.reddit.com/r/golang", blocklist.MainFrame).Kind)
}

func TestBackend_SetFocusAdoptsStoredState(t *testing.T) {
	ctx := context.Background()
	b, st := newTestBackend(t)

	// Turned on elsewhere; turning it on here must not open a second session.
	require.NoError(t, st.SettingsRepo().SetFocusMode(ctx, true))
	require.NoError(t, b.SetFocus(ctx, true))

	sessions, err := st.EventRepo().FocusSessions(ctx, store.QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestBackend_AddRemoveSite(t *testing.T) {
	ctx := context.Background()
	b, st := newTestBackend(t)

	got, err := b.AddSite(ctx, "WWW.Netflix.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"reddit.com", "netflix.com"}, got)

	_, err = b.AddSite(ctx, "not a site/")
	assert.Error(t, err)

	got, err = b.RemoveSite(ctx, "reddit.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"netflix.com"}, got)

	stored, err := st.SettingsRepo().BlockedSites(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"netflix.com"}, stored)
}

func newTestModel(t *testing.T) AppModel {
	t.Helper()
	st := openTestStore(t)
	return newAppModel(Options{
		Settings:   st.SettingsRepo(),
		Analytics:  st.AnalyticsRepo(),
		Controller: focus.NewController(blocklist.List{}, focus.WithModeStore(st.SettingsRepo())),
		Pipeline:   pipeline.New(classifier.Default()),
	})
}

func TestAppModel_StatusUpdatesHeader(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(home.StatusMsg{Status: home.Status{FocusOn: true, TodayMinutes: 12}})
	m = next.(AppModel)
	assert.True(t, m.status.FocusOn)
	assert.Equal(t, 12, m.status.TodayMinutes)
}

type stubScreen struct{ capturing bool }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "stub" }
func (s *stubScreen) Title() string                           { return "Stub" }
func (s *stubScreen) CapturesInput() bool                     { return s.capturing }

func TestAppModel_EscKeptByCapturingScreen(t *testing.T) {
	m := newTestModel(t)
	m.router.Push(&stubScreen{capturing: true})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
	assert.Equal(t, 2, m.router.Depth())
}

func TestAppModel_EscPopsScreen(t *testing.T) {
	m := newTestModel(t)
	m.router.Push(&stubScreen{})
	require.Equal(t, 2, m.router.Depth())

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}
