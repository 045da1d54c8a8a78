package host

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/abhisek/focusflow/internal/blocklist"
	"github.com/abhisek/focusflow/internal/classifier"
	"github.com/abhisek/focusflow/internal/focus"
	"github.com/abhisek/focusflow/internal/pipeline"
)

func newController(t *testing.T) *focus.Controller {
	t.Helper()
	sites, _ := blocklist.New([]string{"reddit.com"})
	return focus.NewController(sites, focus.WithDecider(pipeline.New(classifier.Default())))
}

func serve(t *testing.T, c *focus.Controller, input string) []Response {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, Serve(context.Background(), strings.NewReader(input), &out, c, nil))

	var resps []Response
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var r Response
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r))
		resps = append(resps, r)
	}
	return resps
}

func TestServe_Session(t *testing.T) {
	defer goleak.VerifyNone(t)
	c := newController(t)
	input := strings.Join([]string{
		`{"id":"1","type":"check_url","url":"https://www.reddit.com/r/golang","resource_type":"main_frame"}`,
		`{"id":"2","type":"focus","on":true}`,
		`{"id":"3","type":"check_url","url":"https://www.reddit.com/r/golang","resource_type":"main_frame"}`,
		`{"id":"4","type":"check_url","url":"https://old.reddit.com/api","resource_type":"xmlhttprequest"}`,
		``,
		`{"id":"5","type":"video","tab":"7","video_id":"abc","title":"Epic prank compilation gone wrong"}`,
		`{"id":"6","type":"video","tab":"7","video_id":"abc","title":"Epic prank compilation gone wrong"}`,
		`{"id":"7","type":"status"}`,
	}, "\n")

	resps := serve(t, c, input)
	require.Len(t, resps, 7)

	assert.Equal(t, "1", resps[0].ID)
	assert.Equal(t, "allow", resps[0].Action, "focus off blocks nothing")

	require.NotNil(t, resps[1].FocusOn)
	assert.True(t, *resps[1].FocusOn)
	assert.Equal(t, TypeFocus, resps[1].Type)

	assert.Equal(t, "redirect", resps[2].Action)
	assert.Equal(t, "reddit.com", resps[2].Site)
	assert.Equal(t, "blocked.html?site=reddit.com", resps[2].RedirectURL)

	assert.Equal(t, "cancel", resps[3].Action)

	assert.Equal(t, TypeVideo, resps[4].Type)
	assert.True(t, resps[4].Pause)
	assert.True(t, resps[4].ShowWarning)
	require.NotNil(t, resps[4].Educational)
	assert.False(t, *resps[4].Educational)

	assert.False(t, resps[5].ShowWarning, "warned once per video")

	assert.Equal(t, TypeStatus, resps[6].Type)
	assert.Equal(t, []string{"reddit.com"}, resps[6].Sites)
}

func TestHandle_Errors(t *testing.T) {
	c := newController(t)
	ctx := context.Background()
	require.NoError(t, c.SetFocus(ctx, true, focus.OriginManual))

	resp := Handle(ctx, []byte(`not json`), c, nil)
	assert.Equal(t, TypeError, resp.Type)

	resp = Handle(ctx, []byte(`{"id":"9","type":"reboot"}`), c, nil)
	assert.Equal(t, TypeError, resp.Type)
	assert.Equal(t, "9", resp.ID)

	resp = Handle(ctx, []byte(`{"type":"focus"}`), c, nil)
	assert.Equal(t, TypeError, resp.Type)

	resp = Handle(ctx, []byte(`{"type":"video","video_id":"abc"}`), c, nil)
	assert.Equal(t, TypeError, resp.Type)
	assert.True(t, resp.Retry, "missing title is retried")

	resp = Handle(ctx, []byte(`{"type":"video","title":42}`), c, nil)
	assert.Equal(t, TypeError, resp.Type)
	assert.False(t, resp.Retry)
}

func TestHandle_WrongTypedFieldKeepsID(t *testing.T) {
	c := newController(t)
	ctx := context.Background()
	require.NoError(t, c.SetFocus(ctx, true, focus.OriginManual))

	resp := Handle(ctx, []byte(`{"id":"7","type":"video","tab":"1","video_id":"abc","title":5}`), c, nil)
	assert.Equal(t, "7", resp.ID)
	assert.Equal(t, TypeError, resp.Type)
	assert.Contains(t, resp.Error, "invalid argument")
	assert.Contains(t, resp.Error, `"title"`)

	resp = Handle(ctx, []byte(`{"id":"8","type":"video","video_id":"abc","title":"x","channel":["MIT"]}`), c, nil)
	assert.Equal(t, "8", resp.ID)
	assert.Contains(t, resp.Error, `"channel"`)

	resp = Handle(ctx, []byte(`{"id":"9","type":"focus","on":"yes"}`), c, nil)
	assert.Equal(t, "9", resp.ID)
	assert.Equal(t, TypeError, resp.Type)

	resp = Handle(ctx, []byte(`{"id":10,"type":"check_url","url":1}`), c, nil)
	assert.Equal(t, "10", resp.ID, "non-string ids are echoed as written")
	assert.Equal(t, TypeError, resp.Type)
}

func TestHandle_TabClosedResetsWarning(t *testing.T) {
	c := newController(t)
	ctx := context.Background()
	require.NoError(t, c.SetFocus(ctx, true, focus.OriginManual))
	video := []byte(`{"type":"video","tab":"1","video_id":"abc","title":"Funny fails compilation"}`)

	first := Handle(ctx, video, c, nil)
	require.True(t, first.ShowWarning)
	assert.False(t, Handle(ctx, video, c, nil).ShowWarning)

	Handle(ctx, []byte(`{"type":"tab_closed","tab":"1"}`), c, nil)
	assert.True(t, Handle(ctx, video, c, nil).ShowWarning)
}

func TestServe_StopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)
	c := newController(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := Serve(ctx, strings.NewReader(`{"type":"status"}`+"\n"), &out, c, nil)
	assert.NoError(t, err)
}
