// Package host speaks the line-delimited JSON protocol between the browser
// side and the focus controller. Each input line is one message; each
// message gets exactly one response line carrying the same id.
package host

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/abhisek/focusflow/internal/blocklist"
	"github.com/abhisek/focusflow/internal/classifier"
	"github.com/abhisek/focusflow/internal/focus"
)

// Message types.
const (
	TypeCheckURL  = "check_url"
	TypeVideo     = "video"
	TypeTabClosed = "tab_closed"
	TypeFocus     = "focus"
	TypeStatus    = "status"
	TypeError     = "error"
)

// maxLine bounds a single message.
const maxLine = 1 << 20

// Target is the controller the host drives.
type Target interface {
	CheckURL(rawURL string, rt blocklist.ResourceType) blocklist.Action
	EvaluateVideo(ctx context.Context, page focus.VideoPage) (focus.VideoAction, error)
	CloseTab(tab string)
	SetFocus(ctx context.Context, on bool, origin string) error
	Snapshot() focus.State
}

// Message is an inbound request.
type Message struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type"`

	// check_url
	URL          string `json:"url,omitempty"`
	ResourceType string `json:"resource_type,omitempty"`

	// video, tab_closed
	Tab         string `json:"tab,omitempty"`
	VideoID     string `json:"video_id,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Channel     string `json:"channel,omitempty"`
	Offline     bool   `json:"offline,omitempty"`

	// focus
	On *bool `json:"on,omitempty"`
}

// Response is an outbound reply.
type Response struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type"`

	// check_url
	Action      string `json:"action,omitempty"`
	Site        string `json:"site,omitempty"`
	RedirectURL string `json:"redirect_url,omitempty"`

	// video
	Pause          bool   `json:"pause,omitempty"`
	ShowWarning    bool   `json:"show_warning,omitempty"`
	EnablePlayback bool   `json:"enable_playback,omitempty"`
	Educational    *bool  `json:"educational,omitempty"`
	Source         string `json:"source,omitempty"`

	// status, focus
	FocusOn      *bool    `json:"focus_on,omitempty"`
	TodayMinutes *int     `json:"today_minutes,omitempty"`
	WeekMinutes  *int     `json:"week_minutes,omitempty"`
	Sites        []string `json:"sites,omitempty"`

	// error
	Error string `json:"error,omitempty"`
	Retry bool   `json:"retry,omitempty"`
}

// Serve reads messages from r and writes responses to w until r is
// exhausted or ctx is done. Malformed lines get an error response; they do
// not stop the loop.
func Serve(ctx context.Context, r io.Reader, w io.Writer, t Target, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	// A blocked read outlives a cancelled ctx; the reader exits once r is
	// exhausted.
	lines := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	enc := json.NewEncoder(w)

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("read messages: %w", err)
					}
				default:
				}
				return nil
			}
			if len(line) == 0 {
				continue
			}
			if err := enc.Encode(Handle(ctx, line, t, logger)); err != nil {
				return fmt.Errorf("write response: %w", err)
			}
		}
	}
}

// Handle processes one raw message. Once the line parses as a JSON object
// its id is echoed, even when other fields are invalid.
func Handle(ctx context.Context, raw []byte, t Target, logger *zap.Logger) Response {
	if logger == nil {
		logger = zap.NewNop()
	}

	id, typ, err := envelope(raw)
	if err != nil {
		return Response{ID: id, Type: TypeError, Error: fmt.Sprintf("malformed message: %v", err)}
	}
	if typ == TypeVideo {
		// Video text goes through the classifier's request rules so a
		// wrong-typed field is reported by name.
		if _, err := classifier.DecodeRequest(raw); err != nil {
			return Response{ID: id, Type: TypeError, Error: err.Error()}
		}
	}

	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return Response{ID: id, Type: TypeError, Error: fmt.Sprintf("malformed message: %v", err)}
	}

	switch msg.Type {
	case TypeCheckURL:
		a := t.CheckURL(msg.URL, blocklist.ParseResourceType(msg.ResourceType))
		return Response{
			ID:          msg.ID,
			Type:        TypeCheckURL,
			Action:      a.Kind.String(),
			Site:        a.Site,
			RedirectURL: a.RedirectURL,
		}

	case TypeVideo:
		action, err := t.EvaluateVideo(ctx, focus.VideoPage{
			Tab:         msg.Tab,
			VideoID:     msg.VideoID,
			Title:       msg.Title,
			Description: msg.Description,
			Channel:     msg.Channel,
			Offline:     msg.Offline,
		})
		if err != nil {
			return Response{ID: msg.ID, Type: TypeError, Error: err.Error(), Retry: errors.Is(err, focus.ErrNoTitle)}
		}
		resp := Response{
			ID:             msg.ID,
			Type:           TypeVideo,
			Pause:          action.Pause,
			ShowWarning:    action.ShowWarning,
			EnablePlayback: action.EnablePlayback,
		}
		if d := action.Decision; d != nil {
			edu := d.Educational
			resp.Educational = &edu
			resp.Source = string(d.Source)
		}
		return resp

	case TypeTabClosed:
		t.CloseTab(msg.Tab)
		return Response{ID: msg.ID, Type: TypeTabClosed}

	case TypeFocus:
		if msg.On == nil {
			return Response{ID: msg.ID, Type: TypeError, Error: "focus message without \"on\""}
		}
		if err := t.SetFocus(ctx, *msg.On, focus.OriginManual); err != nil {
			// The state change itself happened; persistence failed.
			logger.Warn("focus change not fully persisted", zap.Error(err))
		}
		resp := status(t.Snapshot())
		resp.ID, resp.Type = msg.ID, TypeFocus
		return resp

	case TypeStatus:
		resp := status(t.Snapshot())
		resp.ID = msg.ID
		return resp

	default:
		return Response{ID: msg.ID, Type: TypeError, Error: fmt.Sprintf("unknown message type %q", msg.Type)}
	}
}

// envelope extracts id and type. A non-string id is echoed as its JSON
// text so the caller can still correlate the reply.
func envelope(raw []byte) (id, typ string, err error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", "", err
	}
	if v, ok := fields["id"]; ok {
		if json.Unmarshal(v, &id) != nil {
			id = string(v)
		}
	}
	if v, ok := fields["type"]; ok {
		if err := json.Unmarshal(v, &typ); err != nil {
			return id, "", fmt.Errorf("type: %w", err)
		}
	}
	return id, typ, nil
}

func status(s focus.State) Response {
	on := s.FocusOn
	today, week := s.Analytics.Minutes()
	return Response{
		Type:         TypeStatus,
		FocusOn:      &on,
		TodayMinutes: &today,
		WeekMinutes:  &week,
		Sites:        s.Sites,
	}
}
