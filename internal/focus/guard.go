package focus

import (
	"context"
	"errors"
	"sync"

	"github.com/abhisek/focusflow/internal/classifier"
	"github.com/abhisek/focusflow/internal/pipeline"
)

// ErrNoTitle means the page has not rendered its title yet; the host
// should retry shortly.
var ErrNoTitle = errors.New("video title not available yet")

// Decider classifies a video request.
type Decider interface {
	Decide(ctx context.Context, req pipeline.Request) pipeline.Decision
}

// VideoPage is what the host reports about the page in one tab.
type VideoPage struct {
	Tab         string
	VideoID     string
	Title       string
	Description string
	Channel     string
	Offline     bool
}

// VideoAction tells the host what to do with the player.
type VideoAction struct {
	Pause          bool
	ShowWarning    bool
	EnablePlayback bool
	// Decision is nil when no classification ran.
	Decision *pipeline.Decision
}

// VideoGuard tracks, for one tab, which video is showing and whether the
// distraction warning was already shown for it.
type VideoGuard struct {
	mu           sync.Mutex
	decider      Decider
	videoID      string
	warningShown bool
}

// NewVideoGuard creates a guard that classifies through d.
func NewVideoGuard(d Decider) *VideoGuard {
	return &VideoGuard{decider: d}
}

// Observe records the video currently on the page. A different video
// clears the warning flag. It reports whether the video changed.
func (g *VideoGuard) Observe(videoID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.observeLocked(videoID)
}

func (g *VideoGuard) observeLocked(videoID string) bool {
	if videoID == g.videoID {
		return false
	}
	g.videoID = videoID
	g.warningShown = false
	return true
}

// WarningShown reports whether the current video has been warned about.
func (g *VideoGuard) WarningShown() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.warningShown
}

// Evaluate classifies the page and returns the player action. Pages
// without a video need nothing. A distracting video is paused and warned
// about once; an educational one has playback re-enabled.
func (g *VideoGuard) Evaluate(ctx context.Context, page VideoPage) (VideoAction, error) {
	g.mu.Lock()
	g.observeLocked(page.VideoID)
	g.mu.Unlock()

	if page.VideoID == "" {
		return VideoAction{}, nil
	}
	if page.Title == "" && !page.Offline {
		return VideoAction{}, ErrNoTitle
	}

	d := g.decider.Decide(ctx, pipeline.Request{
		Request: classifier.Request{
			Title:       page.Title,
			Description: page.Description,
			Channel:     page.Channel,
		},
		VideoID: page.VideoID,
		Offline: page.Offline,
	})
	action := VideoAction{Decision: &d}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.videoID != page.VideoID {
		// The tab moved on while classifying.
		return VideoAction{Decision: &d}, nil
	}
	switch {
	case d.Educational:
		action.EnablePlayback = true
	case !g.warningShown:
		action.Pause = true
		action.ShowWarning = true
		g.warningShown = true
	}
	return action, nil
}
