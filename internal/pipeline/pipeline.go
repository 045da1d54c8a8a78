// Package pipeline decides whether a video is educational by running the
// weighted classifier first and the keyword fallback when the classifier is
// not confident enough.
package pipeline

import (
	"context"
	"strings"
	"sync/atomic"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/abhisek/focusflow/internal/classifier"
	"github.com/abhisek/focusflow/internal/fallback"
	"github.com/abhisek/focusflow/internal/store"
)

// DefaultThreshold is the confidence the classifier must exceed for its
// verdict to be used.
const DefaultThreshold = 0.7

// Source names the stage that produced a decision.
type Source string

const (
	SourcePrimary  Source = "primary"
	SourceFallback Source = "fallback"
	SourceOffline  Source = "offline"
)

// Request is a classification request as reported by the host page.
type Request struct {
	classifier.Request
	VideoID string
	// Offline is set when the host has no connectivity.
	Offline bool
}

// Decision is the outcome of the pipeline.
type Decision struct {
	Educational bool   `json:"educational"`
	Source      Source `json:"source"`
	// Verdict is nil for offline decisions.
	Verdict *classifier.Verdict `json:"verdict,omitempty"`
	// Fallback is set only when the fallback scorer was authoritative.
	Fallback *fallback.Result `json:"fallback,omitempty"`
}

// Pipeline is safe for concurrent use. The engine may be swapped while
// decisions are in flight.
type Pipeline struct {
	engine    atomic.Pointer[classifier.Engine]
	threshold float64
	logger    *zap.Logger
	events    store.EventRepo
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithThreshold overrides DefaultThreshold.
func WithThreshold(t float64) Option {
	return func(p *Pipeline) { p.threshold = t }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithEventRepo records every decision as a classification event.
func WithEventRepo(r store.EventRepo) Option {
	return func(p *Pipeline) { p.events = r }
}

// New creates a pipeline around engine.
func New(engine *classifier.Engine, opts ...Option) *Pipeline {
	p := &Pipeline{
		threshold: DefaultThreshold,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.engine.Store(engine)
	return p
}

// SetEngine replaces the classifier engine, e.g. after a pattern reload.
func (p *Pipeline) SetEngine(e *classifier.Engine) {
	p.engine.Store(e)
}

// Engine returns the current classifier engine.
func (p *Pipeline) Engine() *classifier.Engine {
	return p.engine.Load()
}

// Threshold returns the confidence threshold.
func (p *Pipeline) Threshold() float64 {
	return p.threshold
}

// Decide classifies a request. Offline requests are conservatively treated
// as not educational without classifying.
func (p *Pipeline) Decide(ctx context.Context, req Request) Decision {
	req.Request = Clean(req.Request)

	var d Decision
	if req.Offline {
		d = Decision{Educational: false, Source: SourceOffline}
	} else {
		d = p.classify(req.Request)
	}

	p.logger.Debug("classification decided",
		zap.String("video_id", req.VideoID),
		zap.String("title", req.Title),
		zap.String("source", string(d.Source)),
		zap.Bool("educational", d.Educational),
	)
	p.record(ctx, req, d)
	return d
}

func (p *Pipeline) classify(req classifier.Request) Decision {
	v := p.engine.Load().ClassifyRequest(req)
	if v.Confidence > p.threshold {
		return Decision{Educational: v.IsEducational, Source: SourcePrimary, Verdict: &v}
	}

	fb := fallback.Score(req.Title, req.Description, req.Channel)
	p.logger.Debug("classifier confidence below threshold, using fallback",
		zap.Float64("confidence", v.Confidence),
		zap.Float64("threshold", p.threshold),
		zap.Int("fallback_score", fb.Score),
		zap.Strings("overrides", fb.Overrides),
	)
	return Decision{Educational: fb.Educational, Source: SourceFallback, Verdict: &v, Fallback: &fb}
}

// record appends the decision to the event log. Failures are logged, never
// returned: the decision stands regardless.
func (p *Pipeline) record(ctx context.Context, req Request, d Decision) {
	if p.events == nil {
		return
	}
	data := store.ClassificationEventData{
		VideoID:     req.VideoID,
		Title:       req.Title,
		Channel:     req.Channel,
		Educational: d.Educational,
		Source:      string(d.Source),
	}
	if d.Verdict != nil {
		data.Confidence = d.Verdict.Confidence
		data.EducationalScore = d.Verdict.EducationalScore
		data.DistractingScore = d.Verdict.DistractingScore
		data.Reasoning = d.Verdict.Summary()
	}
	if d.Fallback != nil {
		data.FallbackScore = d.Fallback.Score
	}
	if err := p.events.AppendClassification(ctx, data); err != nil {
		p.logger.Warn("failed to record classification event", zap.Error(err))
	}
}

// Clean normalizes host-supplied text: NFKC, control characters replaced
// by spaces, surrounding whitespace trimmed.
func Clean(r classifier.Request) classifier.Request {
	return classifier.Request{
		Title:       cleanField(r.Title),
		Description: cleanField(r.Description),
		Channel:     cleanField(r.Channel),
	}
}

func cleanField(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
