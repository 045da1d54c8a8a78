// Package classifier scores a video's title, description and channel against
// the weighted pattern catalogs and produces an educational-vs-distracting
// verdict with a confidence value.
//
// The engine is stateless: identical inputs always produce identical
// verdicts, and an Engine may be used from any number of goroutines.
package classifier

import (
	"regexp"

	"github.com/abhisek/focusflow/internal/patterns"
)

// ChannelBonus is added to the educational score when the channel name looks
// like an educational institution.
const ChannelBonus = 3

// StrongSignalThreshold is the winning score above which the reasoning calls
// the signals strong.
const StrongSignalThreshold = 15

var (
	institutionChannelPattern = regexp.MustCompile(
		`(?i)\b(university|college|academy|institute|education|learning|mit|harvard|stanford|cambridge|oxford|opencourseware)\b`)
	verifiedChannelPattern = regexp.MustCompile(
		`(?i)\b(university|college|academy|mit|harvard|stanford|cambridge|oxford|opencourseware)\b`)
)

// Engine is the weighted rule-based classifier.
type Engine struct {
	educational patterns.Catalog
	distracting patterns.Catalog
	adjustments []Adjustment
}

// New creates an engine over the given catalogs.
func New(educational, distracting patterns.Catalog) *Engine {
	return &Engine{
		educational: educational,
		distracting: distracting,
		adjustments: Adjustments(),
	}
}

// Default creates an engine over the compiled-in catalogs.
func Default() *Engine {
	return New(patterns.Educational(), patterns.Distracting())
}

// Classify scores the given fields and returns a verdict. Empty strings are
// valid input; an all-empty call yields a neutral, distracting verdict.
func (e *Engine) Classify(title, description, channel string) Verdict {
	v, _ := e.classify(NewContext(title, description, channel))
	return v
}

// ClassifyRequest classifies a decoded host request.
func (e *Engine) ClassifyRequest(r Request) Verdict {
	return e.Classify(r.Title, r.Description, r.Channel)
}

// Explain classifies and also reports which rules and adjustments fired.
func (e *Engine) Explain(title, description, channel string) Explanation {
	ctx := NewContext(title, description, channel)
	v, fired := e.classify(ctx)
	return Explanation{
		Verdict:            v,
		Context:            ctx,
		EducationalMatches: e.educational.Matches(ctx.Text, ctx.Channel),
		DistractingMatches: e.distracting.Matches(ctx.Text),
		ChannelBonus:       institutionChannelPattern.MatchString(ctx.Channel),
		Adjustments:        fired,
	}
}

func (e *Engine) classify(ctx Context) (Verdict, []string) {
	base := Scores{
		Educational: e.educationalScore(ctx),
		Distracting: e.distractingScore(ctx),
	}
	final, fired := adjust(ctx, base, e.adjustments)

	return Verdict{
		IsEducational:    final.Educational > final.Distracting,
		Confidence:       confidence(final),
		EducationalScore: final.Educational,
		DistractingScore: final.Distracting,
		Reasoning:        reasoning(final, ctx),
	}, fired
}

// educationalScore checks both the text and the channel name.
func (e *Engine) educationalScore(ctx Context) int {
	score := e.educational.Score(ctx.Text, ctx.Channel)
	if institutionChannelPattern.MatchString(ctx.Channel) {
		score += ChannelBonus
	}
	return score
}

// distractingScore only looks at the text. A channel name is treated as a
// signal for educational content only.
func (e *Engine) distractingScore(ctx Context) int {
	return e.distracting.Score(ctx.Text)
}

// Explanation is a verdict plus the evidence behind it.
type Explanation struct {
	Verdict            Verdict
	Context            Context
	EducationalMatches []patterns.Match
	DistractingMatches []patterns.Match
	ChannelBonus       bool
	Adjustments        []string
}
