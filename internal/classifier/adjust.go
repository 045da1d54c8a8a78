package classifier

import "regexp"

// Side identifies which score an adjustment adds to.
type Side int

const (
	SideEducational Side = iota
	SideDistracting
)

func (s Side) String() string {
	if s == SideEducational {
		return "educational"
	}
	return "distracting"
}

// Scores holds the running educational and distracting totals.
type Scores struct {
	Educational int
	Distracting int
}

func (s Scores) add(side Side, n int) Scores {
	if side == SideEducational {
		s.Educational += n
	} else {
		s.Distracting += n
	}
	return s
}

// Adjustment is a fixed additive rule applied after pattern scoring.
type Adjustment struct {
	Name  string
	Side  Side
	Bonus int
	// Applies sees the scores as left by the previous adjustments.
	Applies func(ctx Context, s Scores) bool
}

var (
	seriesPattern    = regexp.MustCompile(`(?i)\b(part|episode|lesson|tutorial|course)\b`)
	technicalPattern = regexp.MustCompile(`(?i)\b(function|variable|method|class|object|protocol|interface)\b`)
	durationPattern  = regexp.MustCompile(`(?i)\b(\d+\s*min|\d+\s*hour|\d+\s*hr)\b`)
	clickbaitPattern = regexp.MustCompile(`(?i)\b(you won't believe|shocking|exposed|truth|hacked)\b`)
	tryNotToPattern  = regexp.MustCompile(`(?i)\btry not to (laugh|cry|blink|smile)\b`)
)

// ambiguityFloor is the score both sides must exceed before the
// close-contest tie-break is considered.
const ambiguityFloor = 5

// closeContestRatio is the educational/(distracting+1) ratio below which a
// contest counts as close.
const closeContestRatio = 1.5

// Adjustments returns the contextual adjustments in application order.
func Adjustments() []Adjustment {
	return []Adjustment{
		{
			Name: "numbered series", Side: SideEducational, Bonus: 2,
			Applies: func(ctx Context, _ Scores) bool {
				return ctx.HasNumbers && seriesPattern.MatchString(ctx.Text)
			},
		},
		{
			Name: "technical vocabulary", Side: SideEducational, Bonus: 2,
			Applies: func(ctx Context, _ Scores) bool {
				return technicalPattern.MatchString(ctx.Text)
			},
		},
		{
			Name: "duration in title", Side: SideEducational, Bonus: 1,
			Applies: func(ctx Context, _ Scores) bool {
				return durationPattern.MatchString(ctx.Title)
			},
		},
		{
			Name: "clickbait phrasing", Side: SideDistracting, Bonus: 3,
			Applies: func(ctx Context, _ Scores) bool {
				return clickbaitPattern.MatchString(ctx.Text)
			},
		},
		{
			Name: "try-not-to challenge", Side: SideDistracting, Bonus: 2,
			Applies: func(ctx Context, _ Scores) bool {
				return tryNotToPattern.MatchString(ctx.Text)
			},
		},
		{
			Name: "close contest tie-break", Side: SideEducational, Bonus: 1,
			Applies: func(ctx Context, s Scores) bool {
				if s.Educational <= ambiguityFloor || s.Distracting <= ambiguityFloor {
					return false
				}
				ratio := float64(s.Educational) / float64(s.Distracting+1)
				return ratio < closeContestRatio && (ctx.HasYear || ctx.HasNumbers)
			},
		},
	}
}

// adjust applies every adjustment in order and returns the final scores and
// the names of the adjustments that fired.
func adjust(ctx Context, s Scores, rules []Adjustment) (Scores, []string) {
	var fired []string
	for _, a := range rules {
		if a.Applies(ctx, s) {
			s = s.add(a.Side, a.Bonus)
			fired = append(fired, a.Name)
		}
	}
	return s, fired
}
