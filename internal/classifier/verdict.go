package classifier

import (
	"fmt"
	"math"
	"strings"
)

// NeutralConfidence is the confidence floor, and the exact value reported
// when neither side scored.
const NeutralConfidence = 0.5

// Verdict is the outcome of one classification.
type Verdict struct {
	IsEducational    bool     `json:"is_educational"`
	Confidence       float64  `json:"confidence"` // 0.5–1.0
	EducationalScore int      `json:"educational_score"`
	DistractingScore int      `json:"distracting_score"`
	Reasoning        []string `json:"reasoning"`
}

// Summary renders the reasoning as a single sentence list.
func (v Verdict) Summary() string {
	return strings.Join(v.Reasoning, ". ")
}

// Margin is the absolute difference between the two scores.
func (v Verdict) Margin() int {
	d := v.EducationalScore - v.DistractingScore
	if d < 0 {
		return -d
	}
	return d
}

func confidence(s Scores) float64 {
	total := s.Educational + s.Distracting
	if total == 0 {
		return NeutralConfidence
	}
	diff := math.Abs(float64(s.Educational - s.Distracting))
	c := math.Min(diff/float64(total), 1.0)
	return math.Max(NeutralConfidence, c)
}

func reasoning(s Scores, ctx Context) []string {
	var reasons []string
	switch {
	case s.Educational > s.Distracting:
		reasons = append(reasons, fmt.Sprintf("Educational indicators (%d) outweigh distracting (%d) by %d",
			s.Educational, s.Distracting, s.Educational-s.Distracting))
		if s.Educational > StrongSignalThreshold {
			reasons = append(reasons, "Strong educational signals detected")
		}
		if verifiedChannelPattern.MatchString(ctx.Channel) {
			reasons = append(reasons, "From verified educational channel")
		}
	case s.Educational == s.Distracting:
		reasons = append(reasons, fmt.Sprintf("Distracting indicators (%d) tie educational (%d); ties count as distracting",
			s.Distracting, s.Educational))
		if s.Distracting > StrongSignalThreshold {
			reasons = append(reasons, "Strong distracting signals detected")
		}
	default:
		reasons = append(reasons, fmt.Sprintf("Distracting indicators (%d) outweigh educational (%d) by %d",
			s.Distracting, s.Educational, s.Distracting-s.Educational))
		if s.Distracting > StrongSignalThreshold {
			reasons = append(reasons, "Strong distracting signals detected")
		}
	}
	return reasons
}
