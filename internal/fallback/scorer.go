// Package fallback is the secondary keyword scorer used when the weighted
// classifier is not confident enough. It counts keyword hits, applies a few
// title heuristics and then a chain of overrides that can only turn a
// distracting verdict into an educational one.
package fallback

import (
	"regexp"
	"strings"
)

const (
	patternBonus      = 2
	knownChannelBonus = 3
	// strongTitleMatches is the keyword count that lets an educational title
	// pattern override everything else.
	strongTitleMatches = 3
)

var (
	knownChannelPattern = regexp.MustCompile(
		`(?i)(khan academy|coursera|edx|udemy|mit|stanford|harvard|cambridge|oxford|udacity|pluralsight|lynda|codecademy)`)
	educationalTitlePattern = regexp.MustCompile(
		`(?i)\b(tutorial|course|lecture|lesson|how to|guide|explained|fundamentals|basics|introduction|learn|study)\b`)
	distractingTitlePattern = regexp.MustCompile(
		`(?i)\b(meme|funny|prank|challenge|compilation|reaction|vlog|gameplay|montage|shorts|tiktok)\b`)
	programmingPattern = regexp.MustCompile(
		`(?i)\b(programming|coding|code|developer|development|software|computer science|tech|technology|technical)\b`)
	gameDevPattern = regexp.MustCompile(
		`(?i)\b(game development|game dev|unity tutorial|unreal tutorial|how to make a game)\b`)
)

// Override names, in the order they are tried.
const (
	OverrideStrongTitle = "strong educational title"
	OverrideProgramming = "programming content"
	OverrideGameDev     = "game development tutorial"
)

// Result carries every intermediate value of a fallback decision.
type Result struct {
	EducationalMatches int  `json:"educational_matches"`
	DistractingMatches int  `json:"distracting_matches"`
	KnownChannel       bool `json:"known_channel"`
	EducationalPattern bool `json:"educational_pattern"`
	DistractingPattern bool `json:"distracting_pattern"`
	Score              int  `json:"score"`
	// Base is the verdict before overrides.
	Base        bool     `json:"base"`
	Overrides   []string `json:"overrides,omitempty"`
	Educational bool     `json:"educational"`
}

// Classify reports whether the video should be treated as educational.
func Classify(title, description, channel string) bool {
	return Score(title, description, channel).Educational
}

// Score runs the keyword scorer and returns the full breakdown.
func Score(title, description, channel string) Result {
	text := strings.ToLower(title + " " + description + " " + channel)

	r := Result{
		EducationalMatches: countMatches(text, educationalKeywords),
		DistractingMatches: countMatches(text, distractingKeywords),
		KnownChannel:       knownChannelPattern.MatchString(channel),
		EducationalPattern: educationalTitlePattern.MatchString(title),
		DistractingPattern: distractingTitlePattern.MatchString(title),
	}

	r.Score = r.EducationalMatches - r.DistractingMatches
	if r.EducationalPattern && !r.DistractingPattern {
		r.Score += patternBonus
	}
	if r.DistractingPattern && !r.EducationalPattern {
		r.Score -= patternBonus
	}
	if r.KnownChannel {
		r.Score += knownChannelBonus
	}

	r.Base = r.Score > 0 || (r.EducationalMatches >= 2 && r.DistractingMatches == 0)
	r.Educational = r.Base

	if r.EducationalPattern && r.EducationalMatches >= strongTitleMatches {
		r.force(OverrideStrongTitle)
	}
	if programmingPattern.MatchString(text) && !r.DistractingPattern && r.EducationalMatches > 0 {
		r.force(OverrideProgramming)
	}
	if gameDevPattern.MatchString(text) {
		r.force(OverrideGameDev)
	}
	return r
}

func (r *Result) force(name string) {
	r.Educational = true
	r.Overrides = append(r.Overrides, name)
}

func countMatches(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}
