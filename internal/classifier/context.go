package classifier

import (
	"regexp"
	"strings"
)

// MaxDescriptionRunes caps the description kept on a Context.
const MaxDescriptionRunes = 500

var (
	digitsPattern  = regexp.MustCompile(`\d+`)
	yearPattern    = regexp.MustCompile(`\b(202\d)\b`)
	acronymPattern = regexp.MustCompile(`\b[A-Z]{2,}\b`)
)

// Context is the read-only view of a video derived once per classification.
type Context struct {
	// Text is the lowercased "title description" concatenation.
	Text string
	// Channel is the lowercased channel name.
	Channel string
	// Title is the original title with case preserved.
	Title string
	// Description is the original description truncated to MaxDescriptionRunes.
	Description string
	WordCount   int

	HasNumbers bool // title contains a digit sequence
	HasYear    bool // text contains a 202x year
	HasAcronym bool // title contains an all-caps token of 2+ letters
}

// NewContext derives a Context from raw page fields.
func NewContext(title, description, channel string) Context {
	text := strings.ToLower(title + " " + description)
	return Context{
		Text:        text,
		Channel:     strings.ToLower(channel),
		Title:       title,
		Description: truncateRunes(description, MaxDescriptionRunes),
		WordCount:   len(strings.Fields(text)),
		HasNumbers:  digitsPattern.MatchString(title),
		HasYear:     yearPattern.MatchString(text),
		HasAcronym:  acronymPattern.MatchString(title),
	}
}

func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
