package patterns

// Distracting group names. "strong" is shared with the educational catalog.
const (
	GroupSocial        = "social"
	GroupEntertainment = "entertainment"
	GroupGaming        = "gaming"
)

var distractingSpec = []groupSpec{
	{name: GroupStrong, rules: []ruleSpec{
		{wordGroup(`meme|funny|hilarious|comedy|laugh|joke`), 5},
		{wordGroup(`compilation|best moments|highlights|montage`), 4},
		{wordGroup(`prank|challenge|dare|experiment`), 4},
		{wordGroup(`vlog|daily vlog|lifestyle|routine`), 3},
	}},
	{name: GroupSocial, rules: []ruleSpec{
		{wordGroup(`tiktok|shorts|reels|viral|trending`), 4},
		{wordGroup(`react|reaction|reacting`), 3},
	}},
	{name: GroupEntertainment, rules: []ruleSpec{
		{wordGroup(`music video|mv|song|concert`), 3},
		{wordGroup(`unboxing|haul|shopping|review`), 2},
	}},
	{name: GroupGaming, rules: []ruleSpec{
		{wordGroup(`let's play|gameplay|speedrun`), 3},
		{wordGroup(`twitch stream|livestream|e-sports`), 3},
	}},
}

var distracting = compileCatalog("distracting", distractingSpec)

// Distracting returns the compiled-in distracting catalog.
func Distracting() Catalog {
	return distracting
}
