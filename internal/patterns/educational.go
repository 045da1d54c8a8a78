package patterns

// Educational group names.
const (
	GroupStrong    = "strong"
	GroupSubject   = "subject"
	GroupPlatforms = "platforms"
)

var educationalSpec = []groupSpec{
	{name: GroupStrong, rules: []ruleSpec{
		// Anchored to the start of the combined text or channel, no trailing
		// boundary: "tutorials" and "courses" count.
		{`(?i)^(tutorial|course|lecture|lesson|guide|how to)`, 5},
		{wordGroup(`learn|study|teach|explain|understand|master`), 4},
		{wordGroup(`full course|complete tutorial|step by step|beginner|intermediate|advanced`), 4},
		{wordGroup(`university|college|academy|institute|school`), 3},
		{wordGroup(`curriculum|syllabus|module|chapter|part \d+`), 3},
	}},
	{name: GroupSubject, rules: []ruleSpec{
		{wordGroup(`math|mathematics|calculus|algebra|geometry|statistics`), 4},
		{wordGroup(`programming|coding|software|development|algorithm|data structure`), 4},
		{wordGroup(`physics|chemistry|biology|science`), 3},
		{wordGroup(`history|philosophy|psychology|economics|literature`), 3},
	}},
	{name: GroupPlatforms, rules: []ruleSpec{
		{wordGroup(`khan academy|coursera|edx|udemy|codecademy|freecodecamp`), 5},
		{wordGroup(`mit|harvard|stanford|cambridge|oxford`), 5},
	}},
}

var educational = compileCatalog("educational", educationalSpec)

// Educational returns the compiled-in educational catalog.
func Educational() Catalog {
	return educational
}
