package fallback

// Keyword lists are matched as lowercase substrings. Some entries appear
// under more than one theme; each occurrence counts separately.

var educationalKeywords = []string{
	// learning and teaching
	"tutorial", "lesson", "course", "learn", "study", "education", "academic", "teach",
	"lecture", "how to", "explain", "concept", "theory", "guide", "demonstration", "walkthrough",

	// stem
	"physics", "math", "mathematics", "chemistry", "biology", "science", "engineering",
	"programming", "coding", "algorithm", "data structure", "software", "development",
	"calculus", "algebra", "geometry", "statistics", "probability", "linear algebra",
	"computer science", "machine learning", "artificial intelligence", "python", "java",
	"javascript", "c++", "c#", "react", "angular", "vue", "node", "database", "sql",

	// academic
	"history", "literature", "philosophy", "psychology", "sociology", "economics",
	"political science", "geography", "geology", "astronomy", "anatomy",

	// research
	"research", "analysis", "documentary", "case study", "experiment", "methodology",

	// platforms and institutions
	"khan academy", "coursera", "edx", "udemy", "mit", "harvard", "stanford", "cambridge",
	"oxford", "college", "university", "school", "class", "curriculum", "syllabus",

	// skill building
	"skill", "workshop", "seminar", "webinar", "masterclass", "certification",
	"professional development", "career development", "skill building",

	// formats
	"full course", "complete tutorial", "step by step", "beginner", "intermediate", "advanced",
	"fundamentals", "basics", "principles", "foundations", "introduction",

	// language and culture
	"language learning", "grammar", "vocabulary", "pronunciation", "culture", "civilization",

	// technical training
	"technical", "professional", "industry standard", "best practices", "design patterns",
	"architecture", "system design", "devops", "security", "networking",

	// game development
	"game development", "unity", "unreal engine", "godot", "game design", "gamedev",
	"game engine", "game programming", "game creation",

	// problem solving
	"problem solving", "algorithm", "coding challenge", "leetcode", "hackerrank",
	"technical interview", "code review",
}

var distractingKeywords = []string{
	// entertainment
	"meme", "funny", "hilarious", "laugh", "comedy", "joke", "prank", "challenge",
	"entertainment", "fun", "cool", "awesome", "amazing", "wtf", "lol", "crazy",

	// gaming for fun
	"gameplay", "let's play", "speedrun", "epic", "montage", "highlights",
	"walkthrough", "gaming moment", "gaming fails", "twitch stream", "livestream", "e-sports",
	"game review", "first impressions", "comparison",

	// social media
	"tiktok", "shorts", "reels", "viral", "trending", "fyp", "subscribe for more",
	"react", "reaction", "reacting", "review reaction", "first time watching",

	// music and dance
	"music video", "mv", "song", "dance", "choreography", "tiktok dance", "music",
	"mashup", "remix", "beats", "instrumental", "concert",

	// lifestyle
	"vlog", "daily vlog", "morning routine", "night routine", "lifestyle", "day in my life",
	"unboxing", "haul", "clothing haul", "shopping", "try on haul", "review", "getting ready",

	// beauty and fashion
	"makeup", "beauty routine", "beauty",
	"skincare routine", "hair tutorial", "nail art", "fashion", "outfit", "style",

	// food
	"food", "cooking", "recipe", "mukbang", "eating", "chef", "restaurant review",
	"fast food", "wow this is delicious",

	// travel
	"vacation", "travel vlog", "beach", "hotel tour", "resort",

	// pranks and challenges
	"prank", "challenge", "24 hour challenge", "extreme challenge", "dare",
	"social experiment", "would you rather", "truth or dare",

	// reactions and compilations
	"compilation", "best moments", "fails", "win", "try not to laugh", "try not to cry",
	"satisfying", "oddly satisfying", "relaxing", "satisfying video",

	// celebrities and gossip
	"celebrity", "gossip", "tea", "drama", "reddit", "storytime",

	// clickbait
	"clickbait", "exposed", "truth", "hacked", "jumped", "caught",

	// pets
	"cute", "adorable", "puppy", "kitten", "animal compilation", "funny animals",

	// gaming montages
	"epic montage", "win compilation", "kills compilation", "best plays",

	// passive consumption
	"watch until the end", "surprise", "shocking", "you won't believe",
	"top 10", "top 5", "ranking", "list", "countdown",
}

// EducationalKeywords returns a copy of the educational keyword list.
func EducationalKeywords() []string {
	return append([]string(nil), educationalKeywords...)
}

// DistractingKeywords returns a copy of the distracting keyword list.
func DistractingKeywords() []string {
	return append([]string(nil), distractingKeywords...)
}
