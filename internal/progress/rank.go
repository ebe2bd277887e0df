package progress

// Rank is a step on the XP ladder.
type Rank struct {
	ID          string
	Emoji       string
	Name        string
	MinXP       int
	Description string
}

// Ranks is ordered by MinXP.
var Ranks = []Rank{
	{ID: "seedling", Emoji: "🌱", Name: "Seedling", MinXP: 0, Description: "Just started your journey"},
	{ID: "consistent", Emoji: "🔥", Name: "Consistent Saver", MinXP: 200, Description: "Showing up every week"},
	{ID: "planner", Emoji: "📈", Name: "Smart Planner", MinXP: 500, Description: "Your plan is working"},
	{ID: "master", Emoji: "🏆", Name: "Financial Master", MinXP: 1200, Description: "Consistently hitting goals"},
	{ID: "legend", Emoji: "💎", Name: "Legend", MinXP: 3000, Description: "Achieved your first major goal"},
}

// RankFor returns the highest rank reached with xp.
func RankFor(xp int) Rank {
	r := Ranks[0]
	for _, candidate := range Ranks {
		if xp >= candidate.MinXP {
			r = candidate
		}
	}
	return r
}

// NextRank returns the first rank not yet reached, false at the top.
func NextRank(xp int) (Rank, bool) {
	for _, r := range Ranks {
		if xp < r.MinXP {
			return r, true
		}
	}
	return Rank{}, false
}
