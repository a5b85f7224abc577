package progress

// CompetitionProgress is the per-(competition, contestant) scoring
// record. Points only grow, and only as a side effect of a first-time
// solve settlement.
type CompetitionProgress struct {
	CompetitionID string
	ContestantID  string
	Points        int
	Problems      map[string]ProblemProgress // keyed by problem id
}

// ProblemProgress tracks one contestant's state on one problem.
// Solved never reverts to false; HintsUsed stays in [0,3] and never
// decreases. Awarded remembers the points granted at settlement so
// the cached total can be reconciled later.
type ProblemProgress struct {
	Solved    bool
	HintsUsed int
	Awarded   int
}

// MaxHints is the number of hints a problem exposes.
const MaxHints = 3

// Settlement is the outcome of recording a solved verdict.
// AlreadySolved means the call was a retry or duplicate and no points
// were awarded; NewPoints is the contestant's total after the call.
type Settlement struct {
	AlreadySolved bool
	NewPoints     int
}

// LeaderboardRow is one ranked entry of a competition leaderboard.
type LeaderboardRow struct {
	Rank   int    `json:"rank"`
	Nick   string `json:"nick"`
	Points int    `json:"points"`
}

// Leaderboard is a single page of the ranked board. Total counts all
// resolvable contestants, not just the returned page.
type Leaderboard struct {
	Total   int              `json:"total"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
	Results []LeaderboardRow `json:"results"`
}
