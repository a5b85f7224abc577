package progress

import (
	"context"
	"sort"

	"github.com/codeclash/backend/logger"
)

const (
	defaultLeaderboardLimit = 50
	maxLeaderboardLimit     = 200
)

// GetLeaderboard returns one page of the competition ranking. The
// board is a best-effort snapshot: it reads all progress records,
// resolves contestant nicknames (entries without a resolvable nick are
// excluded), sorts by points descending with nick ascending as the
// tie-break, and assigns global 1-based ranks across the full order.
// Pagination values are clamped, not rejected: limit to [1,200] with a
// default of 50, page to at least 1.
func (s *ProgressSrvc) GetLeaderboard(ctx context.Context, competitionID string, page, limit int) (Leaderboard, error) {
	if err := validateIdent("competition id", competitionID); err != nil {
		return Leaderboard{}, err
	}
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}
	if page < 1 {
		page = 1
	}

	records, err := s.repo.ListByCompetition(ctx, competitionID)
	if err != nil {
		logger.FromContext(ctx).Error("leaderboard read failed",
			"competition_id", competitionID, "error", err)
		return Leaderboard{}, newErrInternalSE().SetDebug(err)
	}

	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = rec.ContestantID
	}
	nicks, err := s.nicks.ResolveNicks(ctx, ids)
	if err != nil {
		// no partial or ambiguous ranking
		logger.FromContext(ctx).Error("nick resolution failed",
			"competition_id", competitionID, "error", err)
		return Leaderboard{}, newErrInternalSE().SetDebug(err)
	}

	rows := make([]LeaderboardRow, 0, len(records))
	for _, rec := range records {
		nick, ok := nicks[rec.ContestantID]
		if !ok {
			continue
		}
		rows = append(rows, LeaderboardRow{Nick: nick, Points: rec.Points})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].Nick < rows[j].Nick
	})

	total := len(rows)
	from := (page - 1) * limit
	to := from + limit
	if from > total {
		from = total
	}
	if to > total {
		to = total
	}
	pageRows := rows[from:to]
	for i := range pageRows {
		pageRows[i].Rank = from + i + 1
	}

	return Leaderboard{
		Total:   total,
		Page:    page,
		Limit:   limit,
		Results: pageRows,
	}, nil
}
