package progress_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/codeclash/backend/progress"
	"github.com/codeclash/backend/srvcerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPoints(t *testing.T, srvc *progress.ProgressSrvc, comp string, points map[string]int) {
	t.Helper()
	ctx := context.Background()
	for contestant, pts := range points {
		if pts == 0 {
			_, err := srvc.GetOrCreate(ctx, comp, contestant)
			require.NoError(t, err)
			continue
		}
		_, err := srvc.RecordSolve(ctx, comp, contestant, "probA", pts)
		require.NoError(t, err)
	}
}

func TestLeaderboardTieBreakByNick(t *testing.T) {
	t.Parallel()
	srvc, _ := newTestSrvc(stubNicks{
		"u-bob": "bob", "u-alice": "alice", "u-carol": "carol",
	})
	seedPoints(t, srvc, "comp1", map[string]int{
		"u-bob": 100, "u-alice": 100, "u-carol": 50,
	})

	board, err := srvc.GetLeaderboard(context.Background(), "comp1", 1, 50)
	require.NoError(t, err)
	assert.Equal(t, 3, board.Total)
	require.Len(t, board.Results, 3)

	// equal points order alphabetically by nick
	assert.Equal(t, progress.LeaderboardRow{Rank: 1, Nick: "alice", Points: 100}, board.Results[0])
	assert.Equal(t, progress.LeaderboardRow{Rank: 2, Nick: "bob", Points: 100}, board.Results[1])
	assert.Equal(t, progress.LeaderboardRow{Rank: 3, Nick: "carol", Points: 50}, board.Results[2])
}

func TestLeaderboardDeterministic(t *testing.T) {
	t.Parallel()
	nicks := stubNicks{}
	points := map[string]int{}
	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("u-%02d", i)
		nicks[id] = fmt.Sprintf("nick%02d", i)
		points[id] = (i % 5) * 10
	}
	srvc, _ := newTestSrvc(nicks)
	seedPoints(t, srvc, "comp1", points)

	first, err := srvc.GetLeaderboard(context.Background(), "comp1", 1, 200)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := srvc.GetLeaderboard(context.Background(), "comp1", 1, 200)
		require.NoError(t, err)
		assert.Equal(t, first, again, "repeated reads of a fixed snapshot must agree")
	}
}

func TestLeaderboardPagination(t *testing.T) {
	t.Parallel()
	srvc, _ := newTestSrvc(stubNicks{
		"u-a": "ann", "u-b": "ben", "u-c": "cat", "u-d": "dan", "u-e": "eva",
	})
	seedPoints(t, srvc, "comp1", map[string]int{
		"u-a": 90, "u-b": 80, "u-c": 70, "u-d": 60, "u-e": 50,
	})

	page2, err := srvc.GetLeaderboard(context.Background(), "comp1", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, page2.Total)
	require.Len(t, page2.Results, 2)
	assert.Equal(t, 3, page2.Results[0].Rank)
	assert.Equal(t, "cat", page2.Results[0].Nick)
	assert.Equal(t, 4, page2.Results[1].Rank)
	assert.Equal(t, "dan", page2.Results[1].Nick)

	// concatenating all pages reproduces the full order exactly once
	var all []progress.LeaderboardRow
	for page := 1; ; page++ {
		b, err := srvc.GetLeaderboard(context.Background(), "comp1", page, 2)
		require.NoError(t, err)
		if len(b.Results) == 0 {
			break
		}
		all = append(all, b.Results...)
	}
	require.Len(t, all, 5)
	for i, row := range all {
		assert.Equal(t, i+1, row.Rank)
	}
}

func TestLeaderboardClampsPagination(t *testing.T) {
	t.Parallel()
	srvc, _ := newTestSrvc(stubNicks{"u-a": "ann"})
	seedPoints(t, srvc, "comp1", map[string]int{"u-a": 10})

	board, err := srvc.GetLeaderboard(context.Background(), "comp1", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, board.Page)
	assert.Equal(t, 50, board.Limit)

	board, err = srvc.GetLeaderboard(context.Background(), "comp1", -3, 10000)
	require.NoError(t, err)
	assert.Equal(t, 1, board.Page)
	assert.Equal(t, 200, board.Limit)

	// page far beyond the data is empty, not an error
	board, err = srvc.GetLeaderboard(context.Background(), "comp1", 99, 50)
	require.NoError(t, err)
	assert.Empty(t, board.Results)
	assert.Equal(t, 1, board.Total)
}

func TestLeaderboardExcludesUnresolvableContestants(t *testing.T) {
	t.Parallel()
	srvc, _ := newTestSrvc(stubNicks{"u-known": "known"})
	seedPoints(t, srvc, "comp1", map[string]int{
		"u-known": 10, "u-ghost": 99,
	})

	board, err := srvc.GetLeaderboard(context.Background(), "comp1", 1, 50)
	require.NoError(t, err)
	assert.Equal(t, 1, board.Total)
	require.Len(t, board.Results, 1)
	assert.Equal(t, "known", board.Results[0].Nick)
}

type failingNicks struct{}

func (failingNicks) ResolveNicks(ctx context.Context, ids []string) (map[string]string, error) {
	return nil, errors.New("directory unavailable")
}

func TestLeaderboardDirectoryFailureIsInternal(t *testing.T) {
	t.Parallel()
	repo := progress.NewInMemRepo()
	srvc := progress.NewProgressSrvc(repo, failingNicks{})
	_, err := srvc.GetOrCreate(context.Background(), "comp1", "u-a")
	require.NoError(t, err)

	_, err = srvc.GetLeaderboard(context.Background(), "comp1", 1, 50)
	require.Error(t, err)
	srvcErr := &srvcerror.Error{}
	require.True(t, errors.As(err, &srvcErr))
	assert.Equal(t, srvcerror.ErrCodeInternalServerError, srvcErr.ErrorCode())
}

func TestLeaderboardInvalidCompetitionID(t *testing.T) {
	t.Parallel()
	srvc, _ := newTestSrvc(nil)
	_, err := srvc.GetLeaderboard(context.Background(), "", 1, 50)
	assertErrCode(t, err, progress.ErrCodeInvalidIdentifier)
}
