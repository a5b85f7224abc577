package comp_test

import (
	"context"
	"testing"
	"time"

	"github.com/codeclash/backend/comp"
	"github.com/codeclash/backend/srvcerror"
	"github.com/stretchr/testify/require"
)

func seedComp(t *testing.T, repo *comp.InMemCompRepo, id, name string, start, end time.Time) {
	t.Helper()
	err := repo.Save(context.Background(), &comp.CompRow{
		ID:         id,
		Name:       name,
		StartTime:  start,
		EndTime:    end,
		ProblemIDs: []string{id + "-p1", id + "-p2"},
	})
	require.NoError(t, err)
}

func TestGetCompetition(t *testing.T) {
	repo := comp.NewInMemCompRepo()
	srvc := comp.NewCompSrvc(repo)
	ctx := context.Background()

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	seedComp(t, repo, "spring-open", "Spring Open", start, start.Add(3*time.Hour))

	c, err := srvc.Get(ctx, "spring-open")
	require.NoError(t, err)
	require.Equal(t, "Spring Open", c.Name)
	require.Equal(t, []string{"spring-open-p1", "spring-open-p2"}, c.ProblemIDs)
}

func TestGetCompetitionNotFound(t *testing.T) {
	srvc := comp.NewCompSrvc(comp.NewInMemCompRepo())

	_, err := srvc.Get(context.Background(), "nope")
	var srvcErr *srvcerror.Error
	require.ErrorAs(t, err, &srvcErr)
	require.Equal(t, comp.ErrCodeCompetitionNotFound, srvcErr.ErrorCode())

	_, err = srvc.Get(context.Background(), "")
	require.ErrorAs(t, err, &srvcErr)
	require.Equal(t, comp.ErrCodeInvalidCompetitionID, srvcErr.ErrorCode())
}

func TestListPastAndUpcoming(t *testing.T) {
	repo := comp.NewInMemCompRepo()
	srvc := comp.NewCompSrvc(repo)
	ctx := context.Background()

	now := time.Now()
	seedComp(t, repo, "old", "Old", now.Add(-48*time.Hour), now.Add(-45*time.Hour))
	seedComp(t, repo, "live", "Live", now.Add(-1*time.Hour), now.Add(2*time.Hour))
	seedComp(t, repo, "next", "Next", now.Add(24*time.Hour), now.Add(27*time.Hour))

	past, err := srvc.ListPast(ctx)
	require.NoError(t, err)
	require.Len(t, past, 1)
	require.Equal(t, "old", past[0].ID)

	upcoming, err := srvc.ListUpcoming(ctx)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	ids := []string{upcoming[0].ID, upcoming[1].ID}
	require.ElementsMatch(t, []string{"live", "next"}, ids)
}
