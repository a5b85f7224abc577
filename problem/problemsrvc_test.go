package problem_test

import (
	"context"
	"testing"

	"github.com/codeclash/backend/problem"
	"github.com/codeclash/backend/srvcerror"
	"github.com/stretchr/testify/require"
)

func seedProblem(t *testing.T, repo *problem.InMemProblemRepo, id, name string, points int, tag string, hints ...string) {
	t.Helper()
	err := repo.Save(context.Background(), &problem.ProblemRow{
		ID:     id,
		Name:   name,
		Points: points,
		Tag:    tag,
		Hints:  hints,
	})
	require.NoError(t, err)
}

func TestGetProblem(t *testing.T) {
	repo := problem.NewInMemProblemRepo()
	srvc := problem.NewProblemSrvc(repo)
	ctx := context.Background()

	seedProblem(t, repo, "two-sum", "Two Sum", 50, "Arrays",
		"Think about what you need to find for each element.",
		"A hash map lets you look that up in constant time.",
		"One pass: store each element as you go and check for its complement.")

	p, err := srvc.Get(ctx, "two-sum")
	require.NoError(t, err)
	require.Equal(t, "Two Sum", p.Name)
	require.Equal(t, 50, p.Points)
	require.Len(t, p.Hints, 3)
}

func TestGetProblemNotFound(t *testing.T) {
	srvc := problem.NewProblemSrvc(problem.NewInMemProblemRepo())

	_, err := srvc.Get(context.Background(), "ghost")
	var srvcErr *srvcerror.Error
	require.ErrorAs(t, err, &srvcErr)
	require.Equal(t, problem.ErrCodeProblemNotFound, srvcErr.ErrorCode())

	_, err = srvc.Get(context.Background(), "")
	require.ErrorAs(t, err, &srvcErr)
	require.Equal(t, problem.ErrCodeInvalidProblemID, srvcErr.ErrorCode())
}

func TestGroupByTag(t *testing.T) {
	repo := problem.NewInMemProblemRepo()
	srvc := problem.NewProblemSrvc(repo)
	ctx := context.Background()

	seedProblem(t, repo, "p1", "Linked Cycle", 80, "Graphs")
	seedProblem(t, repo, "p2", "Two Sum", 30, "Arrays")
	seedProblem(t, repo, "p3", "Rotate Array", 60, "Arrays")
	seedProblem(t, repo, "p4", "Mystery", 40, "")

	groups, err := srvc.GroupByTag(ctx, []string{"p1", "p2", "p3", "p4", "missing"})
	require.NoError(t, err)
	require.Len(t, groups, 3)

	// Buckets come back alphabetically, untagged under Uncategorised.
	require.Equal(t, "Arrays", groups[0].Tag)
	require.Equal(t, "Graphs", groups[1].Tag)
	require.Equal(t, "Uncategorised", groups[2].Tag)

	// Inside a bucket problems are ordered by points ascending.
	require.Equal(t, "Two Sum", groups[0].Problems[0].Name)
	require.Equal(t, "Rotate Array", groups[0].Problems[1].Name)
}
