package verdict_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/codeclash/backend/problem"
	"github.com/codeclash/backend/progress"
	"github.com/codeclash/backend/verdict"
	"github.com/stretchr/testify/require"
)

type stubNicks struct{}

func (stubNicks) ResolveNicks(ctx context.Context, ids []string) (map[string]string, error) {
	nicks := make(map[string]string, len(ids))
	for _, id := range ids {
		nicks[id] = id
	}
	return nicks, nil
}

func newTestConsumer(t *testing.T) (*verdict.Consumer, *progress.ProgressSrvc, *problem.InMemProblemRepo) {
	t.Helper()
	progSrvc := progress.NewProgressSrvc(progress.NewInMemRepo(), stubNicks{})
	probRepo := problem.NewInMemProblemRepo()
	probSrvc := problem.NewProblemSrvc(probRepo)
	consumer := verdict.NewConsumer(progSrvc, probSrvc, slog.Default())
	return consumer, progSrvc, probRepo
}

func TestAcceptedVerdictSettlesSolve(t *testing.T) {
	consumer, progSrvc, probRepo := newTestConsumer(t)
	ctx := context.Background()

	err := probRepo.Save(ctx, &problem.ProblemRow{ID: "two-sum", Name: "Two Sum", Points: 50})
	require.NoError(t, err)

	msg := verdict.VerdictMsg{
		CompetitionID: "spring-open",
		ContestantID:  "alice",
		ProblemID:     "two-sum",
		Verdict:       "accepted",
	}
	require.NoError(t, consumer.Handle(ctx, msg))

	rec, err := progSrvc.Get(ctx, "spring-open", "alice")
	require.NoError(t, err)
	require.Equal(t, 50, rec.Points)
	require.True(t, rec.Problems["two-sum"].Solved)

	// Redelivery changes nothing.
	require.NoError(t, consumer.Handle(ctx, msg))
	rec, err = progSrvc.Get(ctx, "spring-open", "alice")
	require.NoError(t, err)
	require.Equal(t, 50, rec.Points)
}

func TestRejectedVerdictIsIgnored(t *testing.T) {
	consumer, progSrvc, probRepo := newTestConsumer(t)
	ctx := context.Background()

	err := probRepo.Save(ctx, &problem.ProblemRow{ID: "two-sum", Name: "Two Sum", Points: 50})
	require.NoError(t, err)

	for _, v := range []string{"wrong_answer", "time_limit_exceeded", "runtime_error", ""} {
		msg := verdict.VerdictMsg{
			CompetitionID: "spring-open",
			ContestantID:  "alice",
			ProblemID:     "two-sum",
			Verdict:       v,
		}
		require.NoError(t, consumer.Handle(ctx, msg))
	}

	// No record was ever created.
	rec, err := progSrvc.Get(ctx, "spring-open", "alice")
	require.Error(t, err)
	require.Zero(t, rec.Points)
}

func TestUnknownProblemFailsHandle(t *testing.T) {
	consumer, _, _ := newTestConsumer(t)

	err := consumer.Handle(context.Background(), verdict.VerdictMsg{
		CompetitionID: "spring-open",
		ContestantID:  "alice",
		ProblemID:     "ghost",
		Verdict:       "accepted",
	})
	require.Error(t, err)
}
