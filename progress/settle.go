package progress

import (
	"context"
	"errors"

	"github.com/codeclash/backend/logger"
)

// settleAttempts bounds the fast-path/fallback loop. Each iteration
// only loses to a concurrent writer of the same sub-entry, so two
// rounds already cover every interleaving; the third is slack.
const settleAttempts = 3

// RecordSolve converts a solved verdict into a point award, exactly
// once. Replays and concurrent duplicates settle to AlreadySolved
// without touching the total. The award is conditioned at the storage
// layer on solved being false (or the sub-entry being absent), never
// on a prior read.
func (s *ProgressSrvc) RecordSolve(ctx context.Context, competitionID, contestantID, problemID string, points int) (Settlement, error) {
	if err := validateIdent("competition id", competitionID); err != nil {
		return Settlement{}, err
	}
	if err := validateIdent("contestant id", contestantID); err != nil {
		return Settlement{}, err
	}
	if err := validateIdent("problem id", problemID); err != nil {
		return Settlement{}, err
	}
	if points < 0 {
		return Settlement{}, newErrInvalidIdentifier("points")
	}

	log := logger.FromContext(ctx)

	prog, err := s.repo.GetOrCreate(ctx, competitionID, contestantID)
	if err != nil {
		return Settlement{}, newErrInternalSE().SetDebug(err)
	}
	// short-circuit for the common retry; the conditional writes below
	// do not depend on it
	if p, ok := prog.Problems[problemID]; ok && p.Solved {
		return Settlement{AlreadySolved: true, NewPoints: prog.Points}, nil
	}

	for attempt := 0; attempt < settleAttempts; attempt++ {
		// fast path: an unsolved sub-entry exists
		newPoints, err := s.repo.MarkSolved(ctx, competitionID, contestantID, problemID, points)
		if err == nil {
			log.Info("solve settled",
				"competition_id", competitionID, "contestant_id", contestantID,
				"problem_id", problemID, "awarded", points, "total", newPoints)
			return Settlement{NewPoints: newPoints}, nil
		}
		if !errors.Is(err, ErrCondFailed) {
			return Settlement{}, newErrInternalSE().SetDebug(err)
		}

		// the sub-entry is absent or already solved; find out which
		cur, err := s.repo.Get(ctx, competitionID, contestantID)
		if err != nil {
			return Settlement{}, newErrInternalSE().SetDebug(err)
		}
		if cur != nil {
			if p, ok := cur.Problems[problemID]; ok && p.Solved {
				return Settlement{AlreadySolved: true, NewPoints: cur.Points}, nil
			}
		}

		// fallback path: append a solved sub-entry, guarded against a
		// concurrent fast path having landed in the meantime
		newPoints, err = s.repo.InsertSolved(ctx, competitionID, contestantID, problemID, points)
		if err == nil {
			log.Info("solve settled",
				"competition_id", competitionID, "contestant_id", contestantID,
				"problem_id", problemID, "awarded", points, "total", newPoints)
			return Settlement{NewPoints: newPoints}, nil
		}
		if !errors.Is(err, ErrCondFailed) {
			return Settlement{}, newErrInternalSE().SetDebug(err)
		}
		// someone created the sub-entry between our two writes; loop
		// and reclassify
	}

	log.Warn("solve settlement exhausted retries",
		"competition_id", competitionID, "contestant_id", contestantID,
		"problem_id", problemID)
	return Settlement{}, newErrStoreContention()
}
