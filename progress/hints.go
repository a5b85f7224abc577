package progress

import (
	"context"
	"errors"

	"github.com/codeclash/backend/logger"
)

// UnlockHint discloses hint number hintIdx (1-based) of a problem.
// Hints unlock strictly in order: the call succeeds only when exactly
// hintIdx-1 hints were used at the moment of the atomic write. A
// missing sub-entry counts as zero hints used. On success the new
// hintsUsed count (== hintIdx) is returned.
func (s *ProgressSrvc) UnlockHint(ctx context.Context, competitionID, contestantID, problemID string, hintIdx int) (int, error) {
	if err := validateIdent("competition id", competitionID); err != nil {
		return 0, err
	}
	if err := validateIdent("contestant id", contestantID); err != nil {
		return 0, err
	}
	if err := validateIdent("problem id", problemID); err != nil {
		return 0, err
	}
	if hintIdx < 1 {
		return 0, newErrInvalidIdentifier("hint index")
	}
	if hintIdx > MaxHints {
		// the cap is part of the sequencing policy, not a validation
		// failure: hint 4 can never be "next"
		return 0, newErrHintOutOfOrder(hintIdx)
	}

	// the record itself is created lazily on first contact
	if _, err := s.repo.GetOrCreate(ctx, competitionID, contestantID); err != nil {
		return 0, newErrInternalSE().SetDebug(err)
	}

	log := logger.FromContext(ctx)

	if hintIdx == 1 {
		err := s.repo.InitHint(ctx, competitionID, contestantID, problemID)
		if err == nil {
			return 1, nil
		}
		if !errors.Is(err, ErrCondFailed) {
			return 0, newErrInternalSE().SetDebug(err)
		}
		// a sub-entry already exists; it may still sit at zero hints
		// (created by a solve fallback), in which case bumping 0->1 is
		// the legal move
		err = s.repo.BumpHint(ctx, competitionID, contestantID, problemID, 0)
		if err == nil {
			return 1, nil
		}
		if errors.Is(err, ErrCondFailed) {
			log.Info("hint unlock rejected",
				"competition_id", competitionID, "contestant_id", contestantID,
				"problem_id", problemID, "hint_idx", hintIdx)
			return 0, newErrHintOutOfOrder(hintIdx)
		}
		return 0, newErrInternalSE().SetDebug(err)
	}

	err := s.repo.BumpHint(ctx, competitionID, contestantID, problemID, hintIdx-1)
	if err == nil {
		return hintIdx, nil
	}
	if errors.Is(err, ErrCondFailed) {
		log.Info("hint unlock rejected",
			"competition_id", competitionID, "contestant_id", contestantID,
			"problem_id", problemID, "hint_idx", hintIdx)
		return 0, newErrHintOutOfOrder(hintIdx)
	}
	return 0, newErrInternalSE().SetDebug(err)
}
