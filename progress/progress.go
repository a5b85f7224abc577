package progress

import (
	"context"
	"strings"

	"github.com/codeclash/backend/logger"
)

// NickResolver maps contestant ids to public display nicknames.
// Ids without a known nickname are simply absent from the result.
type NickResolver interface {
	ResolveNicks(ctx context.Context, contestantIDs []string) (map[string]string, error)
}

// ProgressSrvc tracks per-contestant competition progress: hint usage,
// solve settlement and the leaderboard built on top of both. It is
// stateless; any number of instances may run concurrently because all
// serialization happens inside the repo's conditional writes.
type ProgressSrvc struct {
	repo  Repo
	nicks NickResolver
}

func NewProgressSrvc(repo Repo, nicks NickResolver) *ProgressSrvc {
	return &ProgressSrvc{
		repo:  repo,
		nicks: nicks,
	}
}

// GetOrCreate lazily creates the zero-state record on first contact.
func (s *ProgressSrvc) GetOrCreate(ctx context.Context, competitionID, contestantID string) (CompetitionProgress, error) {
	if err := validateIdent("competition id", competitionID); err != nil {
		return CompetitionProgress{}, err
	}
	if err := validateIdent("contestant id", contestantID); err != nil {
		return CompetitionProgress{}, err
	}

	prog, err := s.repo.GetOrCreate(ctx, competitionID, contestantID)
	if err != nil {
		logger.FromContext(ctx).Error("get-or-create progress failed",
			"competition_id", competitionID, "contestant_id", contestantID, "error", err)
		return CompetitionProgress{}, newErrInternalSE().SetDebug(err)
	}
	return prog, nil
}

// Get returns the record or a not-found error. It never creates.
func (s *ProgressSrvc) Get(ctx context.Context, competitionID, contestantID string) (CompetitionProgress, error) {
	if err := validateIdent("competition id", competitionID); err != nil {
		return CompetitionProgress{}, err
	}
	if err := validateIdent("contestant id", contestantID); err != nil {
		return CompetitionProgress{}, err
	}

	prog, err := s.repo.Get(ctx, competitionID, contestantID)
	if err != nil {
		return CompetitionProgress{}, newErrInternalSE().SetDebug(err)
	}
	if prog == nil {
		return CompetitionProgress{}, newErrProgressNotFound()
	}
	return *prog, nil
}

// RecomputePoints sums the awarded values of all solved problems of
// the record. The cached total is authoritative on the hot path; this
// exists as a consistency check against increment drift.
func (s *ProgressSrvc) RecomputePoints(ctx context.Context, competitionID, contestantID string) (int, error) {
	prog, err := s.Get(ctx, competitionID, contestantID)
	if err != nil {
		return 0, err
	}
	sum := 0
	for _, p := range prog.Problems {
		if p.Solved {
			sum += p.Awarded
		}
	}
	return sum, nil
}

const maxIdentLength = 128

func validateIdent(which, id string) error {
	if id == "" {
		return newErrInvalidIdentifier(which)
	}
	if len(id) > maxIdentLength {
		return newErrInvalidIdentifier(which)
	}
	// ids end up inside storage document paths, keep them plain
	if strings.ContainsAny(id, " \t\n.#/") {
		return newErrInvalidIdentifier(which)
	}
	return nil
}
