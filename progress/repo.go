package progress

import (
	"context"
	"errors"
)

// ErrCondFailed is returned by a repo when the storage-level condition
// of an atomic write did not hold. The service layer translates it
// into a domain outcome (out-of-order hint, already-solved, retry).
var ErrCondFailed = errors.New("conditional write failed")

// Repo is the durable store of CompetitionProgress records. Every
// mutation is a single atomic conditional write; the check and the
// write land in one storage operation so concurrent identical calls
// cannot both succeed. Implementations must never do a read-check
// followed by an unconditional write.
type Repo interface {
	// GetOrCreate returns the record for the pair, creating the zero
	// record if it does not exist yet. Concurrent first calls for the
	// same pair must converge on exactly one stored record.
	GetOrCreate(ctx context.Context, competitionID, contestantID string) (CompetitionProgress, error)

	// Get returns nil without error when the record does not exist.
	Get(ctx context.Context, competitionID, contestantID string) (*CompetitionProgress, error)

	// ListByCompetition returns all records of a competition in no
	// particular order.
	ListByCompetition(ctx context.Context, competitionID string) ([]CompetitionProgress, error)

	// InitHint creates the problem sub-entry with hintsUsed=1.
	// Condition: the record exists and the sub-entry does not.
	InitHint(ctx context.Context, competitionID, contestantID, problemID string) error

	// BumpHint sets hintsUsed to fromHints+1.
	// Condition: the sub-entry exists with hintsUsed == fromHints.
	BumpHint(ctx context.Context, competitionID, contestantID, problemID string, fromHints int) error

	// MarkSolved flips the sub-entry to solved and adds points to the
	// total, returning the new total.
	// Condition: the sub-entry exists with solved == false.
	MarkSolved(ctx context.Context, competitionID, contestantID, problemID string, points int) (int, error)

	// InsertSolved appends a solved sub-entry with hintsUsed=0 and
	// adds points to the total, returning the new total.
	// Condition: the record exists and the sub-entry does not.
	InsertSolved(ctx context.Context, competitionID, contestantID, problemID string, points int) (int, error)
}
