package progress

import (
	"context"
	"sync"
)

// InMemRepo keeps progress records in a mutex-guarded map. It applies
// the same conditional-write semantics as the DynamoDB table (every
// mutation checks its precondition and writes under one lock hold),
// which makes it a faithful stand-in for tests and local development.
type InMemRepo struct {
	mu   sync.Mutex
	recs map[string]*CompetitionProgress
}

func NewInMemRepo() *InMemRepo {
	return &InMemRepo{
		recs: make(map[string]*CompetitionProgress),
	}
}

func inMemKey(competitionID, contestantID string) string {
	return competitionID + "\x00" + contestantID
}

// GetOrCreate implements Repo
func (r *InMemRepo) GetOrCreate(ctx context.Context, competitionID, contestantID string) (CompetitionProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := inMemKey(competitionID, contestantID)
	if rec, ok := r.recs[key]; ok {
		return copyProgress(rec), nil
	}
	rec := &CompetitionProgress{
		CompetitionID: competitionID,
		ContestantID:  contestantID,
		Problems:      map[string]ProblemProgress{},
	}
	r.recs[key] = rec
	return copyProgress(rec), nil
}

// Get implements Repo
func (r *InMemRepo) Get(ctx context.Context, competitionID, contestantID string) (*CompetitionProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.recs[inMemKey(competitionID, contestantID)]
	if !ok {
		return nil, nil
	}
	cp := copyProgress(rec)
	return &cp, nil
}

// ListByCompetition implements Repo
func (r *InMemRepo) ListByCompetition(ctx context.Context, competitionID string) ([]CompetitionProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var records []CompetitionProgress
	for _, rec := range r.recs {
		if rec.CompetitionID == competitionID {
			records = append(records, copyProgress(rec))
		}
	}
	return records, nil
}

// InitHint implements Repo
func (r *InMemRepo) InitHint(ctx context.Context, competitionID, contestantID, problemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.recs[inMemKey(competitionID, contestantID)]
	if !ok {
		return ErrCondFailed
	}
	if _, exists := rec.Problems[problemID]; exists {
		return ErrCondFailed
	}
	rec.Problems[problemID] = ProblemProgress{HintsUsed: 1}
	return nil
}

// BumpHint implements Repo
func (r *InMemRepo) BumpHint(ctx context.Context, competitionID, contestantID, problemID string, fromHints int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.recs[inMemKey(competitionID, contestantID)]
	if !ok {
		return ErrCondFailed
	}
	entry, exists := rec.Problems[problemID]
	if !exists || entry.HintsUsed != fromHints {
		return ErrCondFailed
	}
	entry.HintsUsed = fromHints + 1
	rec.Problems[problemID] = entry
	return nil
}

// MarkSolved implements Repo
func (r *InMemRepo) MarkSolved(ctx context.Context, competitionID, contestantID, problemID string, points int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.recs[inMemKey(competitionID, contestantID)]
	if !ok {
		return 0, ErrCondFailed
	}
	entry, exists := rec.Problems[problemID]
	if !exists || entry.Solved {
		return 0, ErrCondFailed
	}
	entry.Solved = true
	entry.Awarded = points
	rec.Problems[problemID] = entry
	rec.Points += points
	return rec.Points, nil
}

// InsertSolved implements Repo
func (r *InMemRepo) InsertSolved(ctx context.Context, competitionID, contestantID, problemID string, points int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.recs[inMemKey(competitionID, contestantID)]
	if !ok {
		return 0, ErrCondFailed
	}
	if _, exists := rec.Problems[problemID]; exists {
		return 0, ErrCondFailed
	}
	rec.Problems[problemID] = ProblemProgress{Solved: true, Awarded: points}
	rec.Points += points
	return rec.Points, nil
}

func copyProgress(rec *CompetitionProgress) CompetitionProgress {
	problems := make(map[string]ProblemProgress, len(rec.Problems))
	for id, p := range rec.Problems {
		problems[id] = p
	}
	return CompetitionProgress{
		CompetitionID: rec.CompetitionID,
		ContestantID:  rec.ContestantID,
		Points:        rec.Points,
		Problems:      problems,
	}
}
