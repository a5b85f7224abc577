package comp

import (
	"context"
	"time"
)

// Competition is a time-boxed event with a fixed problem set. The
// engine only reads it: creation and editing happen through the admin
// tooling, archival is an operational concern.
type Competition struct {
	ID         string
	Name       string
	StartTime  time.Time
	EndTime    time.Time
	ProblemIDs []string
}

type CompRepo interface {
	Get(ctx context.Context, id string) (*CompRow, error)
	List(ctx context.Context) ([]*CompRow, error)
	Save(ctx context.Context, row *CompRow) error
}

type CompSrvc struct {
	repo CompRepo
}

func NewCompSrvc(repo CompRepo) *CompSrvc {
	return &CompSrvc{repo: repo}
}

// Get returns the competition or a not-found error.
func (s *CompSrvc) Get(ctx context.Context, id string) (*Competition, error) {
	if id == "" {
		return nil, newErrInvalidCompetitionID()
	}
	row, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	if row == nil {
		return nil, newErrCompetitionNotFound(id)
	}
	c := rowToCompetition(row)
	return &c, nil
}

// ListPast returns competitions whose end time already passed.
func (s *CompSrvc) ListPast(ctx context.Context) ([]Competition, error) {
	return s.listFiltered(ctx, func(c Competition, now time.Time) bool {
		return c.EndTime.Before(now)
	})
}

// ListUpcoming returns competitions still upcoming or ongoing.
func (s *CompSrvc) ListUpcoming(ctx context.Context) ([]Competition, error) {
	return s.listFiltered(ctx, func(c Competition, now time.Time) bool {
		return !c.EndTime.Before(now)
	})
}

func (s *CompSrvc) listFiltered(ctx context.Context, keep func(Competition, time.Time) bool) ([]Competition, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	now := time.Now()
	comps := make([]Competition, 0, len(rows))
	for _, row := range rows {
		c := rowToCompetition(row)
		if keep(c, now) {
			comps = append(comps, c)
		}
	}
	return comps, nil
}

func rowToCompetition(row *CompRow) Competition {
	return Competition{
		ID:         row.ID,
		Name:       row.Name,
		StartTime:  row.StartTime,
		EndTime:    row.EndTime,
		ProblemIDs: row.ProblemIDs,
	}
}
