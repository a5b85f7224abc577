package problem

import (
	"context"
	"sort"
)

// Problem is the metadata the engine needs: award value for
// settlement, hint texts for the unlock flow, and a tag for the
// problem-set grouping. Statements and test data live elsewhere.
type Problem struct {
	ID     string
	Name   string
	Points int
	Tag    string
	Hints  []string
}

type ProblemRepo interface {
	Get(ctx context.Context, id string) (*ProblemRow, error)
	GetMany(ctx context.Context, ids []string) ([]*ProblemRow, error)
	Save(ctx context.Context, row *ProblemRow) error
}

type ProblemSrvc struct {
	repo ProblemRepo
}

func NewProblemSrvc(repo ProblemRepo) *ProblemSrvc {
	return &ProblemSrvc{repo: repo}
}

// Get returns the problem or a not-found error.
func (s *ProblemSrvc) Get(ctx context.Context, id string) (*Problem, error) {
	if id == "" {
		return nil, newErrInvalidProblemID()
	}
	row, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	if row == nil {
		return nil, newErrProblemNotFound(id)
	}
	p := rowToProblem(row)
	return &p, nil
}

// TagGroup is one bucket of the grouped problem set.
type TagGroup struct {
	Tag      string    `json:"tag"`
	Problems []Problem `json:"problems"`
}

// GroupByTag fetches the given problems and groups them by tag,
// ordering problems inside a bucket by points ascending (name breaks
// ties) and buckets alphabetically. Untagged problems fall into the
// "Uncategorised" bucket.
func (s *ProblemSrvc) GroupByTag(ctx context.Context, ids []string) ([]TagGroup, error) {
	rows, err := s.repo.GetMany(ctx, ids)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}

	buckets := map[string][]Problem{}
	for _, row := range rows {
		p := rowToProblem(row)
		tag := p.Tag
		if tag == "" {
			tag = "Uncategorised"
		}
		buckets[tag] = append(buckets[tag], p)
	}

	tags := make([]string, 0, len(buckets))
	for tag := range buckets {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	groups := make([]TagGroup, 0, len(tags))
	for _, tag := range tags {
		ps := buckets[tag]
		sort.Slice(ps, func(i, j int) bool {
			if ps[i].Points != ps[j].Points {
				return ps[i].Points < ps[j].Points
			}
			return ps[i].Name < ps[j].Name
		})
		groups = append(groups, TagGroup{Tag: tag, Problems: ps})
	}
	return groups, nil
}

func rowToProblem(row *ProblemRow) Problem {
	return Problem{
		ID:     row.ID,
		Name:   row.Name,
		Points: row.Points,
		Tag:    row.Tag,
		Hints:  row.Hints,
	}
}
