package user

import (
	"context"

	"github.com/google/uuid"
)

// UserRepo is the durable user directory.
type UserRepo interface {
	// Save persists a row with optimistic locking; a version conflict
	// surfaces as a storage error.
	Save(ctx context.Context, row *UserRow) error
	Get(ctx context.Context, uuid uuid.UUID) (*UserRow, error)
	GetMany(ctx context.Context, uuids []string) ([]*UserRow, error)
	List(ctx context.Context) ([]*UserRow, error)
}

type UserSrvc struct {
	repo UserRepo
}

func NewUserSrvc(repo UserRepo) *UserSrvc {
	return &UserSrvc{repo: repo}
}

// GetByUUID returns the user or a not-found error.
func (s *UserSrvc) GetByUUID(ctx context.Context, id uuid.UUID) (*User, error) {
	row, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	if row == nil {
		return nil, newErrUserNotFound()
	}
	u := rowToUser(row)
	return &u, nil
}

// ResolveNicks maps contestant ids to nicknames for the leaderboard.
// Unknown ids are simply absent from the result, they are not errors.
func (s *UserSrvc) ResolveNicks(ctx context.Context, contestantIDs []string) (map[string]string, error) {
	rows, err := s.repo.GetMany(ctx, contestantIDs)
	if err != nil {
		return nil, err
	}
	nicks := make(map[string]string, len(rows))
	for _, row := range rows {
		nicks[row.Uuid] = row.Nick
	}
	return nicks, nil
}

func rowToUser(row *UserRow) User {
	id, _ := uuid.Parse(row.Uuid)
	return User{
		UUID:              id,
		Email:             row.Email,
		Nick:              row.Nick,
		YearLevel:         row.YearLevel,
		PreferredLanguage: row.PreferredLanguage,
	}
}
