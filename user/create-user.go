package user

import (
	"context"
	"net/mail"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	minNickLength     = 2
	maxNickLength     = 32
	minPasswordLength = 8
)

type CreateUserParams struct {
	Email             string
	Nick              string
	YearLevel         string
	PreferredLanguage string
	Password          string
}

func (s *UserSrvc) CreateUser(ctx context.Context, p CreateUserParams) (*User, error) {
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return nil, newErrEmailInvalid()
	}
	if len(p.Nick) < minNickLength {
		return nil, newErrNickTooShort(minNickLength)
	}
	if len(p.Nick) > maxNickLength {
		return nil, newErrNickTooLong(maxNickLength)
	}
	if !slices.Contains(YearLevels, p.YearLevel) {
		return nil, newErrYearLevelInvalid()
	}
	if !slices.Contains(PreferredLanguages, p.PreferredLanguage) {
		return nil, newErrLanguageInvalid()
	}
	if len(p.Password) < minPasswordLength {
		return nil, newErrPasswordTooShort(minPasswordLength)
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	for _, row := range all {
		// email must be unique
		if row.Email == p.Email {
			return nil, newErrEmailExists()
		}
		// nick must be unique, it is what the leaderboard displays
		if row.Nick == p.Nick {
			return nil, newErrNickExists()
		}
	}

	bcryptPwd, err := bcrypt.GenerateFromPassword(
		[]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}

	row := &UserRow{
		Uuid:              uuid.New().String(),
		Email:             p.Email,
		Nick:              p.Nick,
		YearLevel:         p.YearLevel,
		PreferredLanguage: p.PreferredLanguage,
		BcryptPwd:         bcryptPwd,
		CreatedAt:         time.Now(),
	}

	if err := s.repo.Save(ctx, row); err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}

	res := rowToUser(row)
	return &res, nil
}
