package user

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

func (s *UserSrvc) Login(ctx context.Context, email string, password string) (*User, error) {
	allUsers, err := s.repo.List(ctx)
	if err != nil {
		errMsg := fmt.Errorf("error listing users: %w", err)
		return nil, newErrInternalSE().SetDebug(errMsg)
	}

	for _, row := range allUsers {
		if row.Email == email {
			err = bcrypt.CompareHashAndPassword(row.BcryptPwd, []byte(password))
			if err == nil {
				res := rowToUser(row)
				return &res, nil
			}
		}
	}

	return nil, newErrInvalidCredentials()
}
