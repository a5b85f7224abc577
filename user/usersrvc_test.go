package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/codeclash/backend/srvcerror"
	"github.com/codeclash/backend/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserSrvc() *user.UserSrvc {
	return user.NewUserSrvc(user.NewInMemUserRepo())
}

func validParams() user.CreateUserParams {
	return user.CreateUserParams{
		Email:             "alice@example.com",
		Nick:              "alice",
		YearLevel:         "2",
		PreferredLanguage: "cpp",
		Password:          "password123",
	}
}

func assertUserErrCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	srvcErr := &srvcerror.Error{}
	require.True(t, errors.As(err, &srvcErr), "expected a service error, got %v", err)
	assert.Equal(t, code, srvcErr.ErrorCode())
}

func TestCreateUser(t *testing.T) {
	t.Parallel()
	srvc := newTestUserSrvc()

	created, err := srvc.CreateUser(context.Background(), validParams())
	require.NoError(t, err)
	assert.Equal(t, "alice", created.Nick)
	assert.Equal(t, "alice@example.com", created.Email)

	fetched, err := srvc.GetByUUID(context.Background(), created.UUID)
	require.NoError(t, err)
	assert.Equal(t, created.Nick, fetched.Nick)
}

func TestCreateUserValidation(t *testing.T) {
	t.Parallel()
	srvc := newTestUserSrvc()
	ctx := context.Background()

	p := validParams()
	p.Email = "not-an-email"
	_, err := srvc.CreateUser(ctx, p)
	assertUserErrCode(t, err, user.ErrCodeEmailInvalid)

	p = validParams()
	p.Nick = "a"
	_, err = srvc.CreateUser(ctx, p)
	assertUserErrCode(t, err, user.ErrCodeNickTooShort)

	p = validParams()
	p.YearLevel = "12"
	_, err = srvc.CreateUser(ctx, p)
	assertUserErrCode(t, err, user.ErrCodeYearLevelInvalid)

	p = validParams()
	p.PreferredLanguage = "cobol"
	_, err = srvc.CreateUser(ctx, p)
	assertUserErrCode(t, err, user.ErrCodeLanguageInvalid)

	p = validParams()
	p.Password = "short"
	_, err = srvc.CreateUser(ctx, p)
	assertUserErrCode(t, err, user.ErrCodePasswordTooShort)
}

func TestCreateUserDuplicates(t *testing.T) {
	t.Parallel()
	srvc := newTestUserSrvc()
	ctx := context.Background()

	_, err := srvc.CreateUser(ctx, validParams())
	require.NoError(t, err)

	p := validParams()
	p.Nick = "alice2"
	_, err = srvc.CreateUser(ctx, p)
	assertUserErrCode(t, err, user.ErrCodeEmailAlreadyExists)

	p = validParams()
	p.Email = "other@example.com"
	_, err = srvc.CreateUser(ctx, p)
	assertUserErrCode(t, err, user.ErrCodeNickAlreadyExists)
}

func TestLogin(t *testing.T) {
	t.Parallel()
	srvc := newTestUserSrvc()
	ctx := context.Background()

	created, err := srvc.CreateUser(ctx, validParams())
	require.NoError(t, err)

	logged, err := srvc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, created.UUID, logged.UUID)

	_, err = srvc.Login(ctx, "alice@example.com", "wrongpassword")
	assertUserErrCode(t, err, user.ErrCodeInvalidCredentials)

	_, err = srvc.Login(ctx, "nobody@example.com", "password123")
	assertUserErrCode(t, err, user.ErrCodeInvalidCredentials)
}

func TestResolveNicks(t *testing.T) {
	t.Parallel()
	srvc := newTestUserSrvc()
	ctx := context.Background()

	a, err := srvc.CreateUser(ctx, validParams())
	require.NoError(t, err)
	p := validParams()
	p.Email = "bob@example.com"
	p.Nick = "bob"
	b, err := srvc.CreateUser(ctx, p)
	require.NoError(t, err)

	nicks, err := srvc.ResolveNicks(ctx, []string{
		a.UUID.String(), b.UUID.String(), "no-such-user",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		a.UUID.String(): "alice",
		b.UUID.String(): "bob",
	}, nicks)
}
