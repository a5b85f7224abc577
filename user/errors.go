package user

import (
	"fmt"
	"net/http"

	"github.com/codeclash/backend/srvcerror"
)

const ErrCodeEmailInvalid = "email_invalid"

func newErrEmailInvalid() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeEmailInvalid,
		"email address is invalid",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeEmailAlreadyExists = "email_exists"

func newErrEmailExists() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeEmailAlreadyExists,
		"a user with this email already exists",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeNickTooShort = "nick_too_short"

func newErrNickTooShort(minLength int) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNickTooShort,
		fmt.Sprintf("nickname must be at least %d characters long", minLength),
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeNickTooLong = "nick_too_long"

func newErrNickTooLong(maxLength int) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNickTooLong,
		fmt.Sprintf("nickname must be at most %d characters long", maxLength),
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeNickAlreadyExists = "nick_exists"

func newErrNickExists() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNickAlreadyExists,
		"this nickname is already taken",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeYearLevelInvalid = "year_level_invalid"

func newErrYearLevelInvalid() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeYearLevelInvalid,
		"year level is not one of the allowed values",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeLanguageInvalid = "language_invalid"

func newErrLanguageInvalid() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeLanguageInvalid,
		"preferred language is not supported",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodePasswordTooShort = "password_too_short"

func newErrPasswordTooShort(minLength int) *srvcerror.Error {
	return srvcerror.New(
		ErrCodePasswordTooShort,
		fmt.Sprintf("password must be at least %d characters long", minLength),
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeInvalidCredentials = "invalid_credentials"

func newErrInvalidCredentials() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidCredentials,
		"email or password is incorrect",
	).SetHttpStatusCode(http.StatusUnauthorized)
}

const ErrCodeUserNotFound = "user_not_found"

func newErrUserNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUserNotFound,
		"user was not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

func newErrInternalSE() *srvcerror.Error {
	return srvcerror.ErrInternalSE()
}
