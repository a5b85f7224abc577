package problem

import (
	"fmt"
	"net/http"

	"github.com/codeclash/backend/srvcerror"
)

const ErrCodeInvalidProblemID = "invalid_argument"

func newErrInvalidProblemID() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidProblemID,
		"problem id is missing or malformed",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeProblemNotFound = "problem_not_found"

func newErrProblemNotFound(id string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeProblemNotFound,
		fmt.Sprintf("problem '%s' was not found", id),
	).SetHttpStatusCode(http.StatusNotFound)
}

func newErrInternalSE() *srvcerror.Error {
	return srvcerror.ErrInternalSE()
}
