package comp

import (
	"fmt"
	"net/http"

	"github.com/codeclash/backend/srvcerror"
)

const ErrCodeInvalidCompetitionID = "invalid_argument"

func newErrInvalidCompetitionID() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidCompetitionID,
		"competition id is missing or malformed",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeCompetitionNotFound = "competition_not_found"

func newErrCompetitionNotFound(id string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeCompetitionNotFound,
		fmt.Sprintf("competition '%s' was not found", id),
	).SetHttpStatusCode(http.StatusNotFound)
}

func newErrInternalSE() *srvcerror.Error {
	return srvcerror.ErrInternalSE()
}
