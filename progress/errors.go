package progress

import (
	"fmt"
	"net/http"

	"github.com/codeclash/backend/srvcerror"
)

const ErrCodeInvalidIdentifier = "invalid_argument"

func newErrInvalidIdentifier(which string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidIdentifier,
		fmt.Sprintf("%s is missing or malformed", which),
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeProgressNotFound = "progress_not_found"

func newErrProgressNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeProgressNotFound,
		"no progress recorded for this contestant in this competition",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeHintOutOfOrder = "hint_out_of_order"

func newErrHintOutOfOrder(requested int) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeHintOutOfOrder,
		fmt.Sprintf("hint %d cannot be unlocked yet, hints unlock one at a time", requested),
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeStoreContention = "store_contention"

func newErrStoreContention() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeStoreContention,
		"the record is being updated, please retry",
	).SetHttpStatusCode(http.StatusInternalServerError)
}

func newErrInternalSE() *srvcerror.Error {
	return srvcerror.ErrInternalSE()
}
