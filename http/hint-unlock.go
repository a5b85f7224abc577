package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"

	"github.com/codeclash/backend/httpjson"
	"github.com/codeclash/backend/srvcerror"
)

const ErrCodeHintNotFound = "hint_not_found"

func newErrHintNotFound(problemId string, hintIdx int) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeHintNotFound,
		fmt.Sprintf("problem '%s' has no hint %d", problemId, hintIdx),
	).SetHttpStatusCode(http.StatusNotFound)
}

// unlockHint reveals the next hint of a problem for the caller. The
// hint text is only returned once the unlock is durably recorded.
func (httpserver *HttpServer) unlockHint(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}
	competitionId := chi.URLParam(r, "competitionId")

	type unlockRequest struct {
		ProblemID string `json:"problemId"`
		HintIdx   int    `json:"hintIdx"`
	}

	type unlockResponse struct {
		ProblemID string `json:"problemId"`
		HintsUsed int    `json:"hintsUsed"`
		Hint      string `json:"hint"`
	}

	var request unlockRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	prob, err := httpserver.problemSrvc.Get(r.Context(), request.ProblemID)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}
	if request.HintIdx > len(prob.Hints) {
		httpjson.HandleError(logger, w, newErrHintNotFound(request.ProblemID, request.HintIdx))
		return
	}

	hintsUsed, err := httpserver.progressSrvc.UnlockHint(r.Context(),
		competitionId, claims.UUID, request.ProblemID, request.HintIdx)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, unlockResponse{
		ProblemID: request.ProblemID,
		HintsUsed: hintsUsed,
		Hint:      prob.Hints[request.HintIdx-1],
	})
}
