package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"

	"github.com/codeclash/backend/httpjson"
)

// settleSolve records an accepted solve for the caller. The award
// value always comes from the problem record, never from the request.
// Settlement is idempotent: repeating the call reports alreadySolved
// instead of awarding again.
func (httpserver *HttpServer) settleSolve(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}
	competitionId := chi.URLParam(r, "competitionId")

	type settleRequest struct {
		ProblemID string `json:"problemId"`
	}

	type settleResponse struct {
		ProblemID     string `json:"problemId"`
		AlreadySolved bool   `json:"alreadySolved"`
		Points        int    `json:"points"`
	}

	var request settleRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	prob, err := httpserver.problemSrvc.Get(r.Context(), request.ProblemID)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	settlement, err := httpserver.progressSrvc.RecordSolve(r.Context(),
		competitionId, claims.UUID, request.ProblemID, prob.Points)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, settleResponse{
		ProblemID:     request.ProblemID,
		AlreadySolved: settlement.AlreadySolved,
		Points:        settlement.NewPoints,
	})
}
