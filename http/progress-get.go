package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"

	"github.com/codeclash/backend/httpjson"
	"github.com/codeclash/backend/progress"
)

type problemProgressResponse struct {
	Solved    bool `json:"solved"`
	HintsUsed int  `json:"hintsUsed"`
}

type progressResponse struct {
	CompetitionID string                             `json:"competitionId"`
	ContestantID  string                             `json:"contestantId"`
	Points        int                                `json:"points"`
	Problems      map[string]problemProgressResponse `json:"problems"`
}

func mapProgressResponse(p progress.CompetitionProgress) progressResponse {
	problems := make(map[string]problemProgressResponse, len(p.Problems))
	for id, pp := range p.Problems {
		problems[id] = problemProgressResponse{
			Solved:    pp.Solved,
			HintsUsed: pp.HintsUsed,
		}
	}
	return progressResponse{
		CompetitionID: p.CompetitionID,
		ContestantID:  p.ContestantID,
		Points:        p.Points,
		Problems:      problems,
	}
}

// getProgress returns the caller's own record in the competition.
func (httpserver *HttpServer) getProgress(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}
	competitionId := chi.URLParam(r, "competitionId")

	prog, err := httpserver.progressSrvc.Get(r.Context(), competitionId, claims.UUID)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapProgressResponse(prog))
}

// enterCompetition creates the caller's zero-state record if it does
// not exist yet. Calling it again is harmless.
func (httpserver *HttpServer) enterCompetition(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}
	competitionId := chi.URLParam(r, "competitionId")

	// reject entry into competitions that do not exist
	_, err := httpserver.compSrvc.Get(r.Context(), competitionId)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	prog, err := httpserver.progressSrvc.GetOrCreate(r.Context(), competitionId, claims.UUID)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapProgressResponse(prog))
}
