package http

import (
	"net/http"
	"time"

	"github.com/go-chi/httplog/v2"

	"github.com/codeclash/backend/comp"
	"github.com/codeclash/backend/httpjson"
)

type competitionResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	ProblemIDs []string  `json:"problemIds"`
}

func mapCompetitionResponse(c *comp.Competition) competitionResponse {
	return competitionResponse{
		ID:         c.ID,
		Name:       c.Name,
		StartTime:  c.StartTime,
		EndTime:    c.EndTime,
		ProblemIDs: c.ProblemIDs,
	}
}

func mapCompetitionsResponse(comps []comp.Competition) []competitionResponse {
	response := make([]competitionResponse, len(comps))
	for i := range comps {
		response[i] = mapCompetitionResponse(&comps[i])
	}
	return response
}

func (httpserver *HttpServer) listPastCompetitions(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	comps, err := httpserver.compSrvc.ListPast(r.Context())
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapCompetitionsResponse(comps))
}

func (httpserver *HttpServer) listUpcomingCompetitions(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	comps, err := httpserver.compSrvc.ListUpcoming(r.Context())
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapCompetitionsResponse(comps))
}
