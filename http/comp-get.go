package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"

	"github.com/codeclash/backend/httpjson"
)

func (httpserver *HttpServer) getCompetition(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())
	competitionId := chi.URLParam(r, "competitionId")

	competition, err := httpserver.compSrvc.Get(r.Context(), competitionId)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapCompetitionResponse(competition))
}
