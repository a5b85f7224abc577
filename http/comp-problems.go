package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"

	"github.com/codeclash/backend/httpjson"
	"github.com/codeclash/backend/problem"
)

const problemsCacheKeyPrefix = "comp_problems:"

func problemsCacheKey(competitionId string) string {
	return fmt.Sprintf("%s%s", problemsCacheKeyPrefix, competitionId)
}

type problemSetGroup struct {
	Tag      string               `json:"tag"`
	Problems []problemSetResponse `json:"problems"`
}

// problemSetResponse deliberately omits hint texts; those are only
// handed out through the hint unlock endpoint.
type problemSetResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Tag    string `json:"tag"`
}

func mapProblemSetResponse(groups []problem.TagGroup) []problemSetGroup {
	response := make([]problemSetGroup, len(groups))
	for i, g := range groups {
		probs := make([]problemSetResponse, len(g.Problems))
		for j, p := range g.Problems {
			probs[j] = problemSetResponse{
				ID:     p.ID,
				Name:   p.Name,
				Points: p.Points,
				Tag:    p.Tag,
			}
		}
		response[i] = problemSetGroup{Tag: g.Tag, Problems: probs}
	}
	return response
}

// getCompetitionProblems returns the competition's problem set grouped
// by tag. The result is cached for a few seconds; singleflight keeps
// concurrent cache misses from all hitting the store at once.
func (httpserver *HttpServer) getCompetitionProblems(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())
	competitionId := chi.URLParam(r, "competitionId")
	cacheKey := problemsCacheKey(competitionId)

	if cached, found := httpserver.cache.Get(cacheKey); found {
		if groups, ok := cached.([]problemSetGroup); ok {
			httpjson.WriteSuccessJson(w, groups)
			return
		}
	}

	result, err, _ := httpserver.sfGroup.Do(cacheKey, func() (interface{}, error) {
		// Another request may have populated the cache while we waited.
		if cached, found := httpserver.cache.Get(cacheKey); found {
			if groups, ok := cached.([]problemSetGroup); ok {
				return groups, nil
			}
		}

		competition, err := httpserver.compSrvc.Get(r.Context(), competitionId)
		if err != nil {
			return nil, err
		}

		groups, err := httpserver.problemSrvc.GroupByTag(r.Context(), competition.ProblemIDs)
		if err != nil {
			return nil, err
		}

		response := mapProblemSetResponse(groups)
		httpserver.cache.Set(cacheKey, response, 0)

		return response, nil
	})
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	response, _ := result.([]problemSetGroup)
	httpjson.WriteSuccessJson(w, response)
}
