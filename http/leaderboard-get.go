package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"

	"github.com/codeclash/backend/httpjson"
	"github.com/codeclash/backend/progress"
)

const leaderboardCacheKeyPrefix = "leaderboard:"

func leaderboardCacheKey(competitionId string, page, limit int) string {
	return fmt.Sprintf("%s%s:%d:%d", leaderboardCacheKeyPrefix, competitionId, page, limit)
}

// getLeaderboard returns one page of the ranked board. Pages are
// cached briefly and computed through singleflight so a popular board
// does not turn every refresh into a full table read.
func (httpserver *HttpServer) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())
	competitionId := chi.URLParam(r, "competitionId")

	// unparsable values fall back to zero, the service applies defaults
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	cacheKey := leaderboardCacheKey(competitionId, page, limit)

	if cached, found := httpserver.cache.Get(cacheKey); found {
		if board, ok := cached.(progress.Leaderboard); ok {
			httpjson.WriteSuccessJson(w, board)
			return
		}
	}

	result, err, _ := httpserver.sfGroup.Do(cacheKey, func() (interface{}, error) {
		if cached, found := httpserver.cache.Get(cacheKey); found {
			if board, ok := cached.(progress.Leaderboard); ok {
				return board, nil
			}
		}

		board, err := httpserver.progressSrvc.GetLeaderboard(r.Context(), competitionId, page, limit)
		if err != nil {
			return nil, err
		}

		httpserver.cache.Set(cacheKey, board, 0)
		return board, nil
	})
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	board, _ := result.(progress.Leaderboard)
	httpjson.WriteSuccessJson(w, board)
}
