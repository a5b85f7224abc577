package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/codeclash/backend/comp"
	"github.com/codeclash/backend/logger"
	"github.com/codeclash/backend/problem"
	"github.com/codeclash/backend/progress"
	"github.com/codeclash/backend/user"
	"github.com/codeclash/backend/user/auth"
)

type HttpServer struct {
	progressSrvc *progress.ProgressSrvc
	userSrvc     *user.UserSrvc
	compSrvc     *comp.CompSrvc
	problemSrvc  *problem.ProblemSrvc
	jwtKey       []byte
	router       *chi.Mux

	// read-side cache with singleflight to prevent cache stampedes
	cache   *cache.Cache
	sfGroup singleflight.Group
}

func NewHttpServer(
	progressSrvc *progress.ProgressSrvc,
	userSrvc *user.UserSrvc,
	compSrvc *comp.CompSrvc,
	problemSrvc *problem.ProblemSrvc,
	jwtKey []byte,
) *HttpServer {
	router := chi.NewRouter()

	httpLogger := httplog.NewLogger("codeclash", httplog.Options{
		LogLevel:         slog.LevelDebug,
		Concise:          true,
		RequestHeaders:   true,
		MessageFieldName: "message",
	})

	router.Use(httplog.RequestLogger(httpLogger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://codeclash.dev", "https://www.codeclash.dev"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           3000,
	}))

	// service layer logs through logger.FromContext; hand it the
	// request-scoped logger so those lines correlate with the request
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logger.WithLogger(r.Context(), httplog.LogEntry(r.Context()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})

	router.Use(auth.GetJwtAuthMiddleware(jwtKey))

	server := &HttpServer{
		progressSrvc: progressSrvc,
		userSrvc:     userSrvc,
		compSrvc:     compSrvc,
		problemSrvc:  problemSrvc,
		jwtKey:       jwtKey,
		router:       router,
		cache:        cache.New(5*time.Second, 10*time.Second),
	}

	server.routes()

	return server
}

func (httpserver *HttpServer) Start(address string) error {
	return http.ListenAndServe(address, httpserver.router)
}

// Handler exposes the routed mux, mainly for tests.
func (httpserver *HttpServer) Handler() http.Handler {
	return httpserver.router
}

func (httpserver *HttpServer) routes() {
	r := httpserver.router

	r.Post("/auth/login", httpserver.authLogin)
	r.Post("/users", httpserver.authRegister)
	r.Get("/auth/whoami", httpserver.authWhoami)

	r.Get("/competitions/past", httpserver.listPastCompetitions)
	r.Get("/competitions/upcoming", httpserver.listUpcomingCompetitions)
	r.Get("/competitions/{competitionId}", httpserver.getCompetition)
	r.Get("/competitions/{competitionId}/problems", httpserver.getCompetitionProblems)
	r.Get("/competitions/{competitionId}/leaderboard", httpserver.getLeaderboard)

	r.Get("/competitions/{competitionId}/progress", httpserver.getProgress)
	r.Post("/competitions/{competitionId}/progress", httpserver.enterCompetition)
	r.Patch("/competitions/{competitionId}/progress/hints", httpserver.unlockHint)
	r.Post("/competitions/{competitionId}/progress/solves", httpserver.settleSolve)
}
