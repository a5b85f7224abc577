package http

import (
	"net/http"

	"github.com/codeclash/backend/httpjson"
	"github.com/codeclash/backend/srvcerror"
	"github.com/codeclash/backend/user/auth"
	"github.com/go-chi/httplog/v2"
)

const ErrCodeNotAuthenticated = "not_authenticated"

func newErrNotAuthenticated() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNotAuthenticated,
		"authentication is required",
	).SetHttpStatusCode(http.StatusUnauthorized)
}

// requireClaims returns the request's JWT claims or writes a 401.
func requireClaims(w http.ResponseWriter, r *http.Request) *auth.JwtClaims {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		logger := httplog.LogEntry(r.Context())
		httpjson.HandleError(logger, w, newErrNotAuthenticated())
		return nil
	}
	return claims
}

func (httpserver *HttpServer) authWhoami(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	type whoamiResponse struct {
		UUID  string `json:"uuid"`
		Nick  string `json:"nick"`
		Email string `json:"email"`
	}

	httpjson.WriteSuccessJson(w, whoamiResponse{
		UUID:  claims.UUID,
		Nick:  claims.Nick,
		Email: claims.Email,
	})
}
