package http_test

import (
	nethttp "net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codeclash/backend/user"
)

func TestRegisterLoginWhoami(t *testing.T) {
	env := setupHttpServer(t)

	token := registerAndLogin(t, env.handler, "alice")

	w := doJson(t, env.handler, nethttp.MethodGet, "/auth/whoami", nil, token)
	var whoami struct {
		UUID  string `json:"uuid"`
		Nick  string `json:"nick"`
		Email string `json:"email"`
	}
	successData(t, w, &whoami)
	require.Equal(t, "alice", whoami.Nick)
	require.Equal(t, "alice@example.com", whoami.Email)
	require.NotEmpty(t, whoami.UUID)
}

func TestWhoamiWithoutToken(t *testing.T) {
	env := setupHttpServer(t)

	w := doJson(t, env.handler, nethttp.MethodGet, "/auth/whoami", nil, "")
	assertErrorInHttpResponse(t, w, "not_authenticated")
	require.Equal(t, nethttp.StatusUnauthorized, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	env := setupHttpServer(t)
	registerAndLogin(t, env.handler, "alice")

	w := doJson(t, env.handler, nethttp.MethodPost, "/auth/login", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "not-the-password",
	}, "")
	assertErrorInHttpResponse(t, w, user.ErrCodeInvalidCredentials)
}

func TestRegisterDuplicateNick(t *testing.T) {
	env := setupHttpServer(t)
	registerAndLogin(t, env.handler, "alice")

	w := doJson(t, env.handler, nethttp.MethodPost, "/users", map[string]interface{}{
		"email":             "other@example.com",
		"nick":              "alice",
		"yearLevel":         "2",
		"preferredLanguage": "cpp",
		"password":          "hunter2hunter2",
	}, "")
	assertErrorInHttpResponse(t, w, user.ErrCodeNickAlreadyExists)
}
