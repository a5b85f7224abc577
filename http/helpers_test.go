package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeclash/backend/comp"
	backendhttp "github.com/codeclash/backend/http"
	"github.com/codeclash/backend/problem"
	"github.com/codeclash/backend/progress"
	"github.com/codeclash/backend/user"
)

type testEnv struct {
	handler  nethttp.Handler
	compRepo *comp.InMemCompRepo
	probRepo *problem.InMemProblemRepo
}

func setupHttpServer(t *testing.T) *testEnv {
	t.Helper()

	userSrvc := user.NewUserSrvc(user.NewInMemUserRepo())
	progressSrvc := progress.NewProgressSrvc(progress.NewInMemRepo(), userSrvc)
	compRepo := comp.NewInMemCompRepo()
	probRepo := problem.NewInMemProblemRepo()

	server := backendhttp.NewHttpServer(
		progressSrvc,
		userSrvc,
		comp.NewCompSrvc(compRepo),
		problem.NewProblemSrvc(probRepo),
		[]byte("test"),
	)

	return &testEnv{
		handler:  server.Handler(),
		compRepo: compRepo,
		probRepo: probRepo,
	}
}

func (env *testEnv) seedCompetition(t *testing.T, id string, problemIds ...string) {
	t.Helper()
	now := time.Now()
	err := env.compRepo.Save(context.Background(), &comp.CompRow{
		ID:         id,
		Name:       id,
		StartTime:  now.Add(-time.Hour),
		EndTime:    now.Add(2 * time.Hour),
		ProblemIDs: problemIds,
	})
	require.NoError(t, err)
}

func (env *testEnv) seedProblem(t *testing.T, id string, points int, tag string, hints ...string) {
	t.Helper()
	err := env.probRepo.Save(context.Background(), &problem.ProblemRow{
		ID:     id,
		Name:   id,
		Points: points,
		Tag:    tag,
		Hints:  hints,
	})
	require.NoError(t, err)
}

func newJsonReq(method, path string, body map[string]interface{}) (*nethttp.Request, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func doJson(t *testing.T, handler nethttp.Handler, method, path string, body map[string]interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *nethttp.Request
	var err error
	if body != nil {
		req, err = newJsonReq(method, path, body)
		require.NoError(t, err)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

// successData unmarshals the "data" field of the success envelope into out.
func successData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.Equal(t, nethttp.StatusOK, w.Code, "body: %s", w.Body.String())

	var envelope struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &envelope)
	require.NoError(t, err, "Failed to unmarshal response body")
	require.Equal(t, "success", envelope.Status)

	if out != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
}

func assertErrorInHttpResponse(t *testing.T, w *httptest.ResponseRecorder, expectedCode string) {
	t.Helper()

	assert.NotEqual(t, nethttp.StatusOK, w.Code, "Expected error status code")

	var errorResponse struct {
		Status  string `json:"status"`
		Code    string `json:"code"`
		Message string `json:"message"`
	}

	err := json.Unmarshal(w.Body.Bytes(), &errorResponse)
	require.NoError(t, err, "Failed to unmarshal error response body")

	assert.Equal(t, "error", errorResponse.Status, "Expected status to be 'error'")
	assert.Equal(t, expectedCode, errorResponse.Code, "Incorrect error code")
	assert.NotEmpty(t, errorResponse.Message, "Expected non-empty error message")
}

// registerAndLogin creates a contestant and returns their bearer token.
func registerAndLogin(t *testing.T, handler nethttp.Handler, nick string) string {
	t.Helper()

	w := doJson(t, handler, nethttp.MethodPost, "/users", map[string]interface{}{
		"email":             nick + "@example.com",
		"nick":              nick,
		"yearLevel":         "3",
		"preferredLanguage": "python",
		"password":          "hunter2hunter2",
	}, "")
	require.Equal(t, nethttp.StatusOK, w.Code, "register failed: %s", w.Body.String())

	w = doJson(t, handler, nethttp.MethodPost, "/auth/login", map[string]interface{}{
		"email":    nick + "@example.com",
		"password": "hunter2hunter2",
	}, "")
	require.Equal(t, nethttp.StatusOK, w.Code, "login failed: %s", w.Body.String())

	var token string
	successData(t, w, &token)
	require.NotEmpty(t, token)
	return token
}
