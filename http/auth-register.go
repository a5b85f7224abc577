package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/httplog/v2"

	"github.com/codeclash/backend/httpjson"
	"github.com/codeclash/backend/user"
)

func (httpserver *HttpServer) authRegister(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	type registerRequest struct {
		Email             string `json:"email"`
		Nick              string `json:"nick"`
		YearLevel         string `json:"yearLevel"`
		PreferredLanguage string `json:"preferredLanguage"`
		Password          string `json:"password"`
	}

	type registerResponse struct {
		UUID              string `json:"uuid"`
		Email             string `json:"email"`
		Nick              string `json:"nick"`
		YearLevel         string `json:"yearLevel"`
		PreferredLanguage string `json:"preferredLanguage"`
	}

	var request registerRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	created, err := httpserver.userSrvc.CreateUser(r.Context(), user.CreateUserParams{
		Email:             request.Email,
		Nick:              request.Nick,
		YearLevel:         request.YearLevel,
		PreferredLanguage: request.PreferredLanguage,
		Password:          request.Password,
	})
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	response := registerResponse{
		UUID:              created.UUID.String(),
		Email:             created.Email,
		Nick:              created.Nick,
		YearLevel:         created.YearLevel,
		PreferredLanguage: created.PreferredLanguage,
	}

	httpjson.WriteSuccessJson(w, response)
}
