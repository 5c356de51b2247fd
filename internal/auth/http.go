// Copyright (c) 2026 Raduga Center. All rights reserved.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/raduga-center/raduga/internal/platform/apperr"
	"github.com/raduga-center/raduga/internal/platform/respond"
	"github.com/raduga-center/raduga/internal/platform/validate"
)

// # HTTP Transport

// Handler exposes the authentication endpoints.
//
// Both endpoints accept application/x-www-form-urlencoded bodies, matching
// the OAuth2 password flow that the web client already speaks.
type Handler struct {
	service *Service
}

// NewHandler creates the auth HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for the /auth subtree.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	return router
}

// login handles POST /auth/login.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {

	if err := request.ParseForm(); err != nil {
		respond.Error(writer, request, apperr.BadRequest("Неверный формат запроса"))
		return
	}

	login := request.PostFormValue("username")
	password := request.PostFormValue("password")

	validator := validate.New()
	validator.Required("username", login)
	validator.Required("password", password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pair, err := handler.service.Login(request.Context(), login, password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, pair)
}

// refresh handles POST /auth/refresh.
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {

	if err := request.ParseForm(); err != nil {
		respond.Error(writer, request, apperr.BadRequest("Неверный формат запроса"))
		return
	}

	refreshToken := request.PostFormValue("refresh_token")

	validator := validate.New()
	validator.Required("refresh_token", refreshToken)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pair, err := handler.service.Refresh(request.Context(), refreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, pair)
}
