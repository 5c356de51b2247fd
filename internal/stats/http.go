// Copyright (c) 2026 Raduga Center. All rights reserved.

package stats

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/raduga-center/raduga/internal/auth"
	"github.com/raduga-center/raduga/internal/platform/apperr"
	"github.com/raduga-center/raduga/internal/platform/cache"
	"github.com/raduga-center/raduga/internal/platform/constants"
	requestutil "github.com/raduga-center/raduga/internal/platform/request"
	"github.com/raduga-center/raduga/internal/platform/respond"
)

// Handler serves the statistics endpoints.
type Handler struct {
	service *Service
	cache   *cache.Store
}

// Routes mounts the statistics API. Specialists do not see center-wide
// numbers; the subtree is limited to administrators and methodologists.
func Routes(service *Service, gate *auth.Gate, store *cache.Store) chi.Router {

	handler := &Handler{service: service, cache: store}

	router := chi.NewRouter()
	router.Use(gate.Authenticate)
	router.Use(gate.Require(auth.Roles(constants.RoleAdministrator, constants.RoleMethodologist)))

	router.Get("/documents/{days}", handler.documents)
	router.Get("/documents/{days}/user/{user_id}", handler.documentsByUser)
	router.Get("/documents/subdirectories/{days}", handler.categories)
	router.Get("/patients/dynamics/{days}", handler.patientDynamics)
	router.Get("/users/dynamics/{days}", handler.userDynamics)
	router.Get("/roles/count/{days}", handler.roleCounts)

	return router
}

func (handler *Handler) documents(writer http.ResponseWriter, request *http.Request) {
	days, err := windowParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	key := cache.Key("statistics", "documents_per_day", cache.A("days", days))
	handler.serveCached(writer, request, key, func() (any, error) {
		return handler.service.DocumentsPerDay(request.Context(), days)
	})
}

func (handler *Handler) documentsByUser(writer http.ResponseWriter, request *http.Request) {
	days, err := windowParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.ID(request, "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	key := cache.Key("statistics", "documents_per_author",
		cache.A("days", days), cache.A("user_id", userID))
	handler.serveCached(writer, request, key, func() (any, error) {
		return handler.service.DocumentsPerDayByAuthor(request.Context(), days, userID)
	})
}

func (handler *Handler) categories(writer http.ResponseWriter, request *http.Request) {
	days, err := windowParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	key := cache.Key("statistics", "documents_per_category", cache.A("days", days))
	handler.serveCached(writer, request, key, func() (any, error) {
		return handler.service.CategoryCounts(request.Context(), days)
	})
}

func (handler *Handler) patientDynamics(writer http.ResponseWriter, request *http.Request) {
	days, err := windowParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	key := cache.Key("statistics", "patient_dynamics", cache.A("days", days))
	handler.serveCached(writer, request, key, func() (any, error) {
		return handler.service.PatientDynamics(request.Context(), days)
	})
}

func (handler *Handler) userDynamics(writer http.ResponseWriter, request *http.Request) {
	days, err := windowParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	key := cache.Key("statistics", "user_dynamics", cache.A("days", days))
	handler.serveCached(writer, request, key, func() (any, error) {
		return handler.service.UserDynamics(request.Context(), days)
	})
}

func (handler *Handler) roleCounts(writer http.ResponseWriter, request *http.Request) {
	days, err := windowParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	key := cache.Key("statistics", "users_per_role", cache.A("days", days))
	handler.serveCached(writer, request, key, func() (any, error) {
		return handler.service.RoleCounts(request.Context(), days)
	})
}

// serveCached answers from the response cache when possible, otherwise
// computes the series and stores it best-effort.
func (handler *Handler) serveCached(writer http.ResponseWriter, request *http.Request, key string, compute func() (any, error)) {

	if cached, hit := handler.cache.Get(request.Context(), key); hit {
		writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		writer.WriteHeader(http.StatusOK)
		_, _ = writer.Write(cached)
		return
	}

	series, err := compute()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if encoded, err := json.Marshal(series); err == nil {
		handler.cache.Set(request.Context(), key, encoded)
	}

	respond.OK(writer, series)
}

// windowParam reads the {days} route parameter. Range checking happens in
// the service; only the syntax is rejected here.
func windowParam(request *http.Request) (int, error) {
	raw := chi.URLParam(request, "days")

	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.BadRequest("Некорректное количество дней")
	}

	return days, nil
}
