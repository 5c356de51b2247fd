// Copyright (c) 2026 Raduga Center. All rights reserved.

package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/raduga-center/raduga/internal/auth"
	"github.com/raduga-center/raduga/internal/crud"
	"github.com/raduga-center/raduga/internal/platform/apperr"
	"github.com/raduga-center/raduga/internal/platform/cache"
	"github.com/raduga-center/raduga/internal/platform/constants"
	requestutil "github.com/raduga-center/raduga/internal/platform/request"
	"github.com/raduga-center/raduga/internal/platform/respond"
)

// Routes mounts the staff account API. Creating and deleting accounts is
// reserved for administrators; the photo routes are open to all tiers.
func Routes(service *Service, photos *PhotoService, gate *auth.Gate, store *cache.Store) chi.Router {

	allStaff := []int64{
		constants.RoleAdministrator,
		constants.RoleMethodologist,
		constants.RoleSpecialist,
	}
	adminOnly := []int64{constants.RoleAdministrator}

	router := crud.New(crud.Config[User, CreateInput, UpdateInput]{
		Prefix:  "users",
		Service: service,
		Gate:    gate,
		Cache:   store,
		Naming: crud.Naming{
			NotFound: "Пользователь не найден",
			Deleted:  "Пользователь успешно удален",
			Conflict: "Пользователь с таким логином или email уже существует",
		},
		Roles: crud.Roles{
			List:   allStaff,
			Get:    allStaff,
			Create: adminOnly,
			Update: allStaff,
			Delete: adminOnly,
		},
	})

	routes := router.Routes()

	// Profile photo routes sit on the same subtree, behind the same
	// bearer authentication the crud router installed.
	handler := &photoHandler{photos: photos}
	photoAccess := gate.Require(auth.Roles(allStaff...))

	routes.With(photoAccess).Post("/{id}/photo", handler.upload)
	routes.With(photoAccess).Get("/{id}/photo", handler.serve)
	routes.With(photoAccess).Delete("/{id}/photo", handler.remove)

	return routes
}

type photoHandler struct {
	photos *PhotoService
}

func (handler *photoHandler) upload(writer http.ResponseWriter, request *http.Request) {

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, _, err := requestutil.Multipart(request, "photo")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if file == nil {
		respond.Error(writer, request, apperr.BadRequest("Файл обязателен"))
		return
	}

	account, err := handler.photos.Upload(request.Context(), id, file)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

func (handler *photoHandler) serve(writer http.ResponseWriter, request *http.Request) {

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	path, contentType, err := handler.photos.Open(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Photos change rarely; let browsers keep them for a day.
	writer.Header().Set("Content-Type", contentType)
	writer.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(writer, request, path)
}

func (handler *photoHandler) remove(writer http.ResponseWriter, request *http.Request) {

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.photos.Delete(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}
