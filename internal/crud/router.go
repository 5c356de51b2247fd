// Copyright (c) 2026 Raduga Center. All rights reserved.

package crud

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/raduga-center/raduga/internal/auth"
	"github.com/raduga-center/raduga/internal/platform/apperr"
	"github.com/raduga-center/raduga/internal/platform/cache"
	"github.com/raduga-center/raduga/internal/platform/dberr"
	requestutil "github.com/raduga-center/raduga/internal/platform/request"
	"github.com/raduga-center/raduga/internal/platform/respond"
	"github.com/raduga-center/raduga/internal/platform/validate"
)

// allowedExtensions is the upload allow-list, checked before any other
// processing so oversized or malformed payloads of forbidden types are
// rejected as early as possible.
var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".docx": {},
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".mp4":  {},
	".mov":  {},
	".mkv":  {},
}

// ErrBadExtension rejects files outside the allow-list.
var ErrBadExtension = apperr.BadRequest("Недопустимый формат файла")

// Router serves the standard record routes for one resource.
type Router[E any, C any, U any] struct {
	cfg Config[E, C, U]
}

// New builds a resource router from its configuration.
func New[E any, C any, U any](cfg Config[E, C, U]) *Router[E, C, U] {
	return &Router[E, C, U]{cfg: cfg}
}

// Routes returns the chi subtree for mounting under the resource prefix.
// All routes sit behind bearer authentication plus a per-operation role check.
func (router *Router[E, C, U]) Routes() chi.Router {

	r := chi.NewRouter()
	r.Use(router.cfg.Gate.Authenticate)

	require := func(roles []int64) func(http.Handler) http.Handler {
		return router.cfg.Gate.Require(auth.Requirement{AllowedRoles: roles})
	}

	r.With(require(router.cfg.Roles.List)).Get("/", router.list)
	r.With(require(router.cfg.Roles.Create)).Post("/", router.create)
	r.With(require(router.cfg.Roles.Get)).Get("/{id}", router.getByID)
	r.With(require(router.cfg.Roles.Update)).Put("/{id}", router.update)
	r.With(require(router.cfg.Roles.Delete)).Delete("/{id}", router.remove)

	if router.cfg.File != nil {
		r.With(require(router.cfg.Roles.Download)).Get("/{id}/download", router.download)
	}

	return r
}

// # List

func (router *Router[E, C, U]) list(writer http.ResponseWriter, request *http.Request) {

	key := cache.Key(router.cfg.Prefix, "list")
	if cached, hit := router.cfg.Cache.Get(request.Context(), key); hit {
		writeCachedJSON(writer, cached)
		return
	}

	entities, err := router.cfg.Service.ListAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// An empty collection is a valid answer, not an error.
	if entities == nil {
		entities = []E{}
	}

	router.cacheJSON(request, key, entities)
	respond.OK(writer, entities)
}

// # Read One

// getByID answers a missing id with 206 Partial Content instead of 404.
// Clients distinguish "no such record" from transport failures by the
// status code, and the frontend relies on this exact contract.
func (router *Router[E, C, U]) getByID(writer http.ResponseWriter, request *http.Request) {

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	key := cache.Key(router.cfg.Prefix, "get_by_id", cache.A("id", id))
	if cached, hit := router.cfg.Cache.Get(request.Context(), key); hit {
		writeCachedJSON(writer, cached)
		return
	}

	entity, err := router.cfg.Service.GetByID(request.Context(), id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			respond.Error(writer, request, apperr.SoftMiss(router.cfg.Naming.NotFound))
			return
		}
		respond.Error(writer, request, err)
		return
	}

	router.cacheJSON(request, key, entity)
	respond.OK(writer, entity)
}

// # Create

func (router *Router[E, C, U]) create(writer http.ResponseWriter, request *http.Request) {

	var payload C
	if err := router.decodePayload(request, &payload, router.attachCreate); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := router.cfg.Service.Create(request.Context(), payload)
	if err != nil {
		respond.Error(writer, request, router.translate(err))
		return
	}

	respond.Created(writer, entity)
}

// # Update

func (router *Router[E, C, U]) update(writer http.ResponseWriter, request *http.Request) {

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The file variant verifies existence before touching the upload so a
	// rejected id never costs a full file read.
	if router.cfg.File != nil && isMultipart(request) {
		if _, err := router.cfg.Service.GetByID(request.Context(), id); err != nil {
			if errors.Is(err, dberr.ErrNotFound) {
				respond.Error(writer, request, apperr.NotFound(router.cfg.Naming.NotFound))
				return
			}
			respond.Error(writer, request, err)
			return
		}
	}

	var payload U
	if err := router.decodePayload(request, &payload, router.attachUpdate); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := router.cfg.Service.Update(request.Context(), id, payload)
	if err != nil {
		respond.Error(writer, request, router.translate(err))
		return
	}

	respond.OK(writer, entity)
}

// # Delete

func (router *Router[E, C, U]) remove(writer http.ResponseWriter, request *http.Request) {

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := router.cfg.Service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, router.translate(err))
		return
	}

	respond.Message(writer, router.cfg.Naming.Deleted)
}

// # Download

// cachedFile is the cache envelope for download responses. The Data field
// round-trips through base64 inside the JSON envelope.
type cachedFile struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

func (router *Router[E, C, U]) download(writer http.ResponseWriter, request *http.Request) {

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	key := cache.Key(router.cfg.Prefix, "download", cache.A("id", id))
	if cached, hit := router.cfg.Cache.Get(request.Context(), key); hit {
		var file cachedFile
		if err := json.Unmarshal(cached, &file); err == nil {
			respond.Attachment(writer, file.Name, file.ContentType, file.Data)
			return
		}
	}

	entity, err := router.cfg.Service.GetByID(request.Context(), id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			respond.Error(writer, request, apperr.NotFound(router.cfg.Naming.NotFound))
			return
		}
		respond.Error(writer, request, err)
		return
	}

	name, contentType, data := router.cfg.File.Download(entity)
	router.cacheJSON(request, key, cachedFile{Name: name, ContentType: contentType, Data: data})
	respond.Attachment(writer, name, contentType, data)
}

// # Payload Decoding

// decodePayload fills the payload from a JSON body, or from the multipart
// data+file pair for file-enabled resources.
func (router *Router[E, C, U]) decodePayload(request *http.Request, payload any, attach func(payload any, file *requestutil.UploadedFile)) error {

	if router.cfg.File == nil || !isMultipart(request) {
		return requestutil.DecodeJSON(request, payload)
	}

	file, body, err := requestutil.Multipart(request, router.cfg.File.Field)
	if err != nil {
		return err
	}

	// Extension gate runs before the JSON payload is even looked at.
	if file != nil {
		if err := CheckExtension(file.Name); err != nil {
			return err
		}
	}

	if body != "" {
		if err := json.Unmarshal([]byte(body), payload); err != nil {
			return validate.ErrInvalidJSON
		}
	}

	if file != nil {
		attach(payload, file)
	}

	return nil
}

func (router *Router[E, C, U]) attachCreate(payload any, file *requestutil.UploadedFile) {
	if router.cfg.File.AttachCreate != nil {
		router.cfg.File.AttachCreate(payload.(*C), file)
	}
}

func (router *Router[E, C, U]) attachUpdate(payload any, file *requestutil.UploadedFile) {
	if router.cfg.File.AttachUpdate != nil {
		router.cfg.File.AttachUpdate(payload.(*U), file)
	}
}

// CheckExtension enforces the upload allow-list.
func CheckExtension(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	if _, allowed := allowedExtensions[ext]; !allowed {
		return ErrBadExtension
	}
	return nil
}

// translate maps storage sentinels to localized client errors.
func (router *Router[E, C, U]) translate(err error) error {
	switch {
	case errors.Is(err, dberr.ErrNotFound):
		return apperr.NotFound(router.cfg.Naming.NotFound)
	case errors.Is(err, dberr.ErrUniqueViolation):
		return apperr.Conflict(router.cfg.Naming.Conflict)
	default:
		return err
	}
}

// # Cache Helpers

// cacheJSON stores the marshalled value best-effort; encoding failures are
// ignored because the same value is about to be encoded for the response.
func (router *Router[E, C, U]) cacheJSON(request *http.Request, key string, value any) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return
	}
	router.cfg.Cache.Set(request.Context(), key, encoded)
}

func writeCachedJSON(writer http.ResponseWriter, payload []byte) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write(payload)
}

func isMultipart(request *http.Request) bool {
	return strings.HasPrefix(request.Header.Get("Content-Type"), "multipart/form-data")
}
