// Copyright (c) 2026 Raduga Center. All rights reserved.

/*
Package crud provides a generic HTTP router factory for record resources.

Every record collection in the API (patients, documents, users, roles)
exposes the same route shape:

  - GET    /               list all records
  - POST   /               create (JSON, or multipart data+file)
  - GET    /{id}           read one, cached, soft 206 on miss
  - PUT    /{id}           update (JSON, or multipart data+file)
  - DELETE /{id}           delete with a localized outcome message
  - GET    /{id}/download  stream the binary field (file-enabled only)

Instead of four hand-written handler sets, each resource package builds a
[Config] with its entity types, service, role allow-lists, and localized
messages, and mounts the router produced by [New]. Type parameters keep the
request/response shapes fully typed end to end.
*/
package crud

import (
	"context"

	"github.com/raduga-center/raduga/internal/auth"
	"github.com/raduga-center/raduga/internal/platform/cache"
	requestutil "github.com/raduga-center/raduga/internal/platform/request"
)

// Service is the persistence contract the router drives.
// E is the read entity, C the create payload, U the update payload.
//
// Implementations return dberr sentinels (ErrNotFound, ErrUniqueViolation)
// so the router can translate them into localized HTTP errors.
type Service[E any, C any, U any] interface {
	ListAll(ctx context.Context) ([]E, error)
	GetByID(ctx context.Context, id int64) (*E, error)
	Create(ctx context.Context, input C) (*E, error)
	Update(ctx context.Context, id int64, input U) (*E, error)
	Delete(ctx context.Context, id int64) error
}

// Naming carries the localized, per-resource message strings.
// The UI shows these verbatim, so they are written in Russian with the
// resource name already declined into the right grammatical form.
type Naming struct {

	// NotFound: "Пациент не найден"
	NotFound string

	// Deleted: "Пациент успешно удален"
	Deleted string

	// Conflict: "Пользователь с таким логином уже существует"
	Conflict string
}

// Roles holds the per-operation role allow-lists.
// An empty list admits any authenticated active account.
type Roles struct {
	List     []int64
	Get      []int64
	Create   []int64
	Update   []int64
	Delete   []int64
	Download []int64
}

// FileConfig enables the multipart create/update variants and the
// download route for resources that carry a binary field.
type FileConfig[E any, C any, U any] struct {

	// Field is the multipart form field holding the file ("file").
	// The JSON payload travels next to it in the "data" field.
	Field string

	// AttachCreate copies the uploaded bytes and name into the create payload.
	AttachCreate func(payload *C, file *requestutil.UploadedFile)

	// AttachUpdate copies the uploaded bytes and name into the update payload.
	AttachUpdate func(payload *U, file *requestutil.UploadedFile)

	// Download extracts the stream parameters from an entity.
	Download func(entity *E) (name string, contentType string, data []byte)
}

// Config assembles everything a resource router needs.
type Config[E any, C any, U any] struct {

	// Prefix is the route prefix without slashes ("patients").
	// It doubles as the cache key namespace.
	Prefix string

	Service Service[E, C, U]
	Gate    *auth.Gate
	Cache   *cache.Store
	Naming  Naming
	Roles   Roles

	// File is nil for plain JSON resources.
	File *FileConfig[E, C, U]
}
