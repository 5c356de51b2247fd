// Copyright (c) 2026 Raduga Center. All rights reserved.

package document

import (
	"github.com/go-chi/chi/v5"

	"github.com/raduga-center/raduga/internal/auth"
	"github.com/raduga-center/raduga/internal/crud"
	"github.com/raduga-center/raduga/internal/platform/cache"
	"github.com/raduga-center/raduga/internal/platform/constants"
	requestutil "github.com/raduga-center/raduga/internal/platform/request"
)

// Routes mounts the document API, including the multipart upload variants
// and the download route. All three staff tiers may manage documents.
func Routes(service *Service, gate *auth.Gate, store *cache.Store) chi.Router {

	allStaff := []int64{
		constants.RoleAdministrator,
		constants.RoleMethodologist,
		constants.RoleSpecialist,
	}

	router := crud.New(crud.Config[Document, CreateInput, UpdateInput]{
		Prefix:  "documents",
		Service: service,
		Gate:    gate,
		Cache:   store,
		Naming: crud.Naming{
			NotFound: "Документ не найден",
			Deleted:  "Документ успешно удален",
			Conflict: "Документ с таким названием уже существует",
		},
		Roles: crud.Roles{
			List:     allStaff,
			Get:      allStaff,
			Create:   allStaff,
			Update:   allStaff,
			Delete:   allStaff,
			Download: allStaff,
		},
		File: &crud.FileConfig[Document, CreateInput, UpdateInput]{
			Field: "file",
			AttachCreate: func(payload *CreateInput, file *requestutil.UploadedFile) {
				payload.Data = file.Data
				payload.FileName = file.Name
			},
			AttachUpdate: func(payload *UpdateInput, file *requestutil.UploadedFile) {
				payload.Data = file.Data
				payload.FileName = file.Name
			},
			Download: func(entity *Document) (string, string, []byte) {
				return entity.Name, entity.ContentType(), entity.Data
			},
		},
	})

	return router.Routes()
}
