// Copyright (c) 2026 Raduga Center. All rights reserved.

package role

import (
	"github.com/go-chi/chi/v5"

	"github.com/raduga-center/raduga/internal/auth"
	"github.com/raduga-center/raduga/internal/crud"
	"github.com/raduga-center/raduga/internal/platform/cache"
	"github.com/raduga-center/raduga/internal/platform/constants"
)

// Routes mounts the role dictionary API. Only administrators manage the
// ladder; reading a single role is open to all tiers so the UI can label
// accounts.
func Routes(service *Service, gate *auth.Gate, store *cache.Store) chi.Router {

	allStaff := []int64{
		constants.RoleAdministrator,
		constants.RoleMethodologist,
		constants.RoleSpecialist,
	}
	adminOnly := []int64{constants.RoleAdministrator}

	router := crud.New(crud.Config[Role, CreateInput, UpdateInput]{
		Prefix:  "roles",
		Service: service,
		Gate:    gate,
		Cache:   store,
		Naming: crud.Naming{
			NotFound: "Роль не найдена",
			Deleted:  "Роль успешно удалена",
			Conflict: "Роль с таким названием уже существует",
		},
		Roles: crud.Roles{
			List:   adminOnly,
			Get:    allStaff,
			Create: adminOnly,
			Update: adminOnly,
			Delete: adminOnly,
		},
	})

	return router.Routes()
}
