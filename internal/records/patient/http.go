// Copyright (c) 2026 Raduga Center. All rights reserved.

package patient

import (
	"github.com/go-chi/chi/v5"

	"github.com/raduga-center/raduga/internal/auth"
	"github.com/raduga-center/raduga/internal/crud"
	"github.com/raduga-center/raduga/internal/platform/cache"
	"github.com/raduga-center/raduga/internal/platform/constants"
)

// Routes mounts the patient record API. All three staff tiers may manage
// patient records.
func Routes(service *Service, gate *auth.Gate, store *cache.Store) chi.Router {

	allStaff := []int64{
		constants.RoleAdministrator,
		constants.RoleMethodologist,
		constants.RoleSpecialist,
	}

	router := crud.New(crud.Config[Patient, CreateInput, UpdateInput]{
		Prefix:  "patients",
		Service: service,
		Gate:    gate,
		Cache:   store,
		Naming: crud.Naming{
			NotFound: "Пациент не найден",
			Deleted:  "Пациент успешно удален",
			Conflict: "Пациент с такими данными уже существует",
		},
		Roles: crud.Roles{
			List:   allStaff,
			Get:    allStaff,
			Create: allStaff,
			Update: allStaff,
			Delete: allStaff,
		},
	})

	return router.Routes()
}
