// Copyright (c) 2026 Raduga Center. All rights reserved.

package patient

import "context"

// Repository is the persistence contract for patient records.
// Implementations return dberr sentinels on missing rows.
type Repository interface {
	ListPatients(ctx context.Context) ([]Patient, error)
	GetPatient(ctx context.Context, id int64) (*Patient, error)
	CreatePatient(ctx context.Context, patient *Patient) error
	UpdatePatient(ctx context.Context, patient *Patient) error
	DeletePatient(ctx context.Context, id int64) error
}
