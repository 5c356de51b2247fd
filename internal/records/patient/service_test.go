// Copyright (c) 2026 Raduga Center. All rights reserved.

package patient_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raduga-center/raduga/internal/platform/apperr"
	"github.com/raduga-center/raduga/internal/platform/dberr"
	"github.com/raduga-center/raduga/internal/records/patient"
	"github.com/raduga-center/raduga/pkg/dateonly"
)

// fakeRepository keeps patients in memory.
type fakeRepository struct {
	patients map[int64]*patient.Patient
	nextID   int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{patients: map[int64]*patient.Patient{}, nextID: 1}
}

func (repo *fakeRepository) ListPatients(context.Context) ([]patient.Patient, error) {
	var all []patient.Patient
	for _, stored := range repo.patients {
		all = append(all, *stored)
	}
	return all, nil
}

func (repo *fakeRepository) GetPatient(_ context.Context, id int64) (*patient.Patient, error) {
	stored, found := repo.patients[id]
	if !found {
		return nil, dberr.ErrNotFound
	}
	copied := *stored
	return &copied, nil
}

func (repo *fakeRepository) CreatePatient(_ context.Context, record *patient.Patient) error {
	record.ID = repo.nextID
	repo.nextID++
	copied := *record
	repo.patients[record.ID] = &copied
	return nil
}

func (repo *fakeRepository) UpdatePatient(_ context.Context, record *patient.Patient) error {
	if _, found := repo.patients[record.ID]; !found {
		return dberr.ErrNotFound
	}
	copied := *record
	repo.patients[record.ID] = &copied
	return nil
}

func (repo *fakeRepository) DeletePatient(_ context.Context, id int64) error {
	if _, found := repo.patients[id]; !found {
		return dberr.ErrNotFound
	}
	delete(repo.patients, id)
	return nil
}

func newService(repo patient.Repository) *patient.Service {
	return patient.NewServiceAt(repo, slog.Default(), func() time.Time {
		return time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)
	})
}

/*
TestService_CreateDerivesAge verifies the birthday-aware derived age on the
returned record.
*/
func TestService_CreateDerivesAge(t *testing.T) {
	service := newService(newFakeRepository())

	created, err := service.Create(context.Background(), patient.CreateInput{
		FIO:         "Иванов Петр Сергеевич",
		DateOfBirth: dateonly.New(2018, time.September, 2),
	})
	require.NoError(t, err)

	// The 2026 birthday has not passed yet on September 1.
	assert.Equal(t, 7, created.Age)
	assert.NotZero(t, created.ID)
}

/*
TestService_Validation covers the fio length bounds and the required birth
date.
*/
func TestService_Validation(t *testing.T) {
	service := newService(newFakeRepository())

	testCases := []struct {
		name  string
		input patient.CreateInput
	}{
		{"fio too short", patient.CreateInput{FIO: "Иванов", DateOfBirth: dateonly.New(2018, time.May, 1)}},
		{"fio empty", patient.CreateInput{DateOfBirth: dateonly.New(2018, time.May, 1)}},
		{"birth date missing", patient.CreateInput{FIO: "Иванов Петр Сергеевич"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), testCase.input)
			require.Error(t, err)
			assert.Equal(t, 422, apperr.As(err).HTTPStatus)
		})
	}
}

/*
TestService_UpdateMissing verifies the sentinel pass-through for unknown ids.
*/
func TestService_UpdateMissing(t *testing.T) {
	service := newService(newFakeRepository())

	_, err := service.Update(context.Background(), 99, patient.UpdateInput{
		FIO:         "Иванов Петр Сергеевич",
		DateOfBirth: dateonly.New(2018, time.May, 1),
	})
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}
