// Copyright (c) 2026 Raduga Center. All rights reserved.

package user_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raduga-center/raduga/internal/accounts/user"
	"github.com/raduga-center/raduga/internal/platform/apperr"
	"github.com/raduga-center/raduga/internal/platform/dberr"
	"github.com/raduga-center/raduga/internal/platform/sec"
	"github.com/raduga-center/raduga/pkg/pointer"
)

// fakeRepository keeps accounts in memory.
type fakeRepository struct {
	users  map[int64]*user.User
	nextID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: map[int64]*user.User{}, nextID: 1}
}

func (repo *fakeRepository) ListUsers(context.Context) ([]user.User, error) {
	var all []user.User
	for _, stored := range repo.users {
		all = append(all, *stored)
	}
	return all, nil
}

func (repo *fakeRepository) GetUser(_ context.Context, id int64) (*user.User, error) {
	stored, found := repo.users[id]
	if !found {
		return nil, dberr.ErrNotFound
	}
	copied := *stored
	return &copied, nil
}

func (repo *fakeRepository) CreateUser(_ context.Context, record *user.User) error {
	for _, stored := range repo.users {
		if stored.Login == record.Login {
			return dberr.ErrUniqueViolation
		}
	}
	record.ID = repo.nextID
	repo.nextID++
	copied := *record
	repo.users[record.ID] = &copied
	return nil
}

func (repo *fakeRepository) UpdateUser(_ context.Context, record *user.User, replacePassword bool) error {
	stored, found := repo.users[record.ID]
	if !found {
		return dberr.ErrNotFound
	}
	if !replacePassword {
		record.HashedPassword = stored.HashedPassword
	}
	record.PhotoURL = stored.PhotoURL
	copied := *record
	repo.users[record.ID] = &copied
	return nil
}

func (repo *fakeRepository) DeleteUser(_ context.Context, id int64) error {
	if _, found := repo.users[id]; !found {
		return dberr.ErrNotFound
	}
	delete(repo.users, id)
	return nil
}

func (repo *fakeRepository) SetPhoto(_ context.Context, id int64, filename *string) error {
	stored, found := repo.users[id]
	if !found {
		return dberr.ErrNotFound
	}
	stored.PhotoURL = filename
	return nil
}

var validInput = user.CreateInput{
	FIO:      "Смирнова Ольга Викторовна",
	Login:    "o.smirnova",
	Password: "sekret-123",
	RoleID:   2,
}

/*
TestService_CreateHashesPassword verifies that only a bcrypt hash reaches
storage and that the plaintext is never echoed in JSON.
*/
func TestService_CreateHashesPassword(t *testing.T) {
	repo := newFakeRepository()
	service := user.NewService(repo, slog.Default())

	created, err := service.Create(context.Background(), validInput)
	require.NoError(t, err)

	stored := repo.users[created.ID]
	require.NotNil(t, stored)

	// 1. The stored value is a verifiable hash, not the plaintext
	assert.NotEqual(t, "sekret-123", stored.HashedPassword)
	assert.True(t, sec.CheckPasswordHash("sekret-123", stored.HashedPassword))

	// 2. Accounts are active by default
	assert.True(t, created.Active)

	// 3. No password material in the serialized entity
	encoded, err := json.Marshal(created)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "sekret-123")
	assert.NotContains(t, string(encoded), stored.HashedPassword)
	assert.NotContains(t, string(encoded), "password")
}

/*
TestService_UpdateKeepsHashWithoutPassword verifies that an empty password
on update leaves the stored hash untouched.
*/
func TestService_UpdateKeepsHashWithoutPassword(t *testing.T) {
	repo := newFakeRepository()
	service := user.NewService(repo, slog.Default())

	created, err := service.Create(context.Background(), validInput)
	require.NoError(t, err)
	originalHash := repo.users[created.ID].HashedPassword

	_, err = service.Update(context.Background(), created.ID, user.UpdateInput{
		RoleID: pointer.To(int64(3)),
	})
	require.NoError(t, err)

	assert.Equal(t, originalHash, repo.users[created.ID].HashedPassword)
	assert.Equal(t, int64(3), repo.users[created.ID].RoleID)
}

/*
TestService_UpdateIsPartial verifies that an update only touches the fields
the payload carried. In particular, an edit that never mentions active must
not re-activate a deactivated account, and an omitted email keeps the
stored address.
*/
func TestService_UpdateIsPartial(t *testing.T) {
	repo := newFakeRepository()
	service := user.NewService(repo, slog.Default())

	input := validInput
	input.Email = pointer.To("o.smirnova@raduga-center.ru")
	created, err := service.Create(context.Background(), input)
	require.NoError(t, err)

	// 1. Deactivate the account out of band
	repo.users[created.ID].Active = false

	// 2. Rename without mentioning active or email
	updated, err := service.Update(context.Background(), created.ID, user.UpdateInput{
		FIO: pointer.To("Кузнецова Ольга Викторовна"),
	})
	require.NoError(t, err)

	assert.False(t, updated.Active)
	assert.False(t, repo.users[created.ID].Active)
	assert.Equal(t, "Кузнецова Ольга Викторовна", repo.users[created.ID].FIO)
	assert.Equal(t, "o.smirnova", repo.users[created.ID].Login)
	require.NotNil(t, repo.users[created.ID].Email)
	assert.Equal(t, "o.smirnova@raduga-center.ru", *repo.users[created.ID].Email)

	// 3. An explicit active flag still switches the account back on
	updated, err = service.Update(context.Background(), created.ID, user.UpdateInput{
		Active: pointer.To(true),
	})
	require.NoError(t, err)
	assert.True(t, updated.Active)
	assert.True(t, repo.users[created.ID].Active)
}

/*
TestService_UpdateMissing verifies the not-found sentinel surfaces unchanged.
*/
func TestService_UpdateMissing(t *testing.T) {
	service := user.NewService(newFakeRepository(), slog.Default())

	_, err := service.Update(context.Background(), 404, user.UpdateInput{
		FIO: pointer.To("Кузнецова Ольга Викторовна"),
	})
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}

/*
TestService_CreateValidation covers the field bounds.
*/
func TestService_CreateValidation(t *testing.T) {
	service := user.NewService(newFakeRepository(), slog.Default())

	testCases := []struct {
		name   string
		mutate func(input *user.CreateInput)
	}{
		{"fio too short", func(input *user.CreateInput) { input.FIO = "Смирнова О." }},
		{"login too short", func(input *user.CreateInput) { input.Login = "ab" }},
		{"password too short", func(input *user.CreateInput) { input.Password = "123" }},
		{"role missing", func(input *user.CreateInput) { input.RoleID = 0 }},
		{"bad email", func(input *user.CreateInput) { input.Email = pointer.To("not-an-email") }},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			input := validInput
			testCase.mutate(&input)

			_, err := service.Create(context.Background(), input)
			require.Error(t, err)
			assert.Equal(t, 422, apperr.As(err).HTTPStatus)
		})
	}
}

/*
TestService_DuplicateLogin verifies the unique-violation sentinel surfaces
unchanged for the router to translate.
*/
func TestService_DuplicateLogin(t *testing.T) {
	service := user.NewService(newFakeRepository(), slog.Default())

	_, err := service.Create(context.Background(), validInput)
	require.NoError(t, err)

	_, err = service.Create(context.Background(), validInput)
	assert.ErrorIs(t, err, dberr.ErrUniqueViolation)
}
