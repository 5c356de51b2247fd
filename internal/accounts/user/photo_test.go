// Copyright (c) 2026 Raduga Center. All rights reserved.

package user_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raduga-center/raduga/internal/accounts/user"
	"github.com/raduga-center/raduga/internal/platform/apperr"
	requestutil "github.com/raduga-center/raduga/internal/platform/request"
)

func newPhotoFixture(t *testing.T) (*user.PhotoService, *fakeRepository, int64, string) {
	t.Helper()

	repo := newFakeRepository()
	service := user.NewService(repo, slog.Default())

	created, err := service.Create(context.Background(), validInput)
	require.NoError(t, err)

	dir := t.TempDir()
	photos, err := user.NewPhotoService(repo, slog.Default(), dir)
	require.NoError(t, err)

	return photos, repo, created.ID, dir
}

/*
TestPhotoService_UploadAndReplace verifies disk storage under a random
name, the database pointer, and the cleanup of the previous file.
*/
func TestPhotoService_UploadAndReplace(t *testing.T) {
	photos, repo, id, dir := newPhotoFixture(t)

	first, err := photos.Upload(context.Background(), id, &requestutil.UploadedFile{
		Name: "портрет.jpg",
		Data: []byte("jpeg-bytes"),
	})
	require.NoError(t, err)
	require.NotNil(t, first.PhotoURL)

	// The stored name is a generated one, never the client's.
	assert.NotContains(t, *first.PhotoURL, "портрет")
	assert.Equal(t, ".jpg", filepath.Ext(*first.PhotoURL))

	content, err := os.ReadFile(filepath.Join(dir, *first.PhotoURL))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), content)

	// A second upload replaces both the row pointer and the file.
	second, err := photos.Upload(context.Background(), id, &requestutil.UploadedFile{
		Name: "new.png",
		Data: []byte("png-bytes"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, *first.PhotoURL, *second.PhotoURL)
	assert.NoFileExists(t, filepath.Join(dir, *first.PhotoURL))
	assert.Equal(t, second.PhotoURL, repo.users[id].PhotoURL)
}

/*
TestPhotoService_RejectsNonImages verifies the 415 for anything outside the
jpeg/png allow-list, documents included.
*/
func TestPhotoService_RejectsNonImages(t *testing.T) {
	photos, _, id, dir := newPhotoFixture(t)

	for _, name := range []string{"document.pdf", "video.mp4", "script.sh"} {
		_, err := photos.Upload(context.Background(), id, &requestutil.UploadedFile{
			Name: name,
			Data: []byte("payload"),
		})
		require.Error(t, err, "file %s", name)
		assert.Equal(t, 415, apperr.As(err).HTTPStatus, "file %s", name)
	}

	// Nothing reached the disk.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

/*
TestPhotoService_Delete verifies file removal, the cleared pointer, and
that deleting an absent photo is a no-op returning the account unchanged.
*/
func TestPhotoService_Delete(t *testing.T) {
	photos, repo, id, dir := newPhotoFixture(t)

	uploaded, err := photos.Upload(context.Background(), id, &requestutil.UploadedFile{
		Name: "портрет.jpg",
		Data: []byte("jpeg-bytes"),
	})
	require.NoError(t, err)

	account, err := photos.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, account.PhotoURL)
	assert.Nil(t, repo.users[id].PhotoURL)
	assert.NoFileExists(t, filepath.Join(dir, *uploaded.PhotoURL))

	// A second delete has nothing to remove and still answers with the account.
	account, err = photos.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, account.ID)
	assert.Nil(t, account.PhotoURL)

	// An unknown account is still a 404.
	_, err = photos.Delete(context.Background(), 9999)
	require.Error(t, err)
	assert.Equal(t, 404, apperr.As(err).HTTPStatus)
}
