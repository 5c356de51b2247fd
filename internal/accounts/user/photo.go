// Copyright (c) 2026 Raduga Center. All rights reserved.

package user

import (
	"context"
	"errors"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/raduga-center/raduga/internal/platform/apperr"
	"github.com/raduga-center/raduga/internal/platform/dberr"
	requestutil "github.com/raduga-center/raduga/internal/platform/request"
	"github.com/raduga-center/raduga/pkg/pointer"
)

// photoExtensions is the image allow-list for profile photos.
var photoExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// ErrBadImage rejects profile photos outside the image allow-list.
var ErrBadImage = apperr.UnsupportedMedia("Допустимы только изображения JPEG и PNG")

// PhotoService stores staff profile photos on local disk.
//
// Files are written under the configured uploads directory with a random
// UUID name; the original file name never reaches the filesystem.
type PhotoService struct {
	repo   Repository
	logger *slog.Logger
	dir    string
}

// NewPhotoService creates the photo service and its uploads directory.
func NewPhotoService(repo Repository, logger *slog.Logger, dir string) (*PhotoService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperr.Internal(err)
	}
	return &PhotoService{repo: repo, logger: logger, dir: dir}, nil
}

// Upload replaces the account's profile photo.
func (service *PhotoService) Upload(ctx context.Context, id int64, file *requestutil.UploadedFile) (*User, error) {

	ext := strings.ToLower(filepath.Ext(file.Name))
	if _, allowed := photoExtensions[ext]; !allowed {
		return nil, ErrBadImage
	}

	account, err := service.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Пользователь не найден")
		}
		return nil, err
	}

	filename := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(service.dir, filename), file.Data, 0o644); err != nil {
		return nil, apperr.Internal(err)
	}

	if err := service.repo.SetPhoto(ctx, id, pointer.To(filename)); err != nil {
		return nil, err
	}

	// The previous file is orphaned once the row points elsewhere.
	service.removeFile(account.PhotoURL)

	account.PhotoURL = pointer.To(filename)
	service.logger.Info("user_photo_uploaded", slog.Int64("user_id", id))
	return account, nil
}

// Open resolves the photo's on-disk path and content type.
func (service *PhotoService) Open(ctx context.Context, id int64) (string, string, error) {

	account, err := service.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return "", "", apperr.NotFound("Пользователь не найден")
		}
		return "", "", err
	}

	if account.PhotoURL == nil {
		return "", "", apperr.NotFound("Фотография не найдена")
	}

	path := filepath.Join(service.dir, *account.PhotoURL)
	if _, err := os.Stat(path); err != nil {
		return "", "", apperr.NotFound("Фотография не найдена")
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return path, contentType, nil
}

// Delete removes the photo file, clears the account's photo field, and
// returns the updated account. Deleting an account that has no photo is
// a no-op, not an error.
func (service *PhotoService) Delete(ctx context.Context, id int64) (*User, error) {

	account, err := service.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Пользователь не найден")
		}
		return nil, err
	}

	if account.PhotoURL == nil {
		return account, nil
	}

	if err := service.repo.SetPhoto(ctx, id, nil); err != nil {
		return nil, err
	}

	service.removeFile(account.PhotoURL)
	account.PhotoURL = nil
	service.logger.Info("user_photo_deleted", slog.Int64("user_id", id))
	return account, nil
}

// removeFile deletes a stored photo best-effort; a stale file is not worth
// failing the request over.
func (service *PhotoService) removeFile(filename *string) {
	if filename == nil || *filename == "" {
		return
	}

	if err := os.Remove(filepath.Join(service.dir, *filename)); err != nil && !os.IsNotExist(err) {
		service.logger.Warn("user_photo_cleanup_failed",
			slog.String("filename", *filename),
			slog.String("error", err.Error()),
		)
	}
}
