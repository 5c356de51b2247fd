// Copyright (c) 2026 Raduga Center. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns (JSON bodies, form encoding, multipart uploads),
ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/raduga-center/raduga/internal/platform/apperr"
	"github.com/raduga-center/raduga/internal/platform/validate"
)

// maxMultipartMemory bounds the in-memory portion of multipart parsing.
// Larger uploads (therapy session videos) spill to temp files.
const maxMultipartMemory = 32 << 20

// DecodeJSON reads the request body and decodes it into the target structure.
//
// Returns [validate.ErrInvalidJSON] if decoding fails.
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// ID parses the numeric {id} URL parameter.
//
// Returns a 400 [apperr.AppError] on non-numeric or non-positive input.
func ID(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.BadRequest("Некорректный идентификатор")
	}
	return id, nil
}

// UploadedFile is one file part extracted from a multipart request.
type UploadedFile struct {
	// Name is the client-supplied filename.
	Name string
	// Data is the complete file content.
	Data []byte
}

// Multipart extracts the standard upload shape used across the API:
// an optional file part plus an optional JSON payload in the "data" field.
//
// # Parameters
//   - fileField: name of the file part (usually "file" or "photo").
//
// # Returns
//   - file: nil when no file part was sent.
//   - payload: the raw "data" form value ("" when absent).
func Multipart(request *http.Request, fileField string) (file *UploadedFile, payload string, err error) {
	if err := request.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, "", apperr.BadRequest("Некорректное multipart-тело запроса")
	}

	payload = request.FormValue("data")

	part, header, err := request.FormFile(fileField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, payload, nil
		}
		return nil, "", apperr.BadRequest("Некорректное multipart-тело запроса")
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}

	return &UploadedFile{Name: header.Filename, Data: data}, payload, nil
}
