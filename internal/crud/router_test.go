// Copyright (c) 2026 Raduga Center. All rights reserved.

package crud_test

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raduga-center/raduga/internal/auth"
	"github.com/raduga-center/raduga/internal/crud"
	"github.com/raduga-center/raduga/internal/platform/constants"
	"github.com/raduga-center/raduga/internal/platform/dberr"
	requestutil "github.com/raduga-center/raduga/internal/platform/request"
	"github.com/raduga-center/raduga/internal/platform/sec"
)

// record is a minimal file-carrying resource for exercising the router.
type record struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	FileName string `json:"file_name"`
	Data     []byte `json:"-"`
}

type recordInput struct {
	Title    string `json:"title"`
	FileName string `json:"-"`
	Data     []byte `json:"-"`
}

// fakeService keeps records in memory and returns dberr sentinels the way
// the Postgres stores do.
type fakeService struct {
	records map[int64]*record
	nextID  int64
}

func newFakeService() *fakeService {
	return &fakeService{records: map[int64]*record{}, nextID: 1}
}

func (service *fakeService) ListAll(context.Context) ([]record, error) {
	var all []record
	for _, stored := range service.records {
		all = append(all, *stored)
	}
	return all, nil
}

func (service *fakeService) GetByID(_ context.Context, id int64) (*record, error) {
	stored, found := service.records[id]
	if !found {
		return nil, dberr.ErrNotFound
	}
	copied := *stored
	return &copied, nil
}

func (service *fakeService) Create(_ context.Context, input recordInput) (*record, error) {
	for _, stored := range service.records {
		if stored.Title == input.Title {
			return nil, dberr.ErrUniqueViolation
		}
	}

	created := &record{
		ID:       service.nextID,
		Title:    input.Title,
		FileName: input.FileName,
		Data:     input.Data,
	}
	service.records[created.ID] = created
	service.nextID++
	return created, nil
}

func (service *fakeService) Update(_ context.Context, id int64, input recordInput) (*record, error) {
	stored, found := service.records[id]
	if !found {
		return nil, dberr.ErrNotFound
	}

	stored.Title = input.Title
	if len(input.Data) > 0 {
		stored.Data = input.Data
		stored.FileName = input.FileName
	}
	copied := *stored
	return &copied, nil
}

func (service *fakeService) Delete(_ context.Context, id int64) error {
	if _, found := service.records[id]; !found {
		return dberr.ErrNotFound
	}
	delete(service.records, id)
	return nil
}

// principalStore serves two fixed accounts for the gate.
type principalStore struct{}

func (principalStore) FindByLogin(_ context.Context, login string) (*auth.Principal, error) {
	switch login {
	case "admin":
		return &auth.Principal{ID: 1, Login: "admin", RoleID: constants.RoleAdministrator, Active: true}, nil
	case "specialist":
		return &auth.Principal{ID: 3, Login: "specialist", RoleID: constants.RoleSpecialist, Active: true}, nil
	}
	return nil, dberr.ErrNotFound
}

type fixture struct {
	service *fakeService
	handler http.Handler
	tokens  *sec.TokenService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tokens := sec.NewTokenServiceFromKeys(key, constants.AuthIssuer)

	service := newFakeService()
	allStaff := []int64{constants.RoleAdministrator, constants.RoleMethodologist, constants.RoleSpecialist}

	router := crud.New(crud.Config[record, recordInput, recordInput]{
		Prefix:  "records",
		Service: service,
		Gate:    auth.NewGate(tokens, principalStore{}),
		Cache:   nil,
		Naming: crud.Naming{
			NotFound: "Запись не найдена",
			Deleted:  "Запись успешно удалена",
			Conflict: "Запись с таким названием уже существует",
		},
		Roles: crud.Roles{
			List:     allStaff,
			Get:      allStaff,
			Create:   []int64{constants.RoleAdministrator},
			Update:   allStaff,
			Delete:   allStaff,
			Download: allStaff,
		},
		File: &crud.FileConfig[record, recordInput, recordInput]{
			Field: "file",
			AttachCreate: func(payload *recordInput, file *requestutil.UploadedFile) {
				payload.Data = file.Data
				payload.FileName = file.Name
			},
			AttachUpdate: func(payload *recordInput, file *requestutil.UploadedFile) {
				payload.Data = file.Data
				payload.FileName = file.Name
			},
			Download: func(entity *record) (string, string, []byte) {
				return entity.FileName, "application/pdf", entity.Data
			},
		},
	})

	return &fixture{service: service, handler: router.Routes(), tokens: tokens}
}

func (fixture *fixture) token(t *testing.T, login string, roleID int64) string {
	t.Helper()
	token, err := fixture.tokens.Encode(login, roleID, roleID, constants.TokenTypeAccess, time.Minute)
	require.NoError(t, err)
	return token
}

func (fixture *fixture) do(t *testing.T, request *http.Request, login string, roleID int64) *httptest.ResponseRecorder {
	t.Helper()
	request.Header.Set("Authorization", "Bearer "+fixture.token(t, login, roleID))
	recorder := httptest.NewRecorder()
	fixture.handler.ServeHTTP(recorder, request)
	return recorder
}

func multipartBody(t *testing.T, payload any, fileName string, fileData []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	encoded, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("data", string(encoded)))

	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(fileData)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

/*
TestRouter_GetMissIsPartialContent pins the soft-miss contract: a GET for an
unknown id answers 206, not 404. The frontend distinguishes an empty record
card from a dead link by exactly this status.
*/
func TestRouter_GetMissIsPartialContent(t *testing.T) {
	fixture := newFixture(t)

	request := httptest.NewRequest(http.MethodGet, "/999", nil)
	response := fixture.do(t, request, "admin", constants.RoleAdministrator)

	assert.Equal(t, http.StatusPartialContent, response.Code)
	assert.Contains(t, response.Body.String(), "Запись не найдена")
}

/*
TestRouter_ListEmpty verifies that an empty collection is a JSON array, not
an error and not null.
*/
func TestRouter_ListEmpty(t *testing.T) {
	fixture := newFixture(t)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	response := fixture.do(t, request, "specialist", constants.RoleSpecialist)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.JSONEq(t, "[]", response.Body.String())
}

/*
TestRouter_CreateForbiddenForSpecialist verifies the per-operation role
allow-list: role 3 may read but not create on this configuration.
*/
func TestRouter_CreateForbiddenForSpecialist(t *testing.T) {
	fixture := newFixture(t)

	body, contentType := multipartBody(t, recordInput{Title: "Анамнез"}, "scan.pdf", []byte("%PDF"))
	request := httptest.NewRequest(http.MethodPost, "/", body)
	request.Header.Set("Content-Type", contentType)

	response := fixture.do(t, request, "specialist", constants.RoleSpecialist)

	assert.Equal(t, http.StatusForbidden, response.Code)
	assert.Empty(t, fixture.service.records)
}

/*
TestRouter_CreateMultipart verifies the happy path: payload decoded from the
"data" field, file bytes attached, 201 with the stored entity.
*/
func TestRouter_CreateMultipart(t *testing.T) {
	fixture := newFixture(t)

	body, contentType := multipartBody(t, recordInput{Title: "Анамнез"}, "scan.pdf", []byte("%PDF"))
	request := httptest.NewRequest(http.MethodPost, "/", body)
	request.Header.Set("Content-Type", contentType)

	response := fixture.do(t, request, "admin", constants.RoleAdministrator)

	require.Equal(t, http.StatusCreated, response.Code)

	var created record
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &created))
	assert.Equal(t, "Анамнез", created.Title)

	stored := fixture.service.records[created.ID]
	require.NotNil(t, stored)
	assert.Equal(t, []byte("%PDF"), stored.Data)
	assert.Equal(t, "scan.pdf", stored.FileName)
}

/*
TestRouter_CreateRejectsBadExtension verifies that the allow-list check runs
before anything touches the service.
*/
func TestRouter_CreateRejectsBadExtension(t *testing.T) {
	fixture := newFixture(t)

	body, contentType := multipartBody(t, recordInput{Title: "Вирус"}, "malware.exe", []byte{0x4D, 0x5A})
	request := httptest.NewRequest(http.MethodPost, "/", body)
	request.Header.Set("Content-Type", contentType)

	response := fixture.do(t, request, "admin", constants.RoleAdministrator)

	assert.Equal(t, http.StatusBadRequest, response.Code)
	assert.Contains(t, response.Body.String(), "Недопустимый формат файла")
	assert.Empty(t, fixture.service.records)
}

/*
TestRouter_CreateConflict verifies the unique-violation translation to a
localized 409.
*/
func TestRouter_CreateConflict(t *testing.T) {
	fixture := newFixture(t)
	seed(t, fixture, "Анамнез", "scan.pdf")

	body, contentType := multipartBody(t, recordInput{Title: "Анамнез"}, "scan2.pdf", []byte("%PDF"))
	request := httptest.NewRequest(http.MethodPost, "/", body)
	request.Header.Set("Content-Type", contentType)

	response := fixture.do(t, request, "admin", constants.RoleAdministrator)

	assert.Equal(t, http.StatusConflict, response.Code)
	assert.Contains(t, response.Body.String(), "уже существует")
}

/*
TestRouter_DownloadMissing verifies a hard 404 with no file bytes in the body.
*/
func TestRouter_DownloadMissing(t *testing.T) {
	fixture := newFixture(t)

	request := httptest.NewRequest(http.MethodGet, "/42/download", nil)
	response := fixture.do(t, request, "admin", constants.RoleAdministrator)

	assert.Equal(t, http.StatusNotFound, response.Code)
	assert.Empty(t, response.Header().Get("Content-Disposition"))
	assert.Contains(t, response.Body.String(), "Запись не найдена")
}

/*
TestRouter_Download verifies the streamed bytes and the escaped
Content-Disposition header.
*/
func TestRouter_Download(t *testing.T) {
	fixture := newFixture(t)
	seed(t, fixture, "Анамнез", "заключение.pdf")

	request := httptest.NewRequest(http.MethodGet, "/1/download", nil)
	response := fixture.do(t, request, "specialist", constants.RoleSpecialist)

	require.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, []byte("%PDF"), response.Body.Bytes())
	assert.Equal(t, "application/pdf", response.Header().Get("Content-Type"))

	disposition := response.Header().Get("Content-Disposition")
	assert.Contains(t, disposition, "attachment;")
	assert.Contains(t, disposition, "filename*=UTF-8''")
}

/*
TestRouter_Delete verifies the localized outcome message and the 404 for a
second delete of the same id.
*/
func TestRouter_Delete(t *testing.T) {
	fixture := newFixture(t)
	seed(t, fixture, "Анамнез", "scan.pdf")

	first := fixture.do(t, httptest.NewRequest(http.MethodDelete, "/1", nil), "admin", constants.RoleAdministrator)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.JSONEq(t, `{"detail":"Запись успешно удалена"}`, first.Body.String())

	second := fixture.do(t, httptest.NewRequest(http.MethodDelete, "/1", nil), "admin", constants.RoleAdministrator)
	assert.Equal(t, http.StatusNotFound, second.Code)
}

/*
TestRouter_UpdateJSON verifies the structured update variant.
*/
func TestRouter_UpdateJSON(t *testing.T) {
	fixture := newFixture(t)
	seed(t, fixture, "Анамнез", "scan.pdf")

	request := httptest.NewRequest(http.MethodPut, "/1", bytes.NewBufferString(`{"title":"Анамнез 2024"}`))
	request.Header.Set("Content-Type", "application/json")

	response := fixture.do(t, request, "admin", constants.RoleAdministrator)

	require.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "Анамнез 2024", fixture.service.records[1].Title)
	// The stored file survives a structured update.
	assert.Equal(t, []byte("%PDF"), fixture.service.records[1].Data)
}

/*
TestRouter_UpdateMultipartMissingID verifies that the file variant checks
existence before reading the upload: unknown id is a hard 404.
*/
func TestRouter_UpdateMultipartMissingID(t *testing.T) {
	fixture := newFixture(t)

	body, contentType := multipartBody(t, recordInput{Title: "Анамнез"}, "scan.pdf", []byte("%PDF"))
	request := httptest.NewRequest(http.MethodPut, "/77", body)
	request.Header.Set("Content-Type", contentType)

	response := fixture.do(t, request, "admin", constants.RoleAdministrator)

	assert.Equal(t, http.StatusNotFound, response.Code)
}

/*
TestRouter_BadID verifies the 400 for malformed and non-positive ids.
*/
func TestRouter_BadID(t *testing.T) {
	fixture := newFixture(t)

	for _, path := range []string{"/abc", "/-1", "/0"} {
		response := fixture.do(t, httptest.NewRequest(http.MethodGet, path, nil), "admin", constants.RoleAdministrator)
		assert.Equal(t, http.StatusBadRequest, response.Code, "path %s", path)
	}
}

// seed inserts a record directly through the fake service.
func seed(t *testing.T, fixture *fixture, title, fileName string) int64 {
	t.Helper()

	created, err := fixture.service.Create(context.Background(), recordInput{
		Title:    title,
		FileName: fileName,
		Data:     []byte("%PDF"),
	})
	require.NoError(t, err)
	return created.ID
}
