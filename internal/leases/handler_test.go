package leases

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(repo Repository) chi.Router {
	handler := NewHandler(slog.Default(), NewService(repo))
	r := chi.NewRouter()
	handler.MountRoutes(r)
	return r
}

func TestHandlerCreateAndGet(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	body, _ := json.Marshal(validCreateInput())
	req := httptest.NewRequest(http.MethodPost, "/leases/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created Lease
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "L-001", created.LeaseNumber)

	req = httptest.NewRequest(http.MethodGet, "/leases/1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlerCreateValidationProblem(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	input := validCreateInput()
	input.LeaseNumber = ""
	body, _ := json.Marshal(input)
	req := httptest.NewRequest(http.MethodPost, "/leases/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Validation Failed")
}

func TestHandlerDuplicateConflict(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	body, _ := json.Marshal(validCreateInput())
	req := httptest.NewRequest(http.MethodPost, "/leases/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/leases/", bytes.NewReader(body))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandlerGetMissing(t *testing.T) {
	router := newTestRouter(newFakeRepo())
	req := httptest.NewRequest(http.MethodGet, "/leases/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerListEnvelope(t *testing.T) {
	repo := newFakeRepo()
	router := newTestRouter(repo)

	body, _ := json.Marshal(validCreateInput())
	req := httptest.NewRequest(http.MethodPost, "/leases/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/leases/?search=L-001", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, 25, resp.Pagination.PerPage)
}

func TestHandlerDelete(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	body, _ := json.Marshal(validCreateInput())
	req := httptest.NewRequest(http.MethodPost, "/leases/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/leases/1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
