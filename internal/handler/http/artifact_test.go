package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/clocklabs/timeclock-backend-go/internal/pkg/storage"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArtifactRouter(t *testing.T) (*chi.Mux, *storage.LocalStorage) {
	s, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads", "test-sign-key")
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Get("/uploads/*", NewArtifactHandler(s).Serve)
	return r, s
}

func TestArtifactServe_SignedLinkDownloads(t *testing.T) {
	router, s := newArtifactRouter(t)

	body := "employee,employee_id\nAna Torres,emp-1\n"
	_, err := s.Upload(context.Background(), strings.NewReader(body), "exports/job-1.csv", "text/csv")
	require.NoError(t, err)

	signed, err := s.GetURL(context.Background(), "exports/job-1.csv", time.Minute)
	require.NoError(t, err)
	u, err := url.Parse(signed)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, u.Path+"?"+u.RawQuery, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, body, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "job-1.csv")
}

func TestArtifactServe_RejectsTamperedSignature(t *testing.T) {
	router, s := newArtifactRouter(t)

	_, err := s.Upload(context.Background(), strings.NewReader("data"), "exports/job-1.csv", "text/csv")
	require.NoError(t, err)

	exp := time.Now().Add(time.Minute).Unix()
	target := fmt.Sprintf("/uploads/exports/job-1.csv?exp=%d&sig=deadbeef", exp)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestArtifactServe_RejectsExpiredLink(t *testing.T) {
	router, s := newArtifactRouter(t)

	_, err := s.Upload(context.Background(), strings.NewReader("data"), "exports/job-1.csv", "text/csv")
	require.NoError(t, err)

	signed, err := s.GetURL(context.Background(), "exports/job-1.csv", -time.Minute)
	require.NoError(t, err)
	u, err := url.Parse(signed)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, u.Path+"?"+u.RawQuery, nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestArtifactServe_MissingFileIsNotFound(t *testing.T) {
	router, s := newArtifactRouter(t)

	// Valid signature over a path that was never uploaded.
	signed, err := s.GetURL(context.Background(), "exports/missing.csv", time.Minute)
	require.NoError(t, err)
	u, err := url.Parse(signed)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, u.Path+"?"+u.RawQuery, nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
