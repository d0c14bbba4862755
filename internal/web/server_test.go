package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avenclark/photosift/internal/app"
	"github.com/avenclark/photosift/internal/domain/project"
	"github.com/avenclark/photosift/internal/domain/round"
	"github.com/avenclark/photosift/internal/filestore"
	"github.com/avenclark/photosift/internal/media"
)

func newTestServer(t *testing.T, images ...string) (*Server, string) {
	t.Helper()

	sourceDir := t.TempDir()
	for _, name := range images {
		require.NoError(t, os.WriteFile(filepath.Join(sourceDir, name), []byte("img"), 0o644))
	}

	store := filestore.New(filepath.Join(t.TempDir(), "state.json"))
	doc := project.LoadDocument(context.Background(), store, sourceDir, nil)

	projectSvc := project.NewService(store, sourceDir, nil)
	roundSvc := round.NewService(store, media.NewLister(nil), media.Writer{}, nil)
	a := app.New(doc, projectSvc, roundSvc, nil)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	server, err := NewServer(a, logger, nil)
	require.NoError(t, err)
	return server, sourceDir
}

func postForm(server *Server, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)
	return rec
}

func TestNewServer_Validation(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	_, err := NewServer(nil, logger, nil)
	require.Error(t, err)

	server, _ := newTestServer(t)
	require.NotNil(t, server)

	_, err = NewServer(server.app, nil, nil)
	require.Error(t, err)
}

func TestHandleHealth(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "ok", resp.Status)
}

func TestHandleIndex(t *testing.T) {
	server, _ := newTestServer(t, "a.png", "b.jpg")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "a.png")
	require.Contains(t, body, "b.jpg")
	require.Contains(t, body, "round 1")
}

func TestHandleToggle(t *testing.T) {
	server, _ := newTestServer(t, "a.png")

	rec := postForm(server, "/toggle", url.Values{"filename": {"a.png"}})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ToggleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Selected)

	rec = postForm(server, "/toggle", url.Values{"filename": {"a.png"}})
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Selected)
}

func TestHandleToggle_MissingFilename(t *testing.T) {
	server, _ := newTestServer(t, "a.png")

	rec := postForm(server, "/toggle", url.Values{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleNextRound_Notices(t *testing.T) {
	server, _ := newTestServer(t, "a.png")

	// nothing kept yet: redirected with the empty-selection notice
	rec := postForm(server, "/round/next", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/?notice=empty", rec.Header().Get("Location"))

	postForm(server, "/toggle", url.Values{"filename": {"a.png"}})
	rec = postForm(server, "/round/next", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))
}

func TestHandleNextRound_Confirmation(t *testing.T) {
	server, _ := newTestServer(t, "a.png")

	// populate round 2's next round, then jump back and try to advance into it
	postForm(server, "/toggle", url.Values{"filename": {"a.png"}})
	postForm(server, "/round/next", url.Values{})
	postForm(server, "/toggle", url.Values{"filename": {"a.png"}})
	postForm(server, "/round/switch", url.Values{"round": {"1"}})

	rec := postForm(server, "/round/next", url.Values{})
	require.Equal(t, "/?notice=confirm", rec.Header().Get("Location"))

	rec = postForm(server, "/round/next", url.Values{"force": {"1"}})
	require.Equal(t, "/", rec.Header().Get("Location"))
}

func TestHandleImage(t *testing.T) {
	server, _ := newTestServer(t, "a.png")

	req := httptest.NewRequest(http.MethodGet, "/images/a.png", nil)
	rec := httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "img", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/images/..%2Fstate.json", nil)
	rec = httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleProjects(t *testing.T) {
	server, _ := newTestServer(t, "a.png")

	rec := postForm(server, "/projects", url.Values{
		"name":             {"Second"},
		"source_directory": {t.TempDir()},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	// deleting down to one project is allowed, below one is not
	view := server.app.GetActiveProjectView(context.Background())
	require.Len(t, view.Projects, 2)

	rec = postForm(server, "/projects/delete", url.Values{"id": {view.ProjectID}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	view = server.app.GetActiveProjectView(context.Background())
	rec = postForm(server, "/projects/delete", url.Values{"id": {view.ProjectID}})
	require.Equal(t, "/?notice=lastproject", rec.Header().Get("Location"))
}

func TestHandleSettings(t *testing.T) {
	server, _ := newTestServer(t, "a.png")
	newDir := t.TempDir()

	rec := postForm(server, "/settings", url.Values{
		"auxiliary_label":  {"client picks"},
		"source_directory": {newDir},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	view := server.app.GetActiveProjectView(context.Background())
	require.Equal(t, "client picks", view.AuxLabel)
	require.Equal(t, newDir, view.SourceDir)
}
