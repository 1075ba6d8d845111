//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/repomirror-go/api"
	"github.com/yourusername/repomirror-go/internal/app"
	"github.com/yourusername/repomirror-go/internal/domain"
	"github.com/yourusername/repomirror-go/internal/infrastructure"
	"github.com/yourusername/repomirror-go/pkg/logger"
)

// stubSource implements domain.FileSource with a fixed path list
type stubSource struct {
	paths []string
}

func (s *stubSource) Enumerate(ctx context.Context) ([]string, error) {
	return s.paths, nil
}

func setupTestServer(t *testing.T) (*httptest.Server, *httptest.Server) {
	t.Helper()

	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "content of ", r.URL.Path)
	}))
	t.Cleanup(origin.Close)

	repo, err := infrastructure.NewSQLiteMirrorRepository(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	config := &domain.MirrorConfig{
		RepoURL:         "https://example.com/repo.git",
		BaseURL:         origin.URL,
		DestDir:         t.TempDir(),
		ConcurrentLimit: 3,
		ChunkSize:       4096,
	}

	log := logger.NewDefault()
	source := &stubSource{paths: []string{"file1.txt", "docs/file2.txt"}}
	fetcher := infrastructure.NewHTTPFetcher(nil, config.ConcurrentLimit, log)
	manager := app.NewMirrorManager(repo, source, fetcher, config, log)

	router := api.SetupRouter(manager, log)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server, origin
}

func startRun(t *testing.T, server *httptest.Server) map[string]interface{} {
	t.Helper()

	resp, err := http.Post(server.URL+"/api/v1/runs", "application/json", bytes.NewBuffer(nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var run map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&run))
	require.NotEmpty(t, run["id"])
	return run
}

func waitForRun(t *testing.T, server *httptest.Server, id string) map[string]interface{} {
	t.Helper()

	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(server.URL + "/api/v1/runs/" + id)
		require.NoError(t, err)

		var run map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&run))
		resp.Body.Close()

		switch run["status"] {
		case string(domain.StatusCompleted), string(domain.StatusFailed):
			return run
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("run did not reach a terminal state")
	return nil
}

func TestAPI_RunLifecycle(t *testing.T) {
	server, _ := setupTestServer(t)

	created := startRun(t, server)
	id := created["id"].(string)

	run := waitForRun(t, server, id)
	assert.Equal(t, string(domain.StatusCompleted), run["status"])
	assert.Equal(t, float64(2), run["file_count"])

	// Every mirrored file has a recorded digest.
	resp, err := http.Get(server.URL + "/api/v1/runs/" + id + "/files")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var files []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&files))
	require.Len(t, files, 2)
	for _, f := range files {
		assert.Len(t, f["digest"], 64)
	}
}

func TestAPI_ListAndStats(t *testing.T) {
	server, _ := setupTestServer(t)

	created := startRun(t, server)
	waitForRun(t, server, created["id"].(string))

	resp, err := http.Get(server.URL + "/api/v1/runs")
	require.NoError(t, err)
	defer resp.Body.Close()

	var runs []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&runs))
	assert.Len(t, runs, 1)

	statsResp, err := http.Get(server.URL + "/api/v1/runs/stats")
	require.NoError(t, err)
	defer statsResp.Body.Close()

	var stats map[string]interface{}
	require.NoError(t, json.NewDecoder(statsResp.Body).Decode(&stats))
	assert.Equal(t, float64(1), stats["total"])
	assert.Equal(t, float64(2), stats["files"])
}

func TestAPI_GetRun_NotFound(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, err := http.Get(server.URL + "/api/v1/runs/nonexistent")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_Health(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
