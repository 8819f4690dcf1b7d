package snapshot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terre-server/api"
)

func TestFetchSnapshot(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/data/companies.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"c1","name":"Cantina"}]`))
	}))
	defer srv.Close()

	client := NewSnapshotApiClient(api.NewHTTPClient(srv.URL, time.Second), "/data/companies.json")

	raw, err := client.FetchSnapshot(context.Background())

	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"c1","name":"Cantina"}]`, string(raw))
	assert.Equal(t, 1, calls)
}

func TestFetchSnapshot_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewSnapshotApiClient(api.NewHTTPClient(srv.URL, time.Second), "/data/companies.json")

	raw, err := client.FetchSnapshot(context.Background())

	assert.Error(t, err)
	assert.Nil(t, raw)
}

func TestSnapshotApiClientMock(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(good, []byte(`[{"id":"a"}]`), 0644))
	require.NoError(t, os.WriteFile(bad, []byte(`{"invalid_json`), 0644))

	raw, err := NewSnapshotApiClientMock(good).FetchSnapshot(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a"}]`, string(raw))

	_, err = NewSnapshotApiClientMock(bad).FetchSnapshot(context.Background())
	assert.Error(t, err)

	_, err = NewSnapshotApiClientMock(filepath.Join(dir, "missing.json")).FetchSnapshot(context.Background())
	assert.Error(t, err)
}
