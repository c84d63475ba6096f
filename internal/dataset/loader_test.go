package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trends.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	ds, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestLoadFromHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	ds, err := Load(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())
}

func TestLoadFromHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Load(context.Background(), srv.URL)
	assert.Error(t, err)
}
