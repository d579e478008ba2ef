package fixtures

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixturesDir returns the absolute path to the fixtures directory.
func fixturesDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Dir(file)
}

// LoadResponse loads a recorded API response from responses/ and returns its raw bytes.
func LoadResponse(t *testing.T, filename string) []byte {
	t.Helper()
	path := filepath.Join(fixturesDir(), "responses", filename)
	data, err := os.ReadFile(path)
	require.NoError(t, err, "failed to load fixture response: %s", filename)
	require.True(t, json.Valid(data), "fixture %s is not valid JSON", filename)
	return data
}

// Route maps a request path to the fixture file served for it.
type Route struct {
	Status int // 0 means 200
	File   string
}

// Request is what the mock server saw for one call.
type Request struct {
	Path          string
	Authorization string
	Body          map[string]any
}

// Server starts an httptest server that answers POSTs from routes and
// records every request on the returned channel. Unknown paths get 404.
func Server(t *testing.T, routes map[string]Route) (*httptest.Server, <-chan Request) {
	t.Helper()
	bodies := map[string][]byte{}
	for path, r := range routes {
		bodies[path] = LoadResponse(t, r.File)
	}

	seen := make(chan Request, 64)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := Request{Path: r.URL.Path, Authorization: r.Header.Get("Authorization")}
		json.NewDecoder(r.Body).Decode(&req.Body) //nolint:errcheck
		select {
		case seen <- req:
		default:
		}

		route, ok := routes[r.URL.Path]
		if !ok || r.Method != http.MethodPost {
			http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if route.Status != 0 {
			w.WriteHeader(route.Status)
		}
		w.Write(bodies[r.URL.Path]) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)
	return srv, seen
}
