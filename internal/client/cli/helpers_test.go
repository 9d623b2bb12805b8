package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/washstore/internal/client/config"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// newTestApp builds a real App against a fake backend and a temp database.
// Commands and prompt answers are read from input; everything printed is
// collected in the returned buffer.
func newTestApp(t *testing.T, routes func(r chi.Router), input string) (*App, *bytes.Buffer) {
	t.Helper()

	r := chi.NewRouter()
	if routes != nil {
		routes(r)
	}
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		APIBaseURL:     srv.URL,
		RequestTimeout: 5 * time.Second,
		DatabasePath:   filepath.Join(t.TempDir(), "cli.db"),
		LogLevel:       "error",
	}

	a, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.db.Close() })

	out := &bytes.Buffer{}
	a.reader = rdr(input)
	a.out = out
	return a, out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) (string, error) { return pw, nil }
	t.Cleanup(func() { getPassword = orig })
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func loginResponse(access, refresh string) map[string]any {
	return map[string]any{
		"success": true,
		"data": map[string]any{
			"user":   map[string]any{"id": 1, "email": "ann@example.org", "first_name": "Ann"},
			"tokens": map[string]any{"access": access, "refresh": refresh},
		},
	}
}

var testCatalog = []map[string]any{
	{"id": 10, "name": "Carpet wash", "unit": "sqm", "price": 15000},
	{"id": 20, "name": "Sofa cleaning", "unit": "item", "price": 250000},
}
