package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/washstore/internal/client/api"
	"github.com/dmitrijs2005/washstore/internal/client/session"
	"github.com/dmitrijs2005/washstore/internal/client/storage"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type env struct {
	db     *sql.DB
	store  *session.Store
	client *api.Client
}

// newEnv wires a real SQLite-backed client against a fake backend.
func newEnv(t *testing.T, routes func(r chi.Router)) *env {
	t.Helper()

	r := chi.NewRouter()
	if routes != nil {
		routes(r)
	}
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	db, err := storage.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "svc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := session.NewStore(db)
	return &env{db: db, store: store, client: api.New(srv.URL, store)}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeBody(t *testing.T, r *http.Request, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(r.Body).Decode(v))
}
