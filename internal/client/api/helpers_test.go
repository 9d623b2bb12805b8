package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
)

// memStore is an in-memory TokenStore.
type memStore struct {
	mu      sync.Mutex
	access  string
	refresh string
	err     error
	clears  int
}

func (m *memStore) AccessToken(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access, m.err
}

func (m *memStore) RefreshToken(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refresh, m.err
}

func (m *memStore) SetAccessToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = token
	return m.err
}

func (m *memStore) SetRefreshToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refresh = token
	return m.err
}

func (m *memStore) SetTokens(_ context.Context, access, refresh string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = access, refresh
	return m.err
}

func (m *memStore) ClearTokens(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = "", ""
	m.clears++
	return m.err
}

func (m *memStore) tokens() (string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access, m.refresh
}

var errStore = errors.New("disk full")

// backend is a fake REST backend. Routes and the refresh handler are fixed
// before the server starts.
type backend struct {
	*httptest.Server
	refreshCalls atomic.Int32
	refreshBody  atomic.Value
}

// newBackend starts a fake backend. A nil refresh handler answers 404.
func newBackend(t *testing.T, refresh http.HandlerFunc, routes func(r chi.Router)) *backend {
	t.Helper()
	b := &backend{}
	r := chi.NewRouter()
	r.Post(DefaultRefreshPath, func(w http.ResponseWriter, req *http.Request) {
		b.refreshCalls.Add(1)
		var body refreshRequest
		_ = json.NewDecoder(req.Body).Decode(&body)
		b.refreshBody.Store(body.Refresh)
		if refresh == nil {
			http.NotFound(w, req)
			return
		}
		refresh(w, req)
	})
	if routes != nil {
		routes(r)
	}
	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Close)
	return b
}

func bearer(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func issueAccess(token string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"access": token})
	}
}

type order struct {
	ID int `json:"id"`
}

// expiryRecorder counts OnSessionExpired invocations.
type expiryRecorder struct{ n atomic.Int32 }

func (e *expiryRecorder) handler(context.Context) { e.n.Add(1) }

func (e *expiryRecorder) count() int { return int(e.n.Load()) }
