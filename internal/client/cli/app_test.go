package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/washstore/internal/client/api"
	"github.com/dmitrijs2005/washstore/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func TestApp_ShoppingFlow(t *testing.T) {
	stubPassword(t, "secret")
	access := signedToken(t, time.Now().Add(time.Hour))

	var booking models.BookingRequest
	routes := func(r chi.Router) {
		r.Post("/auth/login/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, loginResponse(access, "R1"))
		})
		r.Get("/services/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, testCatalog)
		})
		r.Post("/bookings/", func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+access {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewDecoder(r.Body).Decode(&booking)
			writeJSON(w, http.StatusCreated, map[string]any{"id": 7, "number": "WS-7", "status": "new", "total": booking.Total})
		})
		r.Get("/orders/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, []map[string]any{
				{"id": 7, "number": "WS-7", "status": "new", "date": "2026-11-02", "total": 340000},
			})
		})
	}

	input := strings.Join([]string{
		"login", "ann@example.org",
		"status",
		"add", "1", "2", "3", "1",
		"add", "2", "1",
		"cart",
		"checkout", "Brivibas 1", "2026-11-02", "+37120000000", "",
		"cart",
		"orders",
		"exit",
	}, "\n") + "\n"

	a, out := newTestApp(t, routes, input)
	a.Root(context.Background())

	s := out.String()
	assert.Contains(t, s, "Logged in as Ann")
	assert.Contains(t, s, "access token valid until")
	assert.Contains(t, s, "Added Carpet wash 2x3 (6.00 m²) x1  900.00")
	assert.Contains(t, s, "Added Sofa cleaning x1  2500.00")
	assert.Contains(t, s, "Total: 3400.00")
	assert.Contains(t, s, "Order #WS-7 created, total 3400.00")
	assert.Contains(t, s, "Your cart is empty")
	assert.Contains(t, s, "#WS-7")

	assert.Equal(t, int64(340000), booking.Total)
	assert.Equal(t, "Brivibas 1", booking.Address)
	require.Len(t, booking.Items, 2)
	assert.Equal(t, int64(10), booking.Items[0].ServiceID)
	assert.Equal(t, int64(250000), booking.Items[1].Price)
}

func TestApp_LoginFailure(t *testing.T) {
	stubPassword(t, "wrong")
	routes := func(r chi.Router) {
		r.Post("/auth/login/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid email or password"})
		})
	}

	a, out := newTestApp(t, routes, "ann@example.org\n")
	require.Error(t, a.Login(context.Background()))

	assert.Contains(t, out.String(), "Login failed: Invalid email or password (status 400)")
	assert.False(t, a.isLoggedIn(context.Background()))
}

func TestApp_LoginRejectedWith401IsNotAnExpiry(t *testing.T) {
	stubPassword(t, "wrong")
	routes := func(r chi.Router) {
		r.Post("/auth/login/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "No active account found with the given credentials"})
		})
	}

	a, out := newTestApp(t, routes, "login\nann@example.org\nexit\n")
	a.Root(context.Background())

	s := out.String()
	assert.Contains(t, s, "Login failed: No active account found with the given credentials (status 401)")
	assert.NotContains(t, s, "Your session has expired")
	assert.False(t, a.isLoggedIn(context.Background()))
}

func TestApp_Register(t *testing.T) {
	stubPassword(t, "pw")
	var got models.Registration
	routes := func(r chi.Router) {
		r.Post("/auth/register/", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&got)
			writeJSON(w, http.StatusCreated, loginResponse("A", "R"))
		})
	}

	a, out := newTestApp(t, routes, "bob@example.org\nBob\n\n")
	require.NoError(t, a.Register(context.Background()))

	assert.Equal(t, models.Registration{Email: "bob@example.org", Password: "pw", FirstName: "Bob"}, got)
	assert.Contains(t, out.String(), "Welcome, Ann!")
	assert.True(t, a.isLoggedIn(context.Background()))
}

func TestApp_SessionExpired(t *testing.T) {
	routes := func(r chi.Router) {
		r.Post(api.DefaultRefreshPath, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token is invalid or expired"})
		})
		r.Get("/orders/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Given token not valid"})
		})
	}

	a, out := newTestApp(t, routes, "orders\nstatus\nexit\n")
	ctx := context.Background()
	require.NoError(t, a.client.SetTokens(ctx, "A", "R"))
	a.userName = "Ann"

	a.Root(ctx)

	s := out.String()
	assert.Contains(t, s, "Your session has expired, please log in again.")
	assert.Contains(t, s, "Loading orders failed: Given token not valid (status 401)")
	assert.Contains(t, s, "Not logged in")
	assert.Empty(t, a.userName)
	assert.False(t, a.isLoggedIn(ctx))
}

func TestApp_LogoutClearsCart(t *testing.T) {
	a, out := newTestApp(t, nil, "logout\ncart\nexit\n")
	ctx := context.Background()
	require.NoError(t, a.client.SetTokens(ctx, "A", "R"))
	require.NoError(t, a.cartService.Add(ctx, models.CartItem{ServiceID: 1, Name: "Pillow", Unit: models.PerItem, UnitPrice: 500, Quantity: 2}))

	a.Root(ctx)

	s := out.String()
	assert.Contains(t, s, "Logged out")
	assert.Contains(t, s, "Your cart is empty")
	assert.False(t, a.isLoggedIn(ctx))
}

func TestApp_GuestCommands(t *testing.T) {
	a, out := newTestApp(t, nil, "checkout\norders\nremove x\nremove 3\nexit\n")
	ctx := context.Background()
	require.NoError(t, a.cartService.Add(ctx, models.CartItem{ServiceID: 1, Name: "Pillow", Unit: models.PerItem, UnitPrice: 500, Quantity: 1}))

	a.Root(ctx)

	s := out.String()
	assert.Contains(t, s, "You are not logged in")
	assert.Contains(t, s, "washstore (cart: 1)> ")
	assert.Equal(t, 2, strings.Count(s, "Please log in first"))
	assert.Contains(t, s, "Usage: remove <n>, where n is the line number")
	assert.Contains(t, s, "Removing item failed: cart item not found")
}

func TestApp_RemoveAndClear(t *testing.T) {
	a, out := newTestApp(t, nil, "")
	ctx := context.Background()
	pillow := models.CartItem{ServiceID: 1, Name: "Pillow", Unit: models.PerItem, UnitPrice: 500, Quantity: 1}
	chair := models.CartItem{ServiceID: 2, Name: "Chair", Unit: models.PerItem, UnitPrice: 900, Quantity: 1}
	require.NoError(t, a.cartService.Add(ctx, pillow))
	require.NoError(t, a.cartService.Add(ctx, chair))

	require.NoError(t, a.Remove(ctx, "1"))
	items, err := a.cartService.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Chair", items[0].Name)

	require.NoError(t, a.Clear(ctx))
	assert.Zero(t, a.cartSize(ctx))
	assert.Contains(t, out.String(), "Cart cleared")
}

func TestApp_AddRejectsBadInput(t *testing.T) {
	routes := func(r chi.Router) {
		r.Get("/services/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, testCatalog)
		})
	}
	a, out := newTestApp(t, routes, "1\n-2\n")
	ctx := context.Background()

	require.Error(t, a.Add(ctx))
	assert.Contains(t, out.String(), `Adding item failed: expected a positive number, got "-2"`)
	assert.Zero(t, a.cartSize(ctx))
}
