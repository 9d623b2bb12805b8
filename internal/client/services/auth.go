// Package services contains the application services of the storefront
// client. They sit between the CLI and the API client and translate
// api.Result values into domain values and Go errors.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/washstore/internal/client/api"
	"github.com/dmitrijs2005/washstore/internal/client/models"
)

const (
	loginPath    = "/auth/login/"
	registerPath = "/auth/register/"
)

// AuthService signs the user in and out.
//
// Contract:
//   - Login/Register: call the backend and, on success, store the issued token pair.
//   - Logout: forget the token pair locally.
//   - IsAuthenticated: whether a full token pair is stored.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, reg models.Registration) (*models.User, error)
	Logout(ctx context.Context) error
	IsAuthenticated(ctx context.Context) bool
}

type authService struct {
	client *api.Client
}

func NewAuthService(client *api.Client) AuthService {
	return &authService{client: client}
}

// authEnvelope is the body of login and registration responses:
// {"success": true, "data": {"user": {...}, "tokens": {...}}}.
type authEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    struct {
		User   models.User      `json:"user"`
		Tokens models.TokenPair `json:"tokens"`
	} `json:"data"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	res := api.Post[authEnvelope](ctx, a.client, loginPath, credentials{Email: email, Password: password})
	return a.establish(ctx, res)
}

func (a *authService) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	res := api.Post[authEnvelope](ctx, a.client, registerPath, reg)
	return a.establish(ctx, res)
}

func (a *authService) establish(ctx context.Context, res api.Result[authEnvelope]) (*models.User, error) {
	if !res.Success {
		return nil, res.Err()
	}
	env := res.Data
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "backend reported failure"
		}
		return nil, fmt.Errorf("%w: %s", ErrAuthRejected, msg)
	}
	if env.Data.Tokens.Access == "" || env.Data.Tokens.Refresh == "" {
		return nil, fmt.Errorf("%w: response carries no tokens", ErrAuthRejected)
	}
	if err := a.client.SetTokens(ctx, env.Data.Tokens.Access, env.Data.Tokens.Refresh); err != nil {
		return nil, fmt.Errorf("failed to store tokens: %w", err)
	}
	user := env.Data.User
	return &user, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.client.ClearTokens(ctx)
}

func (a *authService) IsAuthenticated(ctx context.Context) bool {
	return a.client.State(ctx) == api.StateAuthenticated
}
