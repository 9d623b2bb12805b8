package cli

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/washstore/internal/client/api"
	"github.com/dmitrijs2005/washstore/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errAborted = errors.New("aborted")

// Register prompts for the account details and creates the account.
// A successful registration also signs the user in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	firstName, err := getSimpleText(a.reader, "First name (optional)", a.out)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Phone (optional)", a.out)
	if err != nil {
		return err
	}

	user, err := a.authService.Register(ctx, models.Registration{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		Phone:     phone,
	})
	if err != nil {
		return a.report(ctx, "Registration", err)
	}

	a.userName = user.DisplayName()
	a.hasSession = true
	a.printf("Welcome, %s!\n", a.userName)
	return nil
}

// Login prompts for credentials and stores the issued session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	user, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return a.report(ctx, "Login", err)
	}

	a.userName = user.DisplayName()
	a.hasSession = true
	a.log.Info(ctx, "logged in", "user_id", user.ID)
	a.printf("Logged in as %s\n", a.userName)
	return nil
}

// Logout forgets the session and empties the cart.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return a.report(ctx, "Logout", err)
	}
	if err := a.cartService.Clear(ctx); err != nil {
		return a.report(ctx, "Clearing cart", err)
	}
	a.userName = ""
	a.hasSession = false
	a.println("Logged out")
	return nil
}

// Status shows whether a session is stored and when its access token expires.
func (a *App) Status(ctx context.Context) error {
	if !a.isLoggedIn(ctx) {
		a.println("Not logged in")
		return nil
	}

	token, err := a.client.AccessToken(ctx)
	if err != nil {
		return a.report(ctx, "Status", err)
	}

	exp, err := api.AccessTokenExpiry(token)
	switch {
	case err != nil:
		a.println("Logged in (access token expiry unknown)")
	case time.Now().After(exp):
		a.printf("Logged in, access token expired at %s and will be refreshed on next call\n", exp.Local().Format(time.DateTime))
	default:
		a.printf("Logged in, access token valid until %s\n", exp.Local().Format(time.DateTime))
	}
	return nil
}
