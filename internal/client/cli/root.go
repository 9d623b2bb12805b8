package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus(ctx context.Context) string {
	s := ""
	if a.isLoggedIn(ctx) {
		s = "logged in"
		if a.userName != "" {
			s = a.userName
		}
	}
	if n := a.cartSize(ctx); n > 0 {
		if s != "" {
			s += ", "
		}
		s += fmt.Sprintf("cart: %d", n)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) cartSize(ctx context.Context) int {
	items, err := a.cartService.Items(ctx)
	if err != nil {
		return 0
	}
	return len(items)
}

// Root greets the user and runs the REPL until exit or end of input.
// Without a stored session the user is asked to log in first.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to washstore CLI (type 'help' for commands)")

	a.hasSession = a.isLoggedIn(ctx)
	if !a.hasSession {
		a.println("You are not logged in. Use 'login' or 'register'.")
	}

	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader, a.out)
}
