// Package cli provides the interactive washstore command-line client.
//
// It wires configuration, the local SQLite database, the authenticated API
// client and the storefront services behind a small REPL. The session is
// kept in the database, so a restarted CLI continues where it left off;
// when the backend finally rejects the session the API client drops it and
// the REPL tells the user to log in again.
//
// Commands:
//   - register, login, logout, status
//   - catalog, orders, order <id>
//   - cart, add, remove <n>, clear, checkout
//   - help, exit
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
