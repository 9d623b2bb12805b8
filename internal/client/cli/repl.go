package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Catalog(ctx context.Context) error
	Orders(ctx context.Context) error
	Order(ctx context.Context, id string) error
	Cart(ctx context.Context) error
	Add(ctx context.Context) error
	Remove(ctx context.Context, position string) error
	Clear(ctx context.Context) error
	Checkout(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, status, catalog, cart, add, remove <n>, clear, exit"
	helpLoggedIn  = "Available commands: status, catalog, orders, order <id>, cart, add, remove <n>, clear, checkout, logout, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
// It returns on end of input or when the user types "exit" or "quit".
//
// Command handlers print their own errors; the loop ignores them.
// Prompts issued by handlers read from the same reader, so a scripted
// session can feed both commands and answers.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "washstore %s> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				fmt.Fprintln(w, helpLoggedIn)
			} else {
				fmt.Fprintln(w, helpLoggedOut)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "status":
			_ = a.Status(ctx)

		case "catalog":
			_ = a.Catalog(ctx)

		case "orders":
			_ = a.Orders(ctx)

		case "order":
			if len(args) == 0 {
				fmt.Fprintln(w, "Usage: order <id>")
				continue
			}
			_ = a.Order(ctx, args[0])

		case "cart":
			_ = a.Cart(ctx)

		case "add":
			_ = a.Add(ctx)

		case "remove":
			if len(args) == 0 {
				fmt.Fprintln(w, "Usage: remove <n>")
				continue
			}
			_ = a.Remove(ctx, args[0])

		case "clear":
			_ = a.Clear(ctx)

		case "checkout":
			_ = a.Checkout(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
