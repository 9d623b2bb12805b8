package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/washstore/internal/client/api"
	"github.com/dmitrijs2005/washstore/internal/client/config"
	"github.com/dmitrijs2005/washstore/internal/client/models"
	"github.com/dmitrijs2005/washstore/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/washstore/internal/client/services"
	"github.com/dmitrijs2005/washstore/internal/client/session"
	"github.com/dmitrijs2005/washstore/internal/client/storage"
	"github.com/dmitrijs2005/washstore/internal/logging"
)

type App struct {
	config *config.Config
	db     *sql.DB
	log    logging.Logger

	client         *api.Client
	authService    services.AuthService
	ordersService  services.OrdersService
	catalogService services.CatalogService
	cartService    services.CartService

	// last catalog listing; "add" picks services from it by number
	catalog  []models.Service
	userName string
	// whether a session was stored when the CLI last looked; a rejected
	// request without one is not reported as an expiry
	hasSession bool

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local database and wires the API client and services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, c.LogLevel)

	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	a := &App{
		config: c,
		db:     db,
		log:    logger,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	a.client = api.New(c.APIBaseURL, session.NewStore(db),
		api.WithTimeout(c.RequestTimeout),
		api.WithLogger(logger.With("component", "api")),
		api.WithSessionExpiredHandler(a.onSessionExpired),
	)

	a.authService = services.NewAuthService(a.client)
	a.ordersService = services.NewOrdersService(a.client)
	a.catalogService = services.NewCatalogService(a.client)
	a.cartService = services.NewCartService(a.client, metadata.NewSQLiteRepository(db))

	return a, nil
}

// Run starts the REPL and closes the database when it returns.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.db.Close(); err != nil {
			a.log.Warn(ctx, "error closing database", "error", err)
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.authService.IsAuthenticated(ctx)
}

// onSessionExpired runs after the API client has already dropped the tokens.
func (a *App) onSessionExpired(ctx context.Context) {
	a.userName = ""
	if !a.hasSession {
		return
	}
	a.hasSession = false
	a.println("Your session has expired, please log in again.")
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// report prints a failed command and returns err for the caller.
func (a *App) report(ctx context.Context, what string, err error) error {
	a.printf("%s failed: %s\n", what, err)
	a.log.Debug(ctx, what+" failed", "error", err)
	return err
}
