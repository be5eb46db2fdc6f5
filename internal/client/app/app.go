package app

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/dmitrijs2005/mymemory/internal/client/auth"
	"github.com/dmitrijs2005/mymemory/internal/client/config"
	"github.com/dmitrijs2005/mymemory/internal/client/repositories/preferences"
	"github.com/dmitrijs2005/mymemory/internal/client/session"
	"github.com/dmitrijs2005/mymemory/internal/client/storage"
	"github.com/dmitrijs2005/mymemory/internal/filex"
	"github.com/dmitrijs2005/mymemory/internal/logging"
)

type App struct {
	config *config.Config
	store  *session.Store
	prefs  preferences.Repository
	db     *sql.DB
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the database named in c, loads the fallback image if one is
// configured and builds the session store.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		return nil, err
	}

	repo, db, err := storage.OpenPreferences(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	var fallback image.Image
	if c.FallbackImage != "" {
		fallback, err = session.LoadImageFile(c.FallbackImage)
		if err != nil {
			// the drawn avatar still works
			log.Warn(ctx, "fallback image not loaded", "path", c.FallbackImage, "error", err)
		}
	}

	store := session.NewStore(repo, auth.NewDefaultAuthenticator(),
		session.WithLogger(log.With("component", "session")),
		session.WithFallbackImage(fallback),
		session.WithMaxDimension(c.MaxProfileDimension),
	)

	return &App{
		config: c,
		store:  store,
		prefs:  repo,
		db:     db,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// Run shows the tutorial on first start, then serves the REPL until the user
// exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to MyMemory (type 'help' for commands)")
	if !a.store.TutorialSeen(ctx) {
		_ = a.Tutorial(ctx)
	}

	scanner := bufio.NewScanner(a.reader)
	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, scanner)
}

// Close releases the database handle.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.store.IsLoggedIn(ctx)
}

func (a *App) getStatus(ctx context.Context) string {
	if !a.store.IsLoggedIn(ctx) {
		return "(logged out)"
	}
	account, _ := a.store.Account(ctx)
	return fmt.Sprintf("(%s)", account)
}
