package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/dmitrijs2005/sweetshop/internal/client/app"
	"github.com/dmitrijs2005/sweetshop/internal/client/view"
	"github.com/dmitrijs2005/sweetshop/internal/common"
	"github.com/dmitrijs2005/sweetshop/internal/logging"
)

// App binds a Store and a TerminalView to an input stream.
type App struct {
	store  *app.Store
	view   *view.TerminalView
	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(store *app.Store, v *view.TerminalView, logger logging.Logger, in io.Reader, out io.Writer) *App {
	if logger == nil {
		logger = logging.Nop()
	}
	return &App{
		store:  store,
		view:   v,
		logger: logger,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Run restores the previous session and serves commands until the input
// ends, the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.view.Close()

	a.view.Print("SweetShop CLI (type 'help' for commands)")
	if err := a.store.Init(ctx); err != nil {
		a.logger.Error(ctx, "init failed", "error", err)
		return err
	}

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.store.State() == app.Authenticated
}

func (a *App) isAdmin() bool {
	return a.store.IsAdmin()
}

// status is the prompt label: the username plus any of admin, panel open
// and filtered.
func (a *App) status() string {
	s := a.store.Session()
	if s == nil {
		return "guest"
	}

	var tags []string
	if s.IsAdmin {
		tags = append(tags, "admin")
		if a.store.AdminPanelOpen() {
			tags = append(tags, "panel open")
		}
	}
	if !a.store.Criteria().IsZero() {
		tags = append(tags, "filtered")
	}
	if len(tags) == 0 {
		return s.Username
	}
	return s.Username + " (" + strings.Join(tags, ", ") + ")"
}

// report prints client-side refusals; server failures were already shown
// by the store.
func (a *App) report(err error) error {
	if msg, ok := validationMessage(err); ok {
		a.view.Print(msg)
		return err
	}
	if errors.Is(err, common.ErrForbidden) || errors.Is(err, common.ErrNotAuthenticated) {
		a.view.Print(err.Error())
	}
	return err
}
