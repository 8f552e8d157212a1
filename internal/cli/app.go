package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/rbacdash/internal/logging"
	"github.com/dmitrijs2005/rbacdash/internal/models"
	"github.com/dmitrijs2005/rbacdash/internal/nav"
	"github.com/dmitrijs2005/rbacdash/internal/storage/kv"
	"github.com/dmitrijs2005/rbacdash/internal/view"
)

// Session is the part of the directory store the App drives directly.
type Session interface {
	Login(ctx context.Context, email, secret string) bool
	Logout(ctx context.Context)
	CurrentUser() (models.SessionUser, bool)
	ReplaceUsers(ctx context.Context, users []models.User)
}

// SlotStore gives access to the persisted slots.
type SlotStore interface {
	Slots() kv.Repository
	Reset(ctx context.Context, keys ...string) error
}

type App struct {
	session Session
	ctrl    *view.Controller
	modal   *view.Modal
	slots   SlotStore
	seed    func() []models.User
	logger  logging.Logger

	reader *bufio.Reader
	out    io.Writer

	path   string
	intent nav.Intent
}

// Deps groups what NewApp wires together.
type Deps struct {
	Session    Session
	Controller *view.Controller
	Slots      SlotStore
	// Seed returns the directory restored by the reset command.
	Seed   func() []models.User
	Logger logging.Logger
}

func NewApp(d Deps, in io.Reader, out io.Writer) *App {
	return &App{
		session: d.Session,
		ctrl:    d.Controller,
		modal:   view.NewModal(d.Controller),
		slots:   d.Slots,
		seed:    d.Seed,
		logger:  d.Logger.With("component", "cli"),
		reader:  bufio.NewReader(in),
		out:     out,
		path:    nav.PathHome,
	}
}

// Run shows the start page and serves commands until exit or EOF.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to the RBAC dashboard (type 'help' for commands)")
	_ = a.Goto(ctx, a.path)
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	_, ok := a.session.CurrentUser()
	return ok
}

func (a *App) status() string {
	u, ok := a.session.CurrentUser()
	if !ok {
		return fmt.Sprintf("(%s)", a.path)
	}
	return fmt.Sprintf("(%s %s)", displayName(u), a.path)
}

// Path is the page currently shown.
func (a *App) Path() string {
	return a.path
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func displayName(u models.SessionUser) string {
	if u.Name == "" {
		return "User"
	}
	return u.Name
}
