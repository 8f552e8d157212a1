package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/rbacdash/internal/access"
	"github.com/dmitrijs2005/rbacdash/internal/common"
	"github.com/dmitrijs2005/rbacdash/internal/nav"
)

const msgInvalidCredentials = "Invalid email or password"

// Login prompts for email and password and opens a session. On success the
// viewer continues to the page they were heading to.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		return a.Goto(ctx, nav.PathLogin)
	}
	if a.path != nav.PathLogin {
		a.apply(nav.Resolve(nav.PathLogin, false, a.intent))
	}

	email, err := GetSimpleText(a.reader, "Enter email:", a.out)
	if err != nil {
		a.logger.Error(ctx, "failed to read email", "error", err)
		return err
	}

	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		a.logger.Error(ctx, "failed to read password", "error", err)
		return err
	}
	defer common.WipeByteArray(password)

	if !a.session.Login(ctx, email, string(password)) {
		a.println(msgInvalidCredentials)
		return common.ErrUnauthorized
	}

	u, _ := a.session.CurrentUser()
	a.printf("Signed in as %s\n", displayName(u))
	return a.Goto(ctx, nav.PathLogin)
}

func (a *App) Logout(ctx context.Context) error {
	a.modal.Cancel()
	a.session.Logout(ctx)
	a.intent = nav.Intent{}
	a.println("Signed out")
	return a.Goto(ctx, nav.PathLogin)
}

func (a *App) WhoAmI(ctx context.Context) error {
	u, ok := a.session.CurrentUser()
	if !ok {
		a.println("Not signed in")
		return common.ErrUnauthorized
	}
	role := a.ctrl.RoleName(u.RoleID)
	a.printf("%s <%s> (%s)\n", displayName(u), u.Email, role)
	return nil
}

// Goto navigates to path through the route guard and renders the page it
// lands on.
func (a *App) Goto(ctx context.Context, path string) error {
	d := nav.Resolve(path, a.isLoggedIn(), a.intent)
	a.apply(d)

	switch d.Page {
	case nav.PageDashboard:
		return a.List(ctx)
	case nav.PageLogin:
		a.println("Please sign in with 'login'")
	}
	return nil
}

func (a *App) apply(d nav.Decision) {
	if d.Redirect && d.Path != a.path {
		a.printf("-> %s\n", d.Path)
	}
	a.path = d.Path
	a.intent = d.Intent
}

// requireSession sends a viewer without a session to the login page.
func (a *App) requireSession(ctx context.Context) error {
	if a.isLoggedIn() {
		return nil
	}
	path := a.path
	if !nav.IsProtected(path) {
		path = nav.PathUsers
	}
	_ = a.Goto(ctx, path)
	return fmt.Errorf("dashboard: %w", common.ErrUnauthorized)
}

func (a *App) report(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrValidation):
		a.println(err.Error())
	case errors.Is(err, access.ErrForbidden):
		a.printf("You are not allowed to %s users\n", op)
	case errors.Is(err, common.ErrNotFound):
		a.println("No such user")
	default:
		a.printf("Cannot %s: %v\n", op, err)
	}
	a.logger.Debug(ctx, "command failed", "op", op, "error", err)
	return err
}
