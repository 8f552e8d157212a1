package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/dmitrijs2005/rbacdash/internal/common"
	"github.com/dmitrijs2005/rbacdash/internal/models"
)

// List renders the dashboard: the viewer, the user count and the table.
func (a *App) List(ctx context.Context) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	rows, err := a.ctrl.Rows()
	if err != nil {
		return a.report(ctx, "view", err)
	}

	if u, ok := a.ctrl.Viewer(); ok {
		a.printf("%s <%s>\n", displayName(u), u.Email)
	}
	a.printf("Users Count %d total\n", len(rows))
	if err := renderUsers(a.out, rows, a.ctrl.Permissions()); err != nil {
		a.logger.Error(ctx, "failed to render users", "error", err)
		return err
	}
	return nil
}

// Roles shows every role and the viewer's own permissions.
func (a *App) Roles(ctx context.Context) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	p := a.ctrl.Permissions()
	a.printf("You can: view=%s add=%s edit=%s delete=%s\n", yesNo(p.CanView), yesNo(p.CanAdd), yesNo(p.CanEdit), yesNo(p.CanDelete))
	return renderRoles(a.out, a.ctrl.Roles(), a.ctrl.AssignableRoles())
}

// Add walks the viewer through the add dialog. A rejected draft can be
// corrected or abandoned.
func (a *App) Add(ctx context.Context) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	if err := a.modal.OpenCompose(); err != nil {
		return a.report(ctx, "add", err)
	}
	defer a.modal.Cancel()

	roles := a.ctrl.AssignableRoles()
	a.println("Assignable roles:")
	for _, r := range roles {
		a.printf("  %d  %s\n", r.ID, r.Name)
	}
	defRole := ""
	if len(roles) > 0 {
		defRole = strconv.Itoa(roles[0].ID)
	}

	for {
		draft, err := a.readDraft(defRole)
		if err != nil {
			a.logger.Error(ctx, "failed to read user", "error", err)
			return err
		}

		u, err := a.modal.SaveNew(ctx, draft)
		if err == nil {
			a.printf("Added %s (%s)\n", u.Name, u.ID)
			return nil
		}
		if !errors.Is(err, common.ErrValidation) {
			return a.report(ctx, "add", err)
		}
		a.println(err.Error())
		if again, rerr := GetYesNo(a.reader, "Try again?", true, a.out); rerr != nil || !again {
			return err
		}
	}
}

func (a *App) readDraft(defRole string) (models.UserDraft, error) {
	var d models.UserDraft
	var err error

	if d.Name, err = GetSimpleText(a.reader, "Name:", a.out); err != nil {
		return d, err
	}
	if d.Email, err = GetSimpleText(a.reader, "Email:", a.out); err != nil {
		return d, err
	}
	pw, err := GetPassword(a.reader, a.out)
	if err != nil {
		return d, err
	}
	d.Password = string(pw)
	common.WipeByteArray(pw)

	if d.RoleRef, err = GetTextDefault(a.reader, "Role id", defRole, a.out); err != nil {
		return d, err
	}
	if d.IsActive, err = GetYesNo(a.reader, "Active?", true, a.out); err != nil {
		return d, err
	}
	return d, nil
}

// Edit changes the role and status of the user with the given id.
func (a *App) Edit(ctx context.Context, id string) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	if err := a.modal.OpenEdit(id); err != nil {
		return a.report(ctx, "edit", err)
	}
	defer a.modal.Cancel()

	target, _ := a.modal.Target()
	a.printf("Editing %s <%s>\n", target.Name, target.Email)

	for {
		roleRef, err := GetTextDefault(a.reader, "Role id", strconv.Itoa(target.RoleID), a.out)
		if err != nil {
			return err
		}
		active, err := GetYesNo(a.reader, "Active?", target.IsActive, a.out)
		if err != nil {
			return err
		}

		err = a.modal.SaveEdit(ctx, roleRef, active)
		if err == nil {
			a.printf("Updated %s\n", target.Name)
			return a.afterSessionChange(ctx)
		}
		if !errors.Is(err, common.ErrValidation) {
			return a.report(ctx, "edit", err)
		}
		a.println(err.Error())
		if again, rerr := GetYesNo(a.reader, "Try again?", true, a.out); rerr != nil || !again {
			return err
		}
	}
}

// Delete removes the user with the given id. An unknown id is reported but
// is not an error.
func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	row, exists := a.ctrl.Find(id)
	if err := a.ctrl.Delete(ctx, id); err != nil {
		return a.report(ctx, "delete", err)
	}
	if !exists {
		a.println("No such user")
		return nil
	}
	a.printf("Deleted %s\n", row.Name)
	return a.afterSessionChange(ctx)
}

// afterSessionChange re-routes the viewer when a mutation ended their
// session.
func (a *App) afterSessionChange(ctx context.Context) error {
	if a.isLoggedIn() {
		return nil
	}
	a.println("Your account is no longer available, signed out")
	return a.Goto(ctx, a.path)
}
