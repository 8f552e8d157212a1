// Package view is the authorization-gated controller behind the users
// table. Every operation derives the viewer's permissions from the current
// session and refuses with access.ErrForbidden before touching the store.
package view

import (
	"context"
	"regexp"
	"slices"
	"unicode/utf8"

	"github.com/dmitrijs2005/rbacdash/internal/access"
	"github.com/dmitrijs2005/rbacdash/internal/collatex"
	"github.com/dmitrijs2005/rbacdash/internal/logging"
	"github.com/dmitrijs2005/rbacdash/internal/models"
)

const minPasswordLen = 6

// RE2's \s is ASCII only; the class also excludes \v, Unicode spaces and BOM.
var emailRe = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

// Directory is the part of the directory store the controller uses.
type Directory interface {
	Users() []models.User
	Roles() []models.Role
	CurrentUser() (models.SessionUser, bool)
	CurrentRole() (models.Role, bool)
	AddUser(ctx context.Context, u models.User) models.User
	UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (bool, error)
	DeleteUser(ctx context.Context, id string) bool
}

// Row is one rendered line of the users table. It never carries a secret.
type Row struct {
	ID       string
	Name     string
	Email    string
	RoleID   int
	RoleName string
	IsActive bool
}

func (r Row) Status() string {
	if r.IsActive {
		return "Active"
	}
	return "Inactive"
}

// Summary is the table header data.
type Summary struct {
	Total int
}

type Controller struct {
	dir    Directory
	logger logging.Logger
	locale string
}

type Option func(*Controller)

// WithLocale sets the locale used to order rows.
func WithLocale(locale string) Option {
	return func(c *Controller) { c.locale = locale }
}

func New(dir Directory, logger logging.Logger, opts ...Option) *Controller {
	c := &Controller{
		dir:    dir,
		logger: logger.With("component", "view"),
		locale: collatex.DefaultLocale,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Viewer is the session user, if any.
func (c *Controller) Viewer() (models.SessionUser, bool) {
	return c.dir.CurrentUser()
}

func (c *Controller) Permissions() access.Permissions {
	return access.ForRole(c.dir.CurrentRole())
}

func (c *Controller) Roles() []models.Role {
	return c.dir.Roles()
}

// AssignableRoles lists the roles the viewer may give to a new user.
func (c *Controller) AssignableRoles() []models.Role {
	return access.AssignableRoles(c.Permissions(), c.dir.Roles())
}

// RoleName resolves a role id, "Unknown" when there is no such role.
func (c *Controller) RoleName(id int) string {
	return roleName(c.dir.Roles(), id)
}

func roleName(roles []models.Role, id int) string {
	if r, ok := models.FindRole(roles, id); ok {
		return r.Name
	}
	return "Unknown"
}

// Rows returns the directory ordered by display name.
func (c *Controller) Rows() ([]Row, error) {
	if err := c.Permissions().Require(access.ActionView); err != nil {
		return nil, err
	}

	users := collatex.SortedUsers(c.dir.Users(), c.locale)
	roles := c.dir.Roles()

	rows := make([]Row, 0, len(users))
	for _, u := range users {
		rows = append(rows, Row{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			RoleID:   u.RoleID,
			RoleName: roleName(roles, u.RoleID),
			IsActive: u.IsActive,
		})
	}
	return rows, nil
}

func (c *Controller) Summary() (Summary, error) {
	if err := c.Permissions().Require(access.ActionView); err != nil {
		return Summary{}, err
	}
	return Summary{Total: len(c.dir.Users())}, nil
}

// Find returns the row with the given id.
func (c *Controller) Find(id string) (Row, bool) {
	rows, err := c.Rows()
	if err != nil {
		return Row{}, false
	}
	i := slices.IndexFunc(rows, func(r Row) bool { return r.ID == id })
	if i < 0 {
		return Row{}, false
	}
	return rows[i], true
}

// Add validates draft and appends it as a new user.
func (c *Controller) Add(ctx context.Context, draft models.UserDraft) (models.User, error) {
	perms := c.Permissions()
	if err := perms.Require(access.ActionAdd); err != nil {
		c.logger.Warn(ctx, "add refused", "error", err)
		return models.User{}, err
	}

	roleID, err := c.validateDraft(perms, draft)
	if err != nil {
		return models.User{}, err
	}

	u := c.dir.AddUser(ctx, models.User{
		Name:     draft.Name,
		Email:    draft.Email,
		Password: draft.Password,
		RoleID:   roleID,
		IsActive: draft.IsActive,
	})
	return u, nil
}

// EditRoleStatus replaces the role and active flag of the user with the
// given id. An unknown id changes nothing.
func (c *Controller) EditRoleStatus(ctx context.Context, id, roleRef string, active bool) error {
	if err := c.Permissions().Require(access.ActionEdit); err != nil {
		c.logger.Warn(ctx, "edit refused", "user_id", id, "error", err)
		return err
	}

	roleID, err := models.ParseRoleRef(roleRef)
	if err != nil {
		return invalid("role", MsgInvalidRole)
	}
	if _, ok := models.FindRole(c.dir.Roles(), roleID); !ok {
		return invalid("role", MsgInvalidRole)
	}

	ref := roleRef
	_, err = c.dir.UpdateUser(ctx, id, models.UserUpdate{RoleRef: &ref, IsActive: &active})
	return err
}

// Delete removes the user with the given id. An unknown id changes nothing.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.Permissions().Require(access.ActionDelete); err != nil {
		c.logger.Warn(ctx, "delete refused", "user_id", id, "error", err)
		return err
	}
	c.dir.DeleteUser(ctx, id)
	return nil
}

func (c *Controller) validateDraft(perms access.Permissions, d models.UserDraft) (int, error) {
	if d.Name == "" || d.Email == "" || d.Password == "" {
		return 0, invalid("", MsgRequiredFields)
	}
	if !emailRe.MatchString(d.Email) {
		return 0, invalid("email", MsgInvalidEmail)
	}
	if utf8.RuneCountInString(d.Password) < minPasswordLen {
		return 0, invalid("password", MsgShortPassword)
	}

	roleID, err := models.ParseRoleRef(d.RoleRef)
	if err != nil {
		return 0, invalid("role", MsgInvalidRole)
	}
	assignable := access.AssignableRoles(perms, c.dir.Roles())
	if !slices.ContainsFunc(assignable, func(r models.Role) bool { return r.ID == roleID }) {
		return 0, invalid("role", MsgInvalidRole)
	}
	return roleID, nil
}
