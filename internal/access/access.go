// Package access derives the dashboard permission set from a role name and
// gates view operations on it.
package access

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/rbacdash/internal/models"
)

// ErrForbidden is returned when the viewer lacks the permission an
// operation requires.
var ErrForbidden = errors.New("forbidden")

const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleUser      = "user"
)

type Action int

const (
	ActionView Action = iota
	ActionAdd
	ActionEdit
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionView:
		return "view"
	case ActionAdd:
		return "add"
	case ActionEdit:
		return "edit"
	case ActionDelete:
		return "delete"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

type Permissions struct {
	CanView   bool
	CanAdd    bool
	CanEdit   bool
	CanDelete bool
}

// For returns the permissions of a role name. Matching is on the lowercased
// name; unknown or empty names can only view.
func For(roleName string) Permissions {
	switch strings.ToLower(roleName) {
	case RoleAdmin:
		return Permissions{CanView: true, CanAdd: true, CanEdit: true, CanDelete: true}
	case RoleModerator:
		return Permissions{CanView: true, CanAdd: true}
	default:
		return Permissions{CanView: true}
	}
}

// ForRole is For on the role's name, with no role meaning view only.
func ForRole(role models.Role, ok bool) Permissions {
	if !ok {
		return For("")
	}
	return For(role.Name)
}

// Allows reports whether the action is permitted.
func (p Permissions) Allows(a Action) bool {
	switch a {
	case ActionView:
		return p.CanView
	case ActionAdd:
		return p.CanAdd
	case ActionEdit:
		return p.CanEdit
	case ActionDelete:
		return p.CanDelete
	default:
		return false
	}
}

// Require returns an error wrapping ErrForbidden unless the action is
// permitted.
func (p Permissions) Require(a Action) error {
	if !p.Allows(a) {
		return fmt.Errorf("%w: %s not permitted", ErrForbidden, a)
	}
	return nil
}

// AssignableRoles returns the roles a viewer may give to a new user.
// Full editors get every role, add-only viewers get "user" and "moderator",
// everybody else gets none.
func AssignableRoles(p Permissions, roles []models.Role) []models.Role {
	switch {
	case !p.CanAdd:
		return nil
	case p.CanEdit && p.CanDelete:
		return append([]models.Role(nil), roles...)
	}

	var out []models.Role
	for _, r := range roles {
		if k := r.Key(); k == RoleUser || k == RoleModerator {
			out = append(out, r)
		}
	}
	return out
}
