package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Role is one of the fixed authorization roles.
type Role struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Key is the lowercased name used for permission matching.
func (r Role) Key() string {
	return strings.ToLower(r.Name)
}

// FindRole returns the role with the given id.
func FindRole(roles []Role, id int) (Role, bool) {
	for _, r := range roles {
		if r.ID == id {
			return r, true
		}
	}
	return Role{}, false
}

// ParseRoleRef parses a role reference (as submitted by a form) into a
// role id.
func ParseRoleRef(ref string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(ref))
	if err != nil {
		return 0, fmt.Errorf("role reference %q is not an integer", ref)
	}
	return id, nil
}
