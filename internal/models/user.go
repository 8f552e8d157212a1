// Package models defines the directory data shared by the store, the
// cached snapshot and the dashboard view.
package models

// User is a directory record. Password holds the credential secret as
// given (plaintext for the demo seed, or an encoded hash).
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   int    `json:"roleId"`
	IsActive bool   `json:"isActive"`
}

// SessionUser is the redacted projection of a User kept in the session.
// It has no secret field, so it can be persisted as-is.
type SessionUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	RoleID   int    `json:"roleId"`
	IsActive bool   `json:"isActive"`
}

// Redact strips the secret.
func (u User) Redact() SessionUser {
	return SessionUser{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		RoleID:   u.RoleID,
		IsActive: u.IsActive,
	}
}

// UserUpdate carries the fields an update may change. Nil fields are left
// untouched. RoleRef is parsed as an integer by the store.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
	RoleRef  *string
	IsActive *bool
}

// UserDraft is what the add flow collects before validation.
type UserDraft struct {
	Name     string
	Email    string
	Password string
	RoleRef  string
	IsActive bool
}
