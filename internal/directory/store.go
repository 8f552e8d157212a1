// Package directory holds the session/directory store: the users, the
// fixed roles and the authenticated session. The Store is an explicit
// object passed to whoever needs it, and its methods are the only write
// path to directory state.
//
// Only the session is persisted by the store, in the slot named by
// WithSessionKey (default "rbac-storage"). The user list starts from the
// seed on every process start; the snapshot package is responsible for
// carrying it across restarts.
package directory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/rbacdash/internal/credentials"
	"github.com/dmitrijs2005/rbacdash/internal/logging"
	"github.com/dmitrijs2005/rbacdash/internal/models"
	"github.com/dmitrijs2005/rbacdash/internal/storage/kv"
)

const DefaultSessionKey = "rbac-storage"

// Listener is called after every change to the user list with a copy of
// the new list. Listeners run while the store holds its write lock and must
// not call back into the store's mutating methods.
type Listener func(ctx context.Context, users []models.User)

// Store is safe for concurrent use. Mutations are serialized by writeMu so
// the session slot and listeners observe them in the order they happened.
type Store struct {
	writeMu sync.Mutex

	mu      sync.RWMutex
	users   []models.User
	roles   []models.Role
	current *models.SessionUser

	slots      kv.Repository
	sessionKey string
	verifier   credentials.Verifier
	logger     logging.Logger
	newID      func() string

	listenersMu sync.Mutex
	listeners   []Listener
}

type Option func(*Store)

// WithSessionKey overrides the slot the session is persisted in.
func WithSessionKey(key string) Option {
	return func(s *Store) { s.sessionKey = key }
}

// WithSeed replaces the default seed users and roles.
func WithSeed(users []models.User, roles []models.Role) Option {
	return func(s *Store) {
		s.users = slices.Clone(users)
		s.roles = slices.Clone(roles)
	}
}

// WithIDGenerator replaces uuid.NewString for new records.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// New builds a Store seeded with SeedUsers/SeedRoles and restores the
// session persisted in slots, if any.
func New(ctx context.Context, slots kv.Repository, verifier credentials.Verifier, logger logging.Logger, opts ...Option) *Store {
	s := &Store{
		users:      SeedUsers(),
		roles:      SeedRoles(),
		slots:      slots,
		sessionKey: DefaultSessionKey,
		verifier:   verifier,
		logger:     logger.With("component", "directory"),
		newID:      uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}

	s.current = s.restoreSession(ctx)
	return s
}

// Login looks for a user with exactly this email whose secret the verifier
// accepts. On success the session becomes the user's redacted projection.
// On failure the session is left as it was.
func (s *Store) Login(ctx context.Context, email, secret string) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	var found *models.User
	for i := range s.users {
		if s.users[i].Email == email && s.verifier.Verify(s.users[i], secret) {
			found = &s.users[i]
			break
		}
	}
	if found == nil {
		s.mu.Unlock()
		s.logger.Warn(ctx, "failed authentication attempt", "email", email)
		return false
	}

	session := found.Redact()
	s.current = &session
	s.mu.Unlock()

	s.persistSession(ctx, &session)
	s.logger.Info(ctx, "user logged in", "user_id", session.ID, "role_id", session.RoleID)
	return true
}

// Logout clears the session. Calling it without a session is fine.
func (s *Store) Logout(ctx context.Context) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	s.persistSession(ctx, nil)
}

// AddUser appends a copy of u under a freshly generated id and returns the
// stored record. The secret is stored in the verifier's protected form.
// Email uniqueness is not checked.
func (s *Store) AddUser(ctx context.Context, u models.User) models.User {
	u.Password = s.verifier.Protect(u.Password)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	u.ID = s.uniqueIDLocked()
	s.users = append(s.users, u)
	users := slices.Clone(s.users)
	s.mu.Unlock()

	s.logger.Info(ctx, "user added", "user_id", u.ID, "role_id", u.RoleID)
	s.notify(ctx, users)
	return u
}

// UpdateUser merges upd into the user with the given id. It reports whether
// a record matched; an unknown id changes nothing. A role reference that is
// not an integer is rejected before anything is touched.
func (s *Store) UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (bool, error) {
	var roleID *int
	if upd.RoleRef != nil {
		v, err := models.ParseRoleRef(*upd.RoleRef)
		if err != nil {
			return false, validationError(err)
		}
		roleID = &v
	}
	var password *string
	if upd.Password != nil {
		p := s.verifier.Protect(*upd.Password)
		password = &p
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return false, nil
	}

	u := &s.users[idx]
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if password != nil {
		u.Password = *password
	}
	if roleID != nil {
		u.RoleID = *roleID
	}
	if upd.IsActive != nil {
		u.IsActive = *upd.IsActive
	}

	var session *models.SessionUser
	if s.current != nil && s.current.ID == id {
		refreshed := u.Redact()
		s.current = &refreshed
		session = &refreshed
	}
	users := slices.Clone(s.users)
	s.mu.Unlock()

	if session != nil {
		s.persistSession(ctx, session)
	}
	s.logger.Info(ctx, "user updated", "user_id", id)
	s.notify(ctx, users)
	return true, nil
}

// DeleteUser removes the user with the given id and reports whether one was
// removed. Deleting the user behind the current session logs that session
// out.
func (s *Store) DeleteUser(ctx context.Context, id string) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.users = slices.Delete(s.users, idx, idx+1)
	_, changed := s.reconcileSessionLocked()
	users := slices.Clone(s.users)
	s.mu.Unlock()

	if changed {
		s.persistSession(ctx, nil)
		s.logger.Warn(ctx, "session holder deleted, session cleared", "user_id", id)
	}
	s.logger.Info(ctx, "user deleted", "user_id", id)
	s.notify(ctx, users)
	return true
}

// ReplaceUsers swaps the whole user list, e.g. when hydrating from a cached
// snapshot. The session is cleared if its user is not in the new list and
// refreshed from the new record otherwise.
func (s *Store) ReplaceUsers(ctx context.Context, users []models.User) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.users = slices.Clone(users)
	session, changed := s.reconcileSessionLocked()
	cp := slices.Clone(s.users)
	s.mu.Unlock()

	switch {
	case changed && session == nil:
		s.persistSession(ctx, nil)
		s.logger.Warn(ctx, "session user missing from directory, session cleared")
	case changed:
		s.persistSession(ctx, session)
		s.logger.Info(ctx, "session refreshed from directory", "user_id", session.ID, "role_id", session.RoleID)
	}
	s.notify(ctx, cp)
}

// Subscribe registers fn to run after every user list change.
func (s *Store) Subscribe(fn Listener) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Users returns a copy of the user list in insertion order.
func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users)
}

// Roles returns a copy of the role list.
func (s *Store) Roles() []models.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.roles)
}

func (s *Store) RoleByID(id int) (models.Role, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.FindRole(s.roles, id)
}

// CurrentUser returns the session user, if any.
func (s *Store) CurrentUser() (models.SessionUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.SessionUser{}, false
	}
	return *s.current, true
}

// CurrentRole returns the role of the session user. It reports false when
// there is no session or the role id is unknown.
func (s *Store) CurrentRole() (models.Role, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.Role{}, false
	}
	return models.FindRole(s.roles, s.current.RoleID)
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.users, func(u models.User) bool { return u.ID == id })
}

func (s *Store) uniqueIDLocked() string {
	for {
		id := s.newID()
		if s.indexLocked(id) < 0 {
			return id
		}
	}
}

// reconcileSessionLocked brings the session in line with the user list. It
// returns the resulting session and whether it differs from the previous one.
func (s *Store) reconcileSessionLocked() (*models.SessionUser, bool) {
	if s.current == nil {
		return nil, false
	}
	idx := s.indexLocked(s.current.ID)
	if idx < 0 {
		s.current = nil
		return nil, true
	}
	refreshed := s.users[idx].Redact()
	if refreshed == *s.current {
		return s.current, false
	}
	s.current = &refreshed
	return &refreshed, true
}

func (s *Store) notify(ctx context.Context, users []models.User) {
	s.listenersMu.Lock()
	listeners := slices.Clone(s.listeners)
	s.listenersMu.Unlock()

	for _, fn := range listeners {
		fn(ctx, slices.Clone(users))
	}
}
