package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/rbacdash/internal/access"
	"github.com/dmitrijs2005/rbacdash/internal/common"
	"github.com/dmitrijs2005/rbacdash/internal/credentials"
	"github.com/dmitrijs2005/rbacdash/internal/directory"
	"github.com/dmitrijs2005/rbacdash/internal/logging"
	"github.com/dmitrijs2005/rbacdash/internal/nav"
	"github.com/dmitrijs2005/rbacdash/internal/snapshot"
	"github.com/dmitrijs2005/rbacdash/internal/storage"
	"github.com/dmitrijs2005/rbacdash/internal/view"
)

type harness struct {
	app   *App
	store *directory.Store
	st    *storage.Storage
	out   *bytes.Buffer
}

// newHarness wires an App over in-memory storage. Each line of input
// answers one prompt.
func newHarness(t *testing.T, lines ...string) *harness {
	t.Helper()
	origTerm := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = origTerm })

	ctx := context.Background()
	st, err := storage.Open(ctx, storage.DriverMemory, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	store := directory.New(ctx, st.Slots(), credentials.Plain{}, logging.Discard())
	snapshot.New(st.Slots(), store, logging.Discard()).Mount(ctx)

	out := &bytes.Buffer{}
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	app := NewApp(Deps{
		Session:    store,
		Controller: view.New(store, logging.Discard()),
		Slots:      st,
		Seed:       directory.SeedUsers,
		Logger:     logging.Discard(),
	}, in, out)

	return &harness{app: app, store: store, st: st, out: out}
}

func (h *harness) login(t *testing.T, email, secret string) {
	t.Helper()
	require.True(t, h.store.Login(context.Background(), email, secret))
}

func TestLogin_Success_RedirectsToIntent(t *testing.T) {
	h := newHarness(t, "mod1@example.com", "mod123")
	ctx := context.Background()

	require.NoError(t, h.app.Goto(ctx, nav.PathRoles))
	assert.Equal(t, nav.PathLogin, h.app.Path())

	require.NoError(t, h.app.Login(ctx))

	assert.Equal(t, nav.PathRoles, h.app.Path())
	out := h.out.String()
	assert.Contains(t, out, "Signed in as Moderator")
	assert.Contains(t, out, "-> /roles")
	assert.Contains(t, out, "Users Count 3 total")
}

func TestLogin_Failure(t *testing.T) {
	h := newHarness(t, "admin@example.com", "wrong")

	err := h.app.Login(context.Background())

	require.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Contains(t, h.out.String(), "Invalid email or password")
	assert.False(t, h.app.isLoggedIn())
	assert.Equal(t, nav.PathLogin, h.app.Path())
}

func TestLogin_AlreadySignedIn(t *testing.T) {
	h := newHarness(t)
	h.login(t, "admin@example.com", "admin123")

	require.NoError(t, h.app.Login(context.Background()))
	assert.Equal(t, nav.PathHome, h.app.Path())
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	h.login(t, "admin@example.com", "admin123")

	require.NoError(t, h.app.Logout(context.Background()))

	assert.False(t, h.app.isLoggedIn())
	assert.Equal(t, nav.PathLogin, h.app.Path())
	assert.Contains(t, h.out.String(), "Signed out")
}

func TestWhoAmI(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.ErrorIs(t, h.app.WhoAmI(ctx), common.ErrUnauthorized)

	h.login(t, "user1@example.com", "user123")
	require.NoError(t, h.app.WhoAmI(ctx))
	assert.Contains(t, h.out.String(), "Regular User <user1@example.com> (User)")
}

func TestList_RequiresSession(t *testing.T) {
	h := newHarness(t)

	err := h.app.List(context.Background())

	require.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Equal(t, nav.PathLogin, h.app.Path())
	assert.Equal(t, nav.Intent{From: nav.PathHome}, h.app.intent)
}

func TestList_AdminSeesActions(t *testing.T) {
	h := newHarness(t)
	h.login(t, "admin@example.com", "admin123")

	require.NoError(t, h.app.List(context.Background()))

	out := h.out.String()
	assert.Contains(t, out, "Admin User <admin@example.com>")
	assert.Contains(t, out, "ACTIONS")
	assert.Contains(t, out, "edit delete")
	assert.Less(t, strings.Index(out, "Admin User  "), strings.Index(out, "Regular User"))
}

func TestList_ModeratorHasNoActions(t *testing.T) {
	h := newHarness(t)
	h.login(t, "mod1@example.com", "mod123")

	require.NoError(t, h.app.List(context.Background()))

	assert.NotContains(t, h.out.String(), "ACTIONS")
	assert.Contains(t, h.out.String(), "Active")
}

func TestRoles(t *testing.T) {
	h := newHarness(t)
	h.login(t, "mod1@example.com", "mod123")

	require.NoError(t, h.app.Roles(context.Background()))

	out := h.out.String()
	assert.Contains(t, out, "You can: view=yes add=yes edit=no delete=no")
	assert.Regexp(t, `1\s+Admin\s+no`, out)
	assert.Regexp(t, `2\s+Moderator\s+yes`, out)
}

func TestAdd_Success(t *testing.T) {
	h := newHarness(t, "Nina", "nina@example.com", "secret1", "", "")
	h.login(t, "mod1@example.com", "mod123")

	require.NoError(t, h.app.Add(context.Background()))

	users := h.store.Users()
	require.Len(t, users, 4)
	added := users[3]
	assert.Equal(t, "Nina", added.Name)
	assert.Equal(t, 2, added.RoleID, "first assignable role is the default")
	assert.True(t, added.IsActive)
	assert.Equal(t, view.ModalClosed, h.app.modal.State())

	cached, ok := snapshot.New(h.st.Slots(), h.store, logging.Discard()).Load(context.Background())
	require.True(t, ok)
	assert.Len(t, cached, 4)
}

func TestAdd_ValidationThenRetry(t *testing.T) {
	h := newHarness(t,
		"Nina", "not-an-email", "secret1", "3", "y",
		"y",
		"Nina", "nina@example.com", "abc12", "3", "y",
		"n",
	)
	h.login(t, "admin@example.com", "admin123")

	err := h.app.Add(context.Background())

	require.ErrorIs(t, err, common.ErrValidation)
	out := h.out.String()
	assert.Contains(t, out, view.MsgInvalidEmail)
	assert.Contains(t, out, view.MsgShortPassword)
	assert.Len(t, h.store.Users(), 3)
	assert.Equal(t, view.ModalClosed, h.app.modal.State())
}

func TestAdd_ForbiddenForUser(t *testing.T) {
	h := newHarness(t)
	h.login(t, "user1@example.com", "user123")

	err := h.app.Add(context.Background())

	require.ErrorIs(t, err, access.ErrForbidden)
	assert.Contains(t, h.out.String(), "You are not allowed to add users")
}

func TestEdit(t *testing.T) {
	h := newHarness(t, "2", "n")
	h.login(t, "admin@example.com", "admin123")

	require.NoError(t, h.app.Edit(context.Background(), "3"))

	u := h.store.Users()[2]
	assert.Equal(t, 2, u.RoleID)
	assert.False(t, u.IsActive)
	assert.Contains(t, h.out.String(), "Updated Regular User")
}

func TestEdit_DefaultsKeepValues(t *testing.T) {
	h := newHarness(t, "", "")
	h.login(t, "admin@example.com", "admin123")

	require.NoError(t, h.app.Edit(context.Background(), "2"))
	assert.Equal(t, directory.SeedUsers(), h.store.Users())
}

func TestEdit_UnknownID(t *testing.T) {
	h := newHarness(t)
	h.login(t, "admin@example.com", "admin123")

	require.ErrorIs(t, h.app.Edit(context.Background(), "42"), common.ErrNotFound)
	assert.Contains(t, h.out.String(), "No such user")
}

func TestDelete_ModeratorRefused(t *testing.T) {
	h := newHarness(t)
	h.login(t, "mod1@example.com", "mod123")

	err := h.app.Delete(context.Background(), "1")

	require.ErrorIs(t, err, access.ErrForbidden)
	assert.Len(t, h.store.Users(), 3)
}

func TestDelete(t *testing.T) {
	h := newHarness(t)
	h.login(t, "admin@example.com", "admin123")
	ctx := context.Background()

	require.NoError(t, h.app.Delete(ctx, "3"))
	assert.Len(t, h.store.Users(), 2)
	assert.Contains(t, h.out.String(), "Deleted Regular User")

	require.NoError(t, h.app.Delete(ctx, "3"))
	assert.Contains(t, h.out.String(), "No such user")
}

func TestDelete_SelfSignsOut(t *testing.T) {
	h := newHarness(t)
	h.login(t, "admin@example.com", "admin123")

	require.NoError(t, h.app.Delete(context.Background(), "1"))

	assert.False(t, h.app.isLoggedIn())
	assert.Equal(t, nav.PathLogin, h.app.Path())
	assert.Contains(t, h.out.String(), "signed out")
}

func TestSlots(t *testing.T) {
	h := newHarness(t)
	h.login(t, "admin@example.com", "admin123")

	require.NoError(t, h.app.Slots(context.Background()))

	out := h.out.String()
	assert.Contains(t, out, "SLOT")
	assert.Regexp(t, `rbac-storage\s+\d+ B`, out)
	assert.Regexp(t, `users\s+\d+ B`, out)
}

func TestReset(t *testing.T) {
	h := newHarness(t, "y")
	h.login(t, "admin@example.com", "admin123")
	ctx := context.Background()
	h.store.DeleteUser(ctx, "3")

	require.NoError(t, h.app.Reset(ctx))

	assert.False(t, h.app.isLoggedIn())
	assert.Len(t, h.store.Users(), 3)
	assert.Equal(t, nav.PathLogin, h.app.Path())
}

func TestReset_Declined(t *testing.T) {
	h := newHarness(t, "")
	h.login(t, "admin@example.com", "admin123")

	require.NoError(t, h.app.Reset(context.Background()))
	assert.True(t, h.app.isLoggedIn())
}

func TestRun_EndToEnd(t *testing.T) {
	captureOutput(t)
	h := newHarness(t,
		"login", "mod1@example.com", "mod123",
		"delete 1",
		"whoami",
		"exit",
	)

	h.app.Run(context.Background())

	out := h.out.String()
	assert.Contains(t, out, "Welcome to the RBAC dashboard")
	assert.Contains(t, out, "Please sign in with 'login'")
	assert.Contains(t, out, "Signed in as Moderator")
	assert.Contains(t, out, "You are not allowed to delete users")
	assert.Contains(t, out, "Moderator <mod1@example.com> (Moderator)")
	assert.Len(t, h.store.Users(), 3)
}
