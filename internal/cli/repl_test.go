package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) record(s string) error { f.calls = append(f.calls, s); return nil }

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) WhoAmI(context.Context) error            { return f.record("whoami") }
func (f *fakeExec) Goto(_ context.Context, p string) error  { return f.record("goto " + p) }
func (f *fakeExec) List(context.Context) error              { return f.record("list") }
func (f *fakeExec) Roles(context.Context) error             { return f.record("roles") }
func (f *fakeExec) Add(context.Context) error               { return f.record("add") }
func (f *fakeExec) Edit(_ context.Context, id string) error { return f.record("edit " + id) }
func (f *fakeExec) Delete(_ context.Context, id string) error {
	return f.record("delete " + id)
}
func (f *fakeExec) Slots(context.Context) error { return f.record("slots") }
func (f *fakeExec) Reset(context.Context) error { return f.record("reset") }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var out []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i], _ = v.(string)
		}
		out = append(out, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &out
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	out := captureOutput(t)

	input := strings.Join([]string{
		"help",
		"login",
		"help",
		"",
		"whoami",
		"goto /roles",
		"l",
		"roles",
		"add",
		"edit 3",
		"rm 2",
		"slots",
		"reset",
		"logout",
		"foobar",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(/)" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{
		"login", "whoami", "goto /roles", "list", "roles", "add", "edit 3",
		"delete 2", "slots", "reset", "logout",
	}, exec.calls)
	assert.Contains(t, *out, "Available commands: login, goto <path>, slots, reset, exit")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "Bye!")
	assert.Contains(t, *out, "rbac (/)> ")
}

func TestRunREPL_UsageErrors(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{}
	input := "goto\nedit\ndelete 1 2\n"
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader(input)))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Usage: goto <path>")
	assert.Contains(t, *out, "Usage: edit <id>")
	assert.Contains(t, *out, "Usage: delete <id>")
}

func TestRunREPL_StopsOnEOFWithoutNewline(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("whoami")))

	assert.Equal(t, []string{"whoami"}, exec.calls)
}
