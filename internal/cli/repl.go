package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Goto(ctx context.Context, path string) error
	List(ctx context.Context) error
	Roles(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Slots(ctx context.Context) error
	Reset(ctx context.Context) error
}

// runREPL reads commands from reader and dispatches them to a until EOF or
// "exit"/"quit". Handler errors are reported by the handlers themselves.
//
// Commands are read from the same reader the handlers prompt on, so a
// handler's questions consume the lines that follow its command.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("rbac %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, goto <path>, (l)ist, roles, add, edit <id>, delete <id>, slots, reset, logout, exit")
			} else {
				printlnFn("Available commands: login, goto <path>, slots, reset, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "goto", "cd":
			if len(args) != 1 {
				printlnFn("Usage: goto <path>")
				continue
			}
			_ = a.Goto(ctx, args[0])

		case "l", "list":
			_ = a.List(ctx)

		case "roles":
			_ = a.Roles(ctx)

		case "add":
			_ = a.Add(ctx)

		case "edit":
			if len(args) != 1 {
				printlnFn("Usage: edit <id>")
				continue
			}
			_ = a.Edit(ctx, args[0])

		case "delete", "rm":
			if len(args) != 1 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "slots":
			_ = a.Slots(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
