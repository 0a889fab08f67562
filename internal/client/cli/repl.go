package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	syncRoute(ctx context.Context)

	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	Dashboard(ctx context.Context) error
	Journal(ctx context.Context) error
	List(ctx context.Context, args []string) error
	ShowEntry(ctx context.Context, args []string) error
	EditEntry(ctx context.Context, args []string) error
	DeleteEntry(ctx context.Context, args []string) error
	Followup(ctx context.Context, args []string) error
	Companion(ctx context.Context, args []string) error
	Patterns(ctx context.Context) error
	Analytics(ctx context.Context, args []string) error
}

const (
	helpAnonymous = "Available commands: signup, login, help, exit"
	helpLoggedIn  = "Available commands: dashboard, journal, list [limit] [offset], entry <id>, edit <id>, " +
		"delete <id>, followup <id>, companion <id>, patterns, analytics [days], whoami, logout, help, exit"
)

// runREPL starts a simple read–eval–print loop for the moodjournal CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help                   - show available commands
//	  - signup | register      - create an account
//	  - login                  - authenticate
//	  - exit | quit            - leave the program
//
//	Logged in:
//	  - dashboard              - summary and the most recent entries
//	  - journal                - write a new entry
//	  - list [limit] [offset]  - list entries, newest first
//	  - entry <id>             - show an entry with its follow-ups
//	  - edit <id>              - change an entry
//	  - delete <id>            - delete an entry
//	  - followup <id>          - ask the AI for a follow-up question
//	  - companion <id>         - full AI companion reading of an entry
//	  - patterns               - AI analysis across all entries
//	  - analytics [days]       - mood statistics and trends
//	  - whoami                 - show the current user
//	  - logout                 - log out
//
// Command handlers report their own errors to the user, so errors are ignored
// here. After every command pending forced logouts are applied.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("mj %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
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
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "signup", "register":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "dashboard", "home":
			_ = a.Dashboard(ctx)

		case "journal", "new":
			_ = a.Journal(ctx)

		case "l", "list":
			_ = a.List(ctx, args)

		case "entry", "show":
			_ = a.ShowEntry(ctx, args)

		case "edit":
			_ = a.EditEntry(ctx, args)

		case "delete":
			_ = a.DeleteEntry(ctx, args)

		case "followup":
			_ = a.Followup(ctx, args)

		case "companion":
			_ = a.Companion(ctx, args)

		case "patterns":
			_ = a.Patterns(ctx)

		case "analytics":
			_ = a.Analytics(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		a.syncRoute(ctx)
	}
}
