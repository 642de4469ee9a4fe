package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Profile(ctx context.Context) error
	Avatar(ctx context.Context, path string) error
	Groups(ctx context.Context) error
	Exercises(ctx context.Context, group string) error
	Exercise(ctx context.Context, id string) error
	Done(ctx context.Context, id string) error
	History(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the IgniteGym CLI.
//
// It reads a line from reader, parses the first token as the
// command, and dispatches to methods on 'a'. Commands that need a session
// are refused while signed out. Command handlers read their form input from
// the same reader, so nothing is buffered ahead of them. The loop exits on
// EOF, when ctx is done, or when the user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; the core has
// already reported them through the notifier.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("gym> %s > ", statusFn()))
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
				printlnFn("Available commands: whoami, profile, avatar <path>, groups, exercises <group>, exercise <id>, done <id>, history, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "register":
			_ = a.Register(ctx)
			continue
		case "login":
			_ = a.Login(ctx)
			continue
		case "whoami":
			_ = a.WhoAmI(ctx)
			continue
		}

		if !knownCommand(cmd) {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if !a.isLoggedIn() {
			printlnFn("Please login first")
			continue
		}

		switch cmd {
		case "logout":
			_ = a.Logout(ctx)
		case "profile":
			_ = a.Profile(ctx)
		case "groups":
			_ = a.Groups(ctx)
		case "history":
			_ = a.History(ctx)
		case "avatar", "exercises", "exercise", "done":
			if len(args) == 0 {
				printlnFn(usage[cmd])
				continue
			}
			arg := strings.Join(args, " ")
			switch cmd {
			case "avatar":
				_ = a.Avatar(ctx, arg)
			case "exercises":
				_ = a.Exercises(ctx, arg)
			case "exercise":
				_ = a.Exercise(ctx, arg)
			case "done":
				_ = a.Done(ctx, arg)
			}
		}
	}
}

var usage = map[string]string{
	"avatar":    "Usage: avatar <path>",
	"exercises": "Usage: exercises <group>",
	"exercise":  "Usage: exercise <id>",
	"done":      "Usage: done <id>",
}

func knownCommand(cmd string) bool {
	switch cmd {
	case "logout", "profile", "groups", "history", "avatar", "exercises", "exercise", "done":
		return true
	}
	return false
}
