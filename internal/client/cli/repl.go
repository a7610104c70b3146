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
	List(ctx context.Context) error
	More(ctx context.Context) error
	Refresh(ctx context.Context) error
	Images(ctx context.Context) error
	Delete(ctx context.Context, args []string) error
	Invalidate(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the gallery CLI.
//
// It reads a line, parses the first token as the command, and dispatches to
// methods on 'a'. Unknown commands are reported back to the user. The loop
// exits on scanner EOF or when the user types "exit" or "quit".
//
// Commands:
//
//	help            — show available commands
//	register        — create an account
//	login           — authenticate (required for delete)
//	list            — print the visible feed
//	more            — load the next page (viewport-proximity stand-in)
//	refresh         — forced list refresh
//	images          — force image re-resolution
//	delete <id>...  — delete one entry, or a batch when several ids are given
//	invalidate      — wipe the durable caches
//	exit | quit     — leave the program
//
// Errors returned by command handlers are ignored here; handlers log their
// own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("iw> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			printlnFn("Available commands: register, login, list, more, refresh, images, delete <id>..., invalidate, exit")
		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "list", "l":
			_ = a.List(ctx)
		case "more", "m":
			_ = a.More(ctx)
		case "refresh", "r":
			_ = a.Refresh(ctx)
		case "images":
			_ = a.Images(ctx)
		case "delete", "del":
			_ = a.Delete(ctx, parts[1:])
		case "invalidate":
			_ = a.Invalidate(ctx)
		case "exit", "quit":
			return
		default:
			printlnFn(fmt.Sprintf("Unknown command: %s", cmd))
		}
	}
}
