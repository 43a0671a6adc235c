package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to
// operate. The real App type satisfies this interface; tests can provide
// a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Summary(ctx context.Context) error
	Export(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Deliver(ctx context.Context, args []string) error
	History(ctx context.Context, args []string) error
	Import(ctx context.Context, args []string) error
	Template(ctx context.Context, args []string) error
	Codes(ctx context.Context, args []string) error
}

// runREPL starts a read–eval–print loop over the tracker commands.
//
// It reads a line from the provided scanner, parses the first token as
// the command, and dispatches to methods on 'a'. Unknown commands are
// reported back to the user. The loop exits on scanner EOF or when the
// user types "exit" or "quit".
//
// Commands:
//
//	help                          — show available commands
//	login                         — unlock with an access code
//	logout                        — drop the current session
//	summary                       — per-category inventory overview
//	export <file>                 — write the summary to a CSV file
//	list <category> [filter]      — list cards with custody status
//	add <category>                — add a card interactively
//	delete <category> <id>        — delete a card and its history
//	deliver <category> <id>       — record a handover or a return
//	history <category> [id]       — delivery history of a card or category
//	import <category> <file>      — bulk-import cards from a CSV file
//	template <category> [file]    — print or save the import header row
//	codes [add|rm <id>]           — manage access codes
//	exit | quit                   — leave the program
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on
// I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("cardtrack> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: summary, export, list, add, delete, deliver, history, import, template, codes, login, logout, exit")
			printlnFn("Categories: module, master, maintenance, temporary")

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "summary":
			_ = a.Summary(ctx)

		case "export":
			_ = a.Export(ctx, args)

		case "l", "list":
			_ = a.List(ctx, args)

		case "add":
			_ = a.Add(ctx, args)

		case "delete":
			_ = a.Delete(ctx, args)

		case "deliver":
			_ = a.Deliver(ctx, args)

		case "history":
			_ = a.History(ctx, args)

		case "import":
			_ = a.Import(ctx, args)

		case "template":
			_ = a.Template(ctx, args)

		case "codes":
			_ = a.Codes(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
