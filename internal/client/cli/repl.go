package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/sweetshop/internal/logging"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL needs. App satisfies it; tests
// provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	List(ctx context.Context) error
	Filter(ctx context.Context) error
	Reset(ctx context.Context) error
	Show(ctx context.Context, id int64) error
	Buy(ctx context.Context, id int64) error
	History(ctx context.Context) error
	Receipt(ctx context.Context, id int64) error
	Export(ctx context.Context, path string) error

	Add(ctx context.Context) error
	Edit(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	Restock(ctx context.Context, id int64) error
	Stats(ctx context.Context) error
	Sales(ctx context.Context, start, end string) error
	ToggleAdmin(ctx context.Context) error
}

const (
	guestHelp = "Available commands: register, login, help, exit"
	userHelp  = "Available commands: list, filter, reset, show <id>, buy <id>, history, receipt <id>, export <file>, logout, help, exit"
	adminHelp = "Admin commands: admin, add, edit <id>, delete <id>, restock <id>, stats, sales <start> <end>"
)

type command struct {
	args  int
	usage string
	admin bool
	run   func(ctx context.Context, a execIface, args []string) error
}

func withID(fn func(execIface, context.Context, int64) error) func(context.Context, execIface, []string) error {
	return func(ctx context.Context, a execIface, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			printlnFn("Invalid id:", args[0])
			return nil
		}
		return fn(a, ctx, id)
	}
}

func noArgs(fn func(execIface, context.Context) error) func(context.Context, execIface, []string) error {
	return func(ctx context.Context, a execIface, _ []string) error { return fn(a, ctx) }
}

// commands available once logged in
var commands = map[string]command{
	"list":    {run: noArgs(execIface.List)},
	"l":       {run: noArgs(execIface.List)},
	"filter":  {run: noArgs(execIface.Filter)},
	"reset":   {run: noArgs(execIface.Reset)},
	"show":    {args: 1, usage: "show <id>", run: withID(execIface.Show)},
	"buy":     {args: 1, usage: "buy <id>", run: withID(execIface.Buy)},
	"history": {run: noArgs(execIface.History)},
	"receipt": {args: 1, usage: "receipt <id>", run: withID(execIface.Receipt)},
	"export": {args: 1, usage: "export <file>", run: func(ctx context.Context, a execIface, args []string) error {
		return a.Export(ctx, args[0])
	}},
	"logout": {run: noArgs(execIface.Logout)},

	"admin":   {admin: true, run: noArgs(execIface.ToggleAdmin)},
	"add":     {admin: true, run: noArgs(execIface.Add)},
	"edit":    {admin: true, args: 1, usage: "edit <id>", run: withID(execIface.Edit)},
	"delete":  {admin: true, args: 1, usage: "delete <id>", run: withID(execIface.Delete)},
	"restock": {admin: true, args: 1, usage: "restock <id>", run: withID(execIface.Restock)},
	"stats":   {admin: true, run: noArgs(execIface.Stats)},
	"sales": {admin: true, args: 2, usage: "sales <start YYYY-MM-DD> <end YYYY-MM-DD>", run: func(ctx context.Context, a execIface, args []string) error {
		return a.Sales(ctx, args[0], args[1])
	}},
}

// runREPL reads commands line by line from reader and dispatches them to a.
// It returns on EOF, on "exit"/"quit" or when ctx is done. Handler errors
// are not fatal: handlers report their own failures.
//
//	Not logged in: help, register, login, exit | quit
//	Logged in:     help, list, filter, reset, show <id>, buy <id>, history,
//	               receipt <id>, export <file>, logout, exit | quit
//	Admins:        admin, add, edit <id>, delete <id>, restock <id>, stats,
//	               sales <start> <end>
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("sweetshop [%s]> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := strings.ToLower(parts[0]), parts[1:]
		cmdCtx := logging.ContextWith(ctx, "command", name)

		switch name {
		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "help":
			printHelp(a)
			continue

		case "login", "register":
			if a.isLoggedIn() {
				printlnFn("Already logged in; use logout first")
				continue
			}
			if name == "login" {
				_ = a.Login(cmdCtx)
			} else {
				_ = a.Register(cmdCtx)
			}
			continue
		}

		cmd, ok := commands[name]
		switch {
		case !ok:
			printlnFn("Unknown command:", name)
		case !a.isLoggedIn():
			printlnFn("Please login first")
		case cmd.admin && !a.isAdmin():
			printlnFn("This command requires administrator privileges")
		case len(args) < cmd.args:
			printlnFn("Usage:", cmd.usage)
		default:
			_ = cmd.run(cmdCtx, a, args)
		}
	}
}

func printHelp(a execIface) {
	switch {
	case !a.isLoggedIn():
		printlnFn(guestHelp)
	case a.isAdmin():
		printlnFn(userHelp)
		printlnFn(adminHelp)
	default:
		printlnFn(userHelp)
	}
}
