package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	admin    bool

	calls []string
}

func (f *fakeExec) record(s string) error {
	f.calls = append(f.calls, s)
	return nil
}

func (f *fakeExec) isLoggedIn() bool {
	return f.loggedIn
}

func (f *fakeExec) isAdmin() bool {
	return f.admin
}

func (f *fakeExec) Register(context.Context) error {
	return f.record("register")
}

func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}

func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}

func (f *fakeExec) List(context.Context) error {
	return f.record("list")
}

func (f *fakeExec) Filter(context.Context) error {
	return f.record("filter")
}

func (f *fakeExec) Reset(context.Context) error {
	return f.record("reset")
}

func (f *fakeExec) Show(_ context.Context, id int64) error {
	return f.record(fmt.Sprint("show ", id))
}

func (f *fakeExec) Buy(_ context.Context, id int64) error {
	return f.record(fmt.Sprint("buy ", id))
}

func (f *fakeExec) History(context.Context) error {
	return f.record("history")
}

func (f *fakeExec) Receipt(_ context.Context, id int64) error {
	return f.record(fmt.Sprint("receipt ", id))
}

func (f *fakeExec) Export(_ context.Context, path string) error {
	return f.record("export " + path)
}

func (f *fakeExec) Add(context.Context) error {
	return f.record("add")
}

func (f *fakeExec) Edit(_ context.Context, id int64) error {
	return f.record(fmt.Sprint("edit ", id))
}

func (f *fakeExec) Delete(_ context.Context, id int64) error {
	return f.record(fmt.Sprint("delete ", id))
}

func (f *fakeExec) Restock(_ context.Context, id int64) error {
	return f.record(fmt.Sprint("restock ", id))
}

func (f *fakeExec) Stats(context.Context) error {
	return f.record("stats")
}

func (f *fakeExec) Sales(_ context.Context, s, e string) error {
	return f.record("sales " + s + " " + e)
}

func (f *fakeExec) ToggleAdmin(context.Context) error {
	return f.record("admin")
}

// capturePrints swaps printlnFn for a recorder.
func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func run(exec *fakeExec, lines ...string) {
	reader := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "status" }, reader)
}

func TestRunREPL_GuestCanOnlyAuthenticate(t *testing.T) {
	out := capturePrints(t)
	exec := &fakeExec{}

	run(exec, "help", "list", "buy 1", "register", "exit")

	assert.Equal(t, []string{"register"}, exec.calls)
	assert.Contains(t, *out, guestHelp)
	assert.Contains(t, *out, "Please login first")
	assert.Contains(t, *out, "Bye!")
}

func TestRunREPL_CustomerCommands(t *testing.T) {
	out := capturePrints(t)
	exec := &fakeExec{}

	run(exec,
		"login",
		"help",
		"list",
		"filter",
		"reset",
		"show 3",
		"BUY 4",
		"history",
		"receipt 9",
		"export out.html",
		"delete 4",
		"stats",
		"login",
		"logout",
		"quit",
	)

	assert.Equal(t, []string{
		"login", "list", "filter", "reset", "show 3", "buy 4",
		"history", "receipt 9", "export out.html", "logout",
	}, exec.calls)
	assert.Contains(t, *out, userHelp)
	assert.NotContains(t, *out, adminHelp)
	assert.Contains(t, *out, "This command requires administrator privileges")
	assert.Contains(t, *out, "Already logged in; use logout first")
}

func TestRunREPL_AdminCommands(t *testing.T) {
	out := capturePrints(t)
	exec := &fakeExec{loggedIn: true, admin: true}

	run(exec, "help", "admin", "add", "edit 2", "delete 2", "restock 2", "stats", "sales 2024-01-01 2024-02-01", "exit")

	assert.Equal(t, []string{
		"admin", "add", "edit 2", "delete 2", "restock 2", "stats", "sales 2024-01-01 2024-02-01",
	}, exec.calls)
	assert.Contains(t, *out, adminHelp)
}

func TestRunREPL_UsageAndBadIDs(t *testing.T) {
	out := capturePrints(t)
	exec := &fakeExec{loggedIn: true, admin: true}

	run(exec, "buy", "show abc", "delete -1", "sales 2024-01-01", "export", "frobnicate", "", "exit")

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Usage: buy <id>")
	assert.Contains(t, *out, "Invalid id: abc")
	assert.Contains(t, *out, "Invalid id: -1")
	assert.Contains(t, *out, "Usage: sales <start YYYY-MM-DD> <end YYYY-MM-DD>")
	assert.Contains(t, *out, "Usage: export <file>")
	assert.Contains(t, *out, "Unknown command: frobnicate")
}

func TestRunREPL_StopsAtEOFAndCancel(t *testing.T) {
	capturePrints(t)

	exec := &fakeExec{loggedIn: true}
	run(exec, "list")
	assert.Equal(t, []string{"list"}, exec.calls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec = &fakeExec{loggedIn: true}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("list\n")))
	assert.Empty(t, exec.calls)
}
