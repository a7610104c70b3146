package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubExec struct {
	calls      []string
	deleteArgs []string
}

func (s *stubExec) isLoggedIn() bool { return false }

func (s *stubExec) Register(ctx context.Context) error {
	s.calls = append(s.calls, "register")
	return nil
}

func (s *stubExec) Login(ctx context.Context) error {
	s.calls = append(s.calls, "login")
	return nil
}

func (s *stubExec) List(ctx context.Context) error {
	s.calls = append(s.calls, "list")
	return nil
}

func (s *stubExec) More(ctx context.Context) error {
	s.calls = append(s.calls, "more")
	return nil
}

func (s *stubExec) Refresh(ctx context.Context) error {
	s.calls = append(s.calls, "refresh")
	return nil
}

func (s *stubExec) Images(ctx context.Context) error {
	s.calls = append(s.calls, "images")
	return nil
}

func (s *stubExec) Delete(ctx context.Context, args []string) error {
	s.calls = append(s.calls, "delete")
	s.deleteArgs = args
	return nil
}

func (s *stubExec) Invalidate(ctx context.Context) error {
	s.calls = append(s.calls, "invalidate")
	return nil
}

func runScript(t *testing.T, script string) (*stubExec, []string) {
	t.Helper()

	var output []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		for _, v := range a {
			output = append(output, v.(string))
		}
		return 0, nil
	}
	defer func() { printlnFn = orig }()

	stub := &stubExec{}
	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), stub, func() string { return "guest" }, scanner)
	return stub, output
}

func TestREPL_DispatchesCommands(t *testing.T) {
	stub, _ := runScript(t, "register\nlogin\nlist\nmore\nrefresh\nimages\ninvalidate\nexit\n")
	assert.Equal(t, []string{"register", "login", "list", "more", "refresh", "images", "invalidate"}, stub.calls)
}

func TestREPL_ShortAliases(t *testing.T) {
	stub, _ := runScript(t, "l\nm\nr\nquit\n")
	assert.Equal(t, []string{"list", "more", "refresh"}, stub.calls)
}

func TestREPL_DeletePassesIDs(t *testing.T) {
	stub, _ := runScript(t, "delete 5 3 1\nexit\n")
	assert.Equal(t, []string{"delete"}, stub.calls)
	assert.Equal(t, []string{"5", "3", "1"}, stub.deleteArgs)
}

func TestREPL_UnknownCommand(t *testing.T) {
	stub, output := runScript(t, "dance\nexit\n")
	assert.Empty(t, stub.calls)
	assert.Contains(t, output, "Unknown command: dance")
}

func TestREPL_BlankLinesIgnored(t *testing.T) {
	stub, _ := runScript(t, "\n   \nexit\n")
	assert.Empty(t, stub.calls)
}

func TestREPL_ExitsOnEOF(t *testing.T) {
	stub, _ := runScript(t, "list\n")
	assert.Equal(t, []string{"list"}, stub.calls)
}
