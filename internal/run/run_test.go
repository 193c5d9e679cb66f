package run

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eduardofuncao/pgx/internal/command"
	"github.com/eduardofuncao/pgx/internal/env"
)

func TestModeOf(t *testing.T) {
	require.Equal(t, Interactive, ModeOf(Request{}))
	require.Equal(t, Execute, ModeOf(Request{SQL: "SELECT 1"}))
	require.Equal(t, Execute, ModeOf(Request{File: "q.sql"}))
	require.Equal(t, "interactive", Interactive.String())
}

func TestResolveSQL(t *testing.T) {
	require.Equal(t, "SELECT 2", ResolveSQL(Request{SQL: "SELECT 1", File: "q.sql", FileSQL: "SELECT 2"}))
	require.Equal(t, "SELECT 1", ResolveSQL(Request{SQL: "SELECT 1", File: "empty.sql"}))
	require.Equal(t, "SELECT 1", ResolveSQL(Request{SQL: "SELECT 1"}))
}

func TestFilterExpression(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want string
	}{
		{
			name: "explicit filter",
			req:  Request{SQL: "SELECT 1", Filter: ".[0]"},
			want: ".[0]",
		},
		{
			name: "default filter",
			req:  Request{SQL: "SELECT 1"},
			want: ".",
		},
		{
			name: "file makes the first positional the filter",
			req:  Request{File: "q.sql", SQL: ".[].id", Filter: ".ignored"},
			want: ".[].id",
		},
		{
			name: "file without positionals",
			req:  Request{File: "q.sql", Filter: ".ignored"},
			want: ".",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FilterExpression(tt.req))
		})
	}
}

func TestIsSelectQuery(t *testing.T) {
	tests := []struct {
		sql  string
		want bool
	}{
		{"SELECT 1", true},
		{"  with x as (select 1) select * from x", true},
		{"-- comment\nSELECT 1", true},
		{"VALUES (1), (2)", true},
		{"INSERT INTO t VALUES (1)", false},
		{"update t set a = 1", false},
		{"-- only a comment", false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, IsSelectQuery(tt.sql), tt.sql)
	}
}

func newShell(stdout, stderr *bytes.Buffer) Shell {
	return Shell{Path: "/bin/sh", Stdin: strings.NewReader(""), Stdout: stdout, Stderr: stderr}
}

func TestShellCaptureHeredoc(t *testing.T) {
	require := require.New(t)

	var stdout, stderr bytes.Buffer
	shell := newShell(&stdout, &stderr)

	// a shell function stands in for the client and ignores its flags
	q := command.Format("f() { cat; }; f", "SELECT $1", []string{"42"}, true)
	out, err := ShellExecutor{Shell: shell}.Execute(context.Background(), q)
	require.NoError(err)
	require.Equal("SELECT 42\n", string(out))
	require.Empty(stdout.String())
}

func TestShellCaptureKeepsOutputOnFailure(t *testing.T) {
	require := require.New(t)

	var stdout, stderr bytes.Buffer
	out, err := ShellExecutor{Shell: newShell(&stdout, &stderr)}.Execute(
		context.Background(),
		command.Query{Command: "echo partial; echo oops >&2; exit 3"},
	)
	require.Error(err)
	require.True(IsExitError(err))
	require.Equal(3, ExitCode(err))
	require.Equal("partial\n", string(out))
	require.Equal("oops\n", stderr.String())
}

func TestShellExecutorLaunchFailure(t *testing.T) {
	var stdout, stderr bytes.Buffer
	shell := newShell(&stdout, &stderr)
	shell.Path = "/nonexistent/sh"

	_, err := ShellExecutor{Shell: shell}.Execute(context.Background(), command.Query{Command: "true"})
	require.Error(t, err)
	require.False(t, IsExitError(err))
	require.Equal(t, 1, ExitCode(err))
}

func TestShellAttach(t *testing.T) {
	var stdout, stderr bytes.Buffer
	shell := newShell(&stdout, &stderr)
	shell.Stdin = strings.NewReader("from stdin\n")

	require.NoError(t, shell.Attach(context.Background(), "cat"))
	require.Equal(t, "from stdin\n", stdout.String())
}

func TestExitCode(t *testing.T) {
	require.Equal(t, 0, ExitCode(nil))
	require.Equal(t, 1, ExitCode(errors.New("boom")))

	err := exec.Command("/bin/sh", "-c", "exit 7").Run()
	require.Equal(t, 7, ExitCode(err))
	require.Equal(t, 7, ExitCode(errors.Join(errors.New("wrapped"), err)))
}

func TestPrinterRaw(t *testing.T) {
	var stdout bytes.Buffer
	p := Printer{FilterTool: "false", Stdout: &stdout}

	require.NoError(t, p.Print(context.Background(), Request{NoJQ: true}, []byte(` [{"x":1}]`)))
	require.Equal(t, " [{\"x\":1}]\n", stdout.String())

	stdout.Reset()
	require.NoError(t, p.Print(context.Background(), Request{NoJSON: true}, []byte("1")))
	require.Equal(t, "1\n", stdout.String())
}

func TestPrinterFilter(t *testing.T) {
	require := require.New(t)

	// the filter tool receives the expression as its only argument and the
	// result on stdin
	var stdout, stderr bytes.Buffer
	p := Printer{FilterTool: "/bin/sh", Stdout: &stdout, Stderr: &stderr}

	err := p.Print(context.Background(), Request{SQL: "SELECT 1", Filter: "-c"}, []byte("ignored"))
	// "sh -c" without a command string fails
	require.Error(err)
	require.True(IsExitError(err))

	stdout.Reset()
	p.FilterTool = "cat"
	err = p.Print(context.Background(), Request{SQL: "SELECT 1", Filter: "-"}, []byte(`[{"x":1}]`))
	require.NoError(err)
	require.Equal(`[{"x":1}]`, stdout.String())
}

func TestPrinterFilterMissingTool(t *testing.T) {
	p := Printer{FilterTool: "/nonexistent/jq", Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	err := p.Filter(context.Background(), nil, ".")
	require.Error(t, err)
	require.False(t, IsExitError(err))
}

func TestDSN(t *testing.T) {
	tests := []struct {
		name    string
		creds   env.Credentials
		sslMode string
		want    string
	}{
		{
			name:  "tcp host",
			creds: env.Credentials{Host: "db.internal", User: "alice", Database: "exm-staging"},
			want:  "host='db.internal' user='alice' dbname='exm-staging'",
		},
		{
			name:    "ssl mode",
			creds:   env.Credentials{Host: "db.internal", User: "alice", Database: "exm-staging"},
			sslMode: "disable",
			want:    "host='db.internal' user='alice' dbname='exm-staging' sslmode='disable'",
		},
		{
			name:  "socket directory",
			creds: env.Credentials{Host: "/var/run/postgresql", User: "alice", Database: "exm-development"},
			want:  "host='/var/run/postgresql' user='alice' dbname='exm-development'",
		},
		{
			name:  "quotes are escaped and empty values dropped",
			creds: env.Credentials{Host: "db", User: `o'brien\x`},
			want:  `host='db' user='o\'brien\\x'`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DSN(tt.creds, tt.sslMode))
		})
	}
}

func TestNativeExecutorConnectionError(t *testing.T) {
	require := require.New(t)
	t.Setenv("PGPORT", "1")
	t.Setenv("PGCONNECT_TIMEOUT", "2")

	e := NativeExecutor{
		Creds:   env.Credentials{Host: "127.0.0.1", User: "alice", Database: "exm-development"},
		SSLMode: "disable",
	}
	out, err := e.Execute(context.Background(), command.Format("", "SELECT 1", nil, true))
	require.Error(err)
	require.False(IsExitError(err))
	require.Equal(1, ExitCode(err))
	require.Nil(out)
}

func TestWriteTuples(t *testing.T) {
	var b strings.Builder
	writeTuples(&b, [][]sql.NullString{
		{{String: "1", Valid: true}, {String: "alice", Valid: true}},
		{{String: "2", Valid: true}, {}},
	})
	require.Equal(t, "1 | alice\n2 | \n", b.String())
}
