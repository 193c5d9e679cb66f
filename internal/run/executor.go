package run

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/sirupsen/logrus"

	"github.com/eduardofuncao/pgx/internal/command"
)

// Shell runs command text through a POSIX shell.
type Shell struct {
	Path   string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (s Shell) command(ctx context.Context, text string) *exec.Cmd {
	return exec.CommandContext(ctx, s.Path, "-c", text)
}

// Attach runs text with the standard streams connected, for an interactive
// client session.
func (s Shell) Attach(ctx context.Context, text string) error {
	cmd := s.command(ctx, text)
	cmd.Stdin = s.Stdin
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr
	return cmd.Run()
}

// Capture runs text and returns what it wrote to stdout. Stderr is passed
// through untouched. The output is returned even when the command exits
// with a non-zero status.
func (s Shell) Capture(ctx context.Context, text string) ([]byte, error) {
	var out bytes.Buffer
	cmd := s.command(ctx, text)
	cmd.Stdin = s.Stdin
	cmd.Stdout = &out
	cmd.Stderr = s.Stderr
	err := cmd.Run()
	return out.Bytes(), err
}

// Executor runs a formatted query and returns the raw client output.
type Executor interface {
	Execute(ctx context.Context, q command.Query) ([]byte, error)
}

// ShellExecutor runs the heredoc command through the shell.
type ShellExecutor struct {
	Shell Shell
}

func (e ShellExecutor) Execute(ctx context.Context, q command.Query) ([]byte, error) {
	logrus.WithField("shell", e.Shell.Path).Debug("running client command")
	out, err := e.Shell.Capture(ctx, q.Command)
	if err != nil {
		if IsExitError(err) {
			return out, err
		}
		return nil, fmt.Errorf("could not run client: %w", err)
	}
	return out, nil
}
