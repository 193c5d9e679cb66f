package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/sirupsen/logrus"
	"gopkg.in/src-d/go-errors.v1"

	"github.com/eduardofuncao/pgx/internal/command"
	"github.com/eduardofuncao/pgx/internal/config"
	"github.com/eduardofuncao/pgx/internal/editor"
	"github.com/eduardofuncao/pgx/internal/env"
	"github.com/eduardofuncao/pgx/internal/params"
	"github.com/eduardofuncao/pgx/internal/run"
	"github.com/eduardofuncao/pgx/internal/spinner"
	"github.com/eduardofuncao/pgx/internal/styles"
)

// ErrEmptySQL is returned when editing leaves nothing to run.
var ErrEmptySQL = errors.NewKind("empty SQL, cancelled")

// continueSignal tells the calling wrapper to re-invoke pgx without --bash.
const continueSignal = "continue"

type App struct {
	config *config.Config
	lookup env.LookupFunc

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	copyText func(string) error
	prompt   func(sql string, markers []int) (map[int]string, error)
	edit     func(sql string) (string, error)
	spin     func() (stop func())
}

func NewApp(cfg *config.Config) *App {
	return &App{
		config:   cfg,
		lookup:   os.LookupEnv,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		copyText: clipboard.WriteAll,
		prompt:   params.Collect,
		edit: func(sql string) (string, error) {
			return editor.EditTempFile(editor.Command(), sql, "pgx-")
		},
		spin: func() func() {
			return spinner.Start(os.Stderr)
		},
	}
}

func (a *App) shell() run.Shell {
	return run.Shell{
		Path:   a.config.Shell,
		Stdin:  a.stdin,
		Stdout: a.stdout,
		Stderr: a.stderr,
	}
}

// Run executes one invocation and returns the exit code. A non-nil error
// should be reported to the user; subprocess exit statuses are carried by
// the code alone.
func (a *App) Run(ctx context.Context, opts *Options) (int, error) {
	if opts.WriteConfig {
		return a.writeConfig(opts.configPath())
	}

	req := opts.Request(a.config.DefaultEnvironment)
	mode := run.ModeOf(req)

	// The wrapper only asks for a command to exec in interactive mode, any
	// other invocation can be run as is.
	if req.Bash && mode == run.Execute {
		return a.println(continueSignal)
	}

	settings, err := env.Load(a.config, req.Environment, a.lookup)
	if err != nil {
		return 1, err
	}
	creds := settings.Merge(req.Overrides)
	conn := command.Connection(a.config.Client, creds)

	logrus.WithFields(logrus.Fields{
		"environment": req.Environment,
		"host":        creds.Host,
		"user":        creds.User,
		"database":    creds.Database,
		"mode":        mode,
	}).Debug("resolved credentials")

	if mode == run.Interactive {
		return a.interactive(ctx, req, conn)
	}
	return a.execute(ctx, req, creds, conn)
}

func (a *App) interactive(ctx context.Context, req run.Request, conn string) (int, error) {
	if req.Bash {
		return a.printAndCopy(req, conn)
	}

	err := a.shell().Attach(ctx, conn)
	if err != nil && !run.IsExitError(err) {
		return 1, fmt.Errorf("could not start %s: %w", a.config.Client, err)
	}
	return run.ExitCode(err), nil
}

func (a *App) execute(ctx context.Context, req run.Request, creds env.Credentials, conn string) (int, error) {
	sql := run.ResolveSQL(req)

	if req.Edit {
		edited, err := a.edit(sql)
		if err != nil {
			return 1, err
		}
		if edited == "" {
			return 1, ErrEmptySQL.New()
		}
		sql = edited
	}

	values := req.Variables
	if req.Prompt {
		if missing := params.Missing(sql, len(values)); len(missing) > 0 {
			known := params.Merge(values, nil)
			answers, err := a.prompt(params.SubstituteMarkers(known, sql), missing)
			if err != nil {
				return 1, err
			}
			// markers are replaced whole once answers are involved
			sql = params.SubstituteMarkers(params.Merge(values, answers), sql)
			values = nil
		}
	}

	q := command.Format(conn, sql, values, req.NoJSON)

	if req.PrintSQL {
		return a.printAndCopy(req, q.SQL)
	}
	if req.PrintCommand {
		return a.printAndCopy(req, q.Command)
	}

	if !req.NoJSON && !run.IsSelectQuery(q.SQL) {
		logrus.Warn("statement does not look like a query, JSON wrapping may fail; use --no-json")
	}

	// psql may prompt for a password on the terminal, spin on the native path only
	var executor run.Executor = run.ShellExecutor{Shell: a.shell()}
	stop := func() {}
	if req.Native {
		executor = run.NativeExecutor{Creds: creds, SSLMode: a.config.SSLMode}
		stop = a.spin()
	}

	result, err := executor.Execute(ctx, q)
	stop()

	code := 0
	if err != nil {
		if !run.IsExitError(err) {
			return 1, err
		}
		code = run.ExitCode(err)
		logrus.WithField("status", code).Debug("client exited with an error")
	}

	printer := run.Printer{
		FilterTool: a.config.FilterTool,
		Stdout:     a.stdout,
		Stderr:     a.stderr,
	}

	err = printer.Print(ctx, req, result)
	if err != nil && !run.IsExitError(err) {
		return 1, err
	}
	if req.NoJSON || req.NoJQ {
		// the client was the last process to run
		return code, nil
	}
	return run.ExitCode(err), nil
}

func (a *App) println(text string) (int, error) {
	if _, err := fmt.Fprintln(a.stdout, text); err != nil {
		return 1, err
	}
	return 0, nil
}

func (a *App) printAndCopy(req run.Request, text string) (int, error) {
	code, err := a.println(text)
	if err != nil || !req.Copy {
		return code, err
	}

	if err := a.copyText(text); err != nil {
		logrus.WithField("error", err).Warn("could not copy to clipboard")
		return 0, nil
	}
	fmt.Fprintln(a.stderr, styles.Success.Render("✓ Copied to clipboard"))
	return 0, nil
}

func (a *App) writeConfig(path string) (int, error) {
	if err := a.config.Save(path); err != nil {
		return 1, fmt.Errorf("could not save configuration: %w", err)
	}
	fmt.Fprintln(a.stderr, styles.Success.Render("✓ Configuration written to "+path))
	return 0, nil
}
