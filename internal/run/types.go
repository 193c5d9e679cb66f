package run

import "github.com/eduardofuncao/pgx/internal/env"

// Request is everything one invocation asked for, after argument parsing.
type Request struct {
	Environment string
	Overrides   env.Overrides

	// SQL is the first positional argument, File the --file path and
	// FileSQL its contents.
	SQL     string
	File    string
	FileSQL string

	Variables []string
	Filter    string

	Bash         bool
	PrintSQL     bool
	PrintCommand bool
	NoJQ         bool
	NoJSON       bool

	Native bool
	Prompt bool
	Edit   bool
	Copy   bool
}

// Mode is the execution path a request takes.
type Mode int

const (
	// Interactive opens a client session, no SQL was given.
	Interactive Mode = iota
	// Execute runs SQL and prints its result.
	Execute
)

func (m Mode) String() string {
	if m == Interactive {
		return "interactive"
	}
	return "execute"
}
