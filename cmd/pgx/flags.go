package main

import (
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"gopkg.in/src-d/go-errors.v1"

	"github.com/eduardofuncao/pgx/internal/config"
	"github.com/eduardofuncao/pgx/internal/env"
	"github.com/eduardofuncao/pgx/internal/run"
)

// ErrUsage is returned for malformed arguments that go-flags accepts.
var ErrUsage = errors.NewKind("%s")

const description = `A simple wrapper around psql with environment based selection of
credentials, execute from file, automatic JSON formatting and jq parsing.

To enter psql with the environment's credentials leave out --file and sql.`

type Options struct {
	File         string   `short:"f" long:"file" value-name:"FILE" description:"file to execute"`
	Environment  string   `short:"e" long:"environment" choice:"p" choice:"s" choice:"d" description:"environment for execution (default from config, s)"`
	User         string   `short:"u" long:"user" description:"override environment based user"`
	Database     string   `short:"d" long:"db" description:"override environment based db"`
	Location     string   `short:"l" long:"location" description:"override environment based location (host)"`
	Bash         bool     `short:"b" long:"bash" description:"interop for a calling shell wrapper"`
	Variables    []string `short:"v" long:"variables" value-name:"VALUE" description:"values replacing $1 style markers, in order; takes every following non-flag argument"`
	PrintSQL     bool     `long:"print-sql" description:"print the sql itself for debugging"`
	PrintCommand bool     `long:"print-command" description:"print the command itself for debugging"`
	NoJQ         bool     `long:"no-jq" description:"specifically opt out of jq parsing"`
	NoJSON       bool     `long:"no-json" description:"specifically opt out of json return format"`

	Native      bool   `long:"native" description:"run the query through the built-in postgres driver instead of psql"`
	Prompt      bool   `long:"prompt" description:"ask for $N markers that have no value"`
	Edit        bool   `long:"edit" description:"edit the sql in $EDITOR before running it"`
	Copy        bool   `long:"copy" description:"copy printed sql, command or connection command to the clipboard"`
	Config      string `short:"c" long:"config" env:"PGX_CONFIG" value-name:"FILE" description:"configuration file (default ~/.config/pgx/config.yaml)"`
	WriteConfig bool   `long:"write-config" description:"write the effective configuration to the configuration file and exit"`
	Verbose     bool   `long:"verbose" description:"log debug information to stderr"`
	LogLevel    string `long:"log-level" choice:"debug" choice:"info" choice:"warning" choice:"error" default:"warning" description:"logging level"`

	Args struct {
		SQL    string `positional-arg-name:"sql" description:"sql to execute, or the jq filter when --file is given"`
		Filter string `positional-arg-name:"jq" description:"jq filter (default .)"`
	} `positional-args:"yes"`

	// fileSQL holds the contents of File once parsed.
	fileSQL string
}

func newParser(opts *Options) *flags.Parser {
	parser := flags.NewParser(opts, flags.Default)
	parser.Name = "pgx"
	parser.LongDescription = description
	return parser
}

// ParseArgs parses command line arguments and reads the SQL file, if any.
func ParseArgs(args []string) (*Options, error) {
	opts := &Options{}
	rest, err := newParser(opts).ParseArgs(expandVariables(args))
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, ErrUsage.New("unrecognized arguments: " + strings.Join(rest, " "))
	}

	if opts.File != "" {
		data, err := os.ReadFile(opts.File)
		if err != nil {
			return nil, ErrUsage.New("can't open '" + opts.File + "': " + err.Error())
		}
		opts.fileSQL = string(data)
	}
	return opts, nil
}

// bareValues maps options whose value may be left out to what a bare
// occurrence means. An empty value drops the option, so no override applies.
var bareValues = map[string]string{
	"-e": config.Production, "--environment": config.Production,
	"-u": "", "--user": "",
	"-d": "", "--db": "",
	"-l": "", "--location": "",
}

// expandVariables rewrites "-v a b c" into one --variables=X per value so
// the list consumes every argument up to the next flag. It also resolves
// bare -e/-u/-d/-l that are followed by another flag or nothing.
func expandVariables(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return append(out, args[i:]...)
		}

		bare := i+1 == len(args) || isFlag(args[i+1])
		if value, ok := bareValues[arg]; ok && bare {
			if value != "" {
				out = append(out, arg, value)
			}
			continue
		}

		if arg != "-v" && arg != "--variables" {
			out = append(out, arg)
			continue
		}

		if bare {
			// let go-flags report the missing argument
			out = append(out, arg)
			continue
		}
		for i+1 < len(args) && !isFlag(args[i+1]) {
			i++
			out = append(out, "--variables="+args[i])
		}
	}
	return out
}

func isFlag(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	// negative numbers are values
	return !(arg[1] >= '0' && arg[1] <= '9') && arg[1] != '.'
}

// Request converts the options into a run request. defaultEnvironment is
// used when -e was not given.
func (o *Options) Request(defaultEnvironment string) run.Request {
	environment := o.Environment
	if environment == "" {
		environment = defaultEnvironment
	}
	if environment == "" {
		environment = config.Staging
	}

	return run.Request{
		Environment: environment,
		Overrides: env.Overrides{
			Host:     o.Location,
			User:     o.User,
			Database: o.Database,
		},
		SQL:          o.Args.SQL,
		File:         o.File,
		FileSQL:      o.fileSQL,
		Variables:    o.Variables,
		Filter:       o.Args.Filter,
		Bash:         o.Bash,
		PrintSQL:     o.PrintSQL,
		PrintCommand: o.PrintCommand,
		NoJQ:         o.NoJQ,
		NoJSON:       o.NoJSON,
		Native:       o.Native,
		Prompt:       o.Prompt,
		Edit:         o.Edit,
		Copy:         o.Copy,
	}
}

func (o *Options) configPath() string {
	if o.Config != "" {
		return o.Config
	}
	return config.CfgFile
}
