package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/eduardofuncao/pgx/internal/config"
	"github.com/eduardofuncao/pgx/internal/styles"
)

const (
	exitError = 1
	exitUsage = 2
)

func main() {
	opts, err := ParseArgs(os.Args[1:])
	if err != nil {
		if e, ok := err.(*flags.Error); ok {
			// go-flags already printed the message
			if e.Type == flags.ErrHelp {
				os.Exit(0)
			}
		} else {
			printError("%v", err)
		}
		os.Exit(exitUsage)
	}

	if err := configureLogging(opts); err != nil {
		printError("%v", err)
		os.Exit(exitUsage)
	}

	cfg, err := config.LoadConfig(opts.configPath())
	if err != nil {
		printError("Could not load config file: %v", err)
		os.Exit(exitError)
	}
	styles.InitAccent(cfg.Style.Accent)

	code, err := NewApp(cfg).Run(context.Background(), opts)
	if err != nil {
		printError("%v", err)
	}
	os.Exit(code)
}

func configureLogging(opts *Options) error {
	logrus.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(opts.LogLevel)
	if err != nil {
		return fmt.Errorf("cannot parse log level: %s", err.Error())
	}
	logrus.SetLevel(level)

	if opts.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	return nil
}

func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, styles.Error.Render("✗ Error:"), msg)
}
