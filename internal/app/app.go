// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"stemcode-core/exclusion"
	"stemcode-core/library"
	"stemcode-core/padding"
	"stemcode-core/sample"
	"stemcode/internal/cli"
	"stemcode/internal/config"
	"stemcode/internal/writers"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitIO       = 3
	ExitCapacity = 4
	ExitCanceled = 130
)

// Run executes one invocation with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// RunContext executes one invocation and returns its exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	root := cli.NewRoot(outw, stderr)
	root.SetArgs(argv)
	err := root.ExecuteContext(parent)

	if e := outw.Flush(); e != nil && !writers.IsBrokenPipe(e) && err == nil {
		err = e
	}
	if err == nil {
		return ExitOK
	}
	code := ExitCode(err)
	if parent.Err() != nil {
		code = ExitCanceled
	}
	if code != ExitCanceled {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		if code == ExitUsage && isUnknownCommand(err) {
			_, _ = fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", root.CommandPath())
		}
	}
	return code
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	var usage cli.UsageError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ExitCanceled
	case errors.Is(err, exclusion.ErrCapacity):
		return ExitCapacity
	case errors.As(err, &usage),
		errors.Is(err, config.ErrInvalid),
		errors.Is(err, library.ErrPrecondition),
		errors.Is(err, sample.ErrInsufficient),
		errors.Is(err, padding.ErrNegativeLength),
		errors.Is(err, padding.ErrStemBounds),
		isUnknownCommand(err):
		return ExitUsage
	}
	return ExitIO
}

// cobra reports bad subcommands and flags as plain errors.
func isUnknownCommand(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag") ||
		strings.HasPrefix(msg, "required flag") ||
		strings.Contains(msg, "accepts ")
}
