package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"opensearch/pkg/core"
)

// Process exit codes.
const (
	ExitOK               = 0
	ExitGeneric          = 1
	ExitUsage            = 2
	ExitInvalidSignature = 3
	ExitAccessRestricted = 4
)

// usageError marks an error caused by the command line rather than the service.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, pflag.ErrHelp):
		return ExitOK
	case core.IsInvalidSignature(err):
		return ExitInvalidSignature
	case core.IsAccessRestricted(err):
		return ExitAccessRestricted
	case core.IsInvalidInput(err):
		return ExitUsage
	case core.IsAPIError(err):
		return ExitGeneric
	case isUsageError(err):
		return ExitUsage
	default:
		return ExitGeneric
	}
}

func isUsageError(err error) bool {
	var usage usageError
	if errors.As(err, &usage) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, indicator := range []string{
		"unknown command",
		"unknown flag",
		"unknown shorthand flag",
		"flag needs an argument",
		"required flag",
		"none of the others can be",
	} {
		if strings.Contains(msg, indicator) {
			return true
		}
	}
	return false
}
