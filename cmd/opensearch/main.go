package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/pflag"

	"opensearch/internal/cli"
)

var (
	executeCmd  = cli.Execute
	mapExitCode = cli.ExitCode
	terminate   = os.Exit
	stderr      io.Writer = os.Stderr
)

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := executeCmd(ctx, args)
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	fmt.Fprintln(stderr, "Error:", err)
	return mapExitCode(err)
}

func main() {
	terminate(run(os.Args[1:]))
}
