// Command consolectl calls the console, v0 and admin APIs from the shell.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kbukum/consoleapi/httpclient"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps API failures to distinct exit codes so scripts can branch
// on them.
func exitCode(err error) int {
	if errors.Is(err, context.Canceled) {
		return 130
	}
	e, ok := httpclient.AsError(err)
	if !ok {
		return 1
	}
	switch {
	case e.Code == httpclient.ErrCodeAuth:
		return 3
	case e.Code == httpclient.ErrCodeNotFound:
		return 4
	case e.Code == httpclient.ErrCodeValidation:
		return 5
	default:
		return 2
	}
}
