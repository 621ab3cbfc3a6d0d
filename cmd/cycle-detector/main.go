package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ritzau/cycle-detector/pkg/cycles"
)

// Exit codes
const (
	exitOK           = 0
	exitFailure      = 1 // invalid input, bad flags, I/O errors
	exitInconsistent = 2 // a detector contradicted itself
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, cycles.ErrInternalInconsistency):
		return exitInconsistent
	}
	return exitFailure
}
