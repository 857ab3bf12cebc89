package main

import (
	"context"
	"fmt"
	"os"

	"github.com/agbru/stratbench/internal/app"
	apperrors "github.com/agbru/stratbench/internal/errors"
	"github.com/agbru/stratbench/internal/strategy"
)

func main() {
	// Process-pool workers are this same binary re-executed.
	if strategy.IsWorkerProcess() {
		os.Exit(strategy.RunWorkerProcess())
	}

	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(apperrors.ExitCode(err))
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
