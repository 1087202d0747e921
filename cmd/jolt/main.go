package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jacoelho/jolt/internal/config"
	"github.com/jacoelho/jolt/internal/runner"
)

func main() {
	exitCode := run(os.Args, runner.DefaultStreams())
	os.Exit(exitCode)
}

func run(args []string, streams runner.Streams) int {
	cfg, exitResult := config.Parse(args)
	if exitResult != nil {
		exitResult.Print()
		return exitResult.ExitCode
	}

	r, exitResult := runner.New(cfg, streams)
	if exitResult != nil {
		exitResult.Print()
		return exitResult.ExitCode
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return r.Run(ctx)
}
