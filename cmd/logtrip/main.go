package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mekedron/logtrip/internal/cli"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	exitCode := cli.Execute(ctx, os.Args[1:], cli.NewDependencies(version), os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(exitCode)
}
