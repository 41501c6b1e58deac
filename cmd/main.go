package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/okian/maulas/internal/cli"
	"github.com/okian/maulas/pkg/logger"
)

func main() {
	os.Exit(run())
}

// run is main without os.Exit so deferred cleanup still happens.
func run() int {
	// Logs go to stderr so reports and exports on stdout stay clean.
	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to flush logs: " + err.Error() + "\n")
		}
	}()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := loadDotEnv(".env"); err != nil {
		logger.Get().Warn(ctx, "ignoring .env file", logger.Error(err))
	}

	if err := execute(ctx, os.Args[1:]); err != nil {
		logger.Get().Error(ctx, "command failed", logger.Error(err))
		return 1
	}
	return 0
}

func execute(ctx context.Context, args []string) error {
	root := cli.Root()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// loadDotEnv loads path into the environment when it exists. Variables
// already set keep their value.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
