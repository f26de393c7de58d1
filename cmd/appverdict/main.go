package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NeuralTrust/AppVerdict/pkg/config"
	infraLogger "github.com/NeuralTrust/AppVerdict/pkg/infra/logger"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/storage"
	"github.com/NeuralTrust/AppVerdict/pkg/version"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const (
	exitOK    = 0
	exitError = 1
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, flags, err := parseArgs(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		printUsage(stdout)
		return exitOK
	}
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		printUsage(stderr)
		return exitError
	}
	if opts.command == commandVersion {
		_, _ = fmt.Fprintln(stdout, version.GetInfo().String())
		return exitOK
	}

	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger, closer, err := infraLogger.NewLogger(infraLogger.Options{
		Name:          "appverdict",
		Console:       true,
		ConsoleWriter: stderr,
	})
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "failed to initialize logger: %v\n", err)
		return exitError
	}
	defer func() {
		_ = closer.Close()
	}()

	cfg, err := config.Load(opts.configPath, flags)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := storage.NewJSONStore(logger)
	switch opts.command {
	case commandEvaluate:
		return runEvaluate(cfg, logger, store, stdout)
	case commandServe:
		return runServe(ctx, cfg, logger)
	case commandToken:
		return runToken(cfg, opts.subject, stdout)
	default:
		cmd := &analyzeCommand{
			opts:   opts,
			cfg:    cfg,
			logger: logger,
			store:  store,
			in:     stdin,
			out:    stdout,
		}
		return cmd.run(ctx)
	}
}
