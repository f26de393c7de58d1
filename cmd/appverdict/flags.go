package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/NeuralTrust/AppVerdict/pkg/app/judgment"
	"github.com/spf13/pflag"
)

const (
	commandAnalyze  = "analyze"
	commandEvaluate = "evaluate"
	commandServe    = "serve"
	commandToken    = "token"
	commandVersion  = "version"
)

type options struct {
	command      string
	query        string
	topN         int
	skipScraping bool
	noPrompt     bool
	configPath   string
	subject      string
}

// parseArgs splits off the command (analyze when the first argument is a
// flag or absent) and parses the remaining flags. The returned flag set is
// handed to config.Load, which only honours flags that were set explicitly.
func parseArgs(args []string, stderr io.Writer) (*options, *pflag.FlagSet, error) {
	opts := &options{command: commandAnalyze}
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		opts.command = strings.ToLower(args[0])
		args = args[1:]
	}
	switch opts.command {
	case commandAnalyze, commandEvaluate, commandServe, commandToken, commandVersion:
	default:
		return nil, nil, fmt.Errorf("unknown command: %s", opts.command)
	}

	fs := pflag.NewFlagSet("appverdict "+opts.command, pflag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.query, "query", "", "search query for the store (still asks unless --no-prompt)")
	fs.IntVar(&opts.topN, "top-n", 0, "number of apps to analyze")
	fs.BoolVar(&opts.skipScraping, "skip-scraping", false, "skip scraping and reuse the existing input file")
	fs.BoolVar(&opts.noPrompt, "no-prompt", false, "skip interactive prompts and use default values")
	fs.StringVar(&opts.configPath, "config", "config", "directory holding config.yaml")
	fs.StringVar(&opts.subject, "subject", "appverdict-cli", "subject of the issued API token")

	fs.String("api-key", "", "judgment provider API key (or GEMINI_API_KEY)")
	fs.String("model", judgment.DefaultConfig().Model, "judgment model name")
	fs.String("provider", judgment.DefaultConfig().Provider, "judgment provider: gemini, openai, anthropic or bedrock")
	fs.String("input", "", "input document path")
	fs.String("output", "", "analysis results path")
	fs.String("metrics", "", "evaluation metrics path")
	fs.String("labels", "", "ground-truth labels path ({app_id: 0|1})")
	fs.Int("port", 0, "API server port")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if fs.NArg() > 0 {
		return nil, nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return opts, fs, nil
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Usage: appverdict [analyze|evaluate|serve|token|version] [flags]")
	_, _ = fmt.Fprintln(w, "  analyze   scrape apps, judge each one and save the verdicts (default)")
	_, _ = fmt.Fprintln(w, "  evaluate  compare saved verdicts with a labels file")
	_, _ = fmt.Fprintln(w, "  serve     run the HTTP API")
	_, _ = fmt.Fprintln(w, "  token     issue a bearer token for the HTTP API")
	_, _ = fmt.Fprintln(w, "  version   print the version")
}
