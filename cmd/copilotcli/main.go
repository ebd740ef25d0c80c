// Command copilotcli is the console front end: it relays operator questions
// to a conversational agent interactively, or runs a batch of questions from
// a workbook and writes the results back to a workbook.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/hupe1980/copilotcli"
	"github.com/hupe1980/copilotcli/client"
	"github.com/hupe1980/copilotcli/client/anthropic"
	"github.com/hupe1980/copilotcli/client/openai"
	"github.com/hupe1980/copilotcli/logging"
)

type options struct {
	Mode      string `long:"mode" choice:"auto" choice:"interactive" choice:"batch" default:"auto" description:"Run mode; auto prompts with a batch fallback"`
	Questions string `long:"questions" default:"questions.xlsx" description:"Batch input workbook"`
	Sheet     string `long:"sheet" default:"Questions" description:"Sheet holding the question column"`
	OutputDir string `long:"output-dir" default:"." description:"Directory for the result workbook"`
	Provider  string `long:"provider" choice:"openai" choice:"anthropic" default:"openai" description:"Agent backend"`
	Model     string `long:"model" description:"Override the provider's default model"`
	EnvFile   string `long:"env-file" description:"Load environment variables from this file"`
	Verbose   bool   `short:"v" long:"verbose" description:"Enable debug logging"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}

	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil {
			fmt.Fprintf(os.Stderr, "could not load %s: %v\n", opts.EnvFile, err)
			os.Exit(1)
		}
	} else {
		// Best effort; a missing .env is fine.
		_ = godotenv.Load()
	}

	level := logging.LogLevelInfo
	if opts.Verbose {
		level = logging.LogLevelDebug
	}
	logger := logging.NewSlogLogger(level, "text")

	agentClient, err := newClient(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app := copilotcli.New(agentClient, func(o *copilotcli.Options) {
		o.Logger = logger
		o.QuestionsFile = opts.Questions
		o.QuestionsSheet = opts.Sheet
		o.OutputDir = opts.OutputDir
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch opts.Mode {
	case "interactive":
		err = app.RunInteractive(ctx)
	case "batch":
		err = app.RunBatch(ctx)
	default:
		err = app.Run(ctx)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func newClient(opts options) (client.Client, error) {
	switch opts.Provider {
	case "anthropic":
		var optFns []func(o *anthropic.Options)
		if opts.Model != "" {
			optFns = append(optFns, anthropic.WithModel(opts.Model))
		}
		return anthropic.New(optFns...), nil
	case "openai":
		var optFns []func(o *openai.Options)
		if opts.Model != "" {
			optFns = append(optFns, openai.WithModel(opts.Model))
		}
		return openai.New(optFns...), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", opts.Provider)
	}
}
