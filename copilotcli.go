// Package copilotcli provides a high-level façade over the session runner
// and the agent client boundary. Most applications interact with this
// package by:
//  1. Creating an App via New() around a client implementation
//     (client/openai, client/anthropic, or a custom client.Client)
//  2. Calling Run for operator mode selection, or RunInteractive / RunBatch
//     directly
//
// The façade delegates orchestration to runner.Runner while keeping setup
// ergonomics concise. All defaults are safe for local use: console I/O on
// stdin/stdout, questions.xlsx next to the binary, and a silent logger.
package copilotcli

import (
	"context"
	"io"
	"time"

	"github.com/hupe1980/copilotcli/client"
	"github.com/hupe1980/copilotcli/logging"
	"github.com/hupe1980/copilotcli/runner"
	"github.com/hupe1980/copilotcli/transcript"
)

// Options configures the App instance.
type Options struct {
	// Logger receives structured diagnostics (defaults to NoOp).
	Logger logging.Logger
	// Input / Output are the operator console streams.
	Input  io.Reader
	Output io.Writer
	// QuestionsFile / QuestionsSheet locate the batch input.
	QuestionsFile  string
	QuestionsSheet string
	// OutputDir receives the timestamped result workbook.
	OutputDir string
	// SelectTimeout bounds the mode-selection prompt.
	SelectTimeout time.Duration
	// Transcripts records every raw activity observed during the run.
	Transcripts transcript.Store
}

// App is the high-level façade aggregating the runner and its dependencies.
type App struct {
	runner *runner.Runner
}

// New creates an App around the given agent client with optional overrides.
func New(c client.Client, optFns ...func(o *Options)) *App {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	r := runner.New(c, func(o *runner.Options) {
		if opts.Logger != nil {
			o.Logger = opts.Logger
		}
		if opts.Input != nil {
			o.Input = opts.Input
		}
		if opts.Output != nil {
			o.Output = opts.Output
		}
		if opts.QuestionsFile != "" {
			o.QuestionsFile = opts.QuestionsFile
		}
		if opts.QuestionsSheet != "" {
			o.QuestionsSheet = opts.QuestionsSheet
		}
		if opts.OutputDir != "" {
			o.OutputDir = opts.OutputDir
		}
		if opts.SelectTimeout > 0 {
			o.SelectTimeout = opts.SelectTimeout
		}
		if opts.Transcripts != nil {
			o.Transcripts = opts.Transcripts
		}
	})
	return &App{runner: r}
}

// Run prompts the operator for a mode and dispatches to it, defaulting to
// batch mode after the selection timeout.
func (a *App) Run(ctx context.Context) error { return a.runner.Run(ctx) }

// RunInteractive runs the interactive console session.
func (a *App) RunInteractive(ctx context.Context) error { return a.runner.RunInteractive(ctx) }

// RunBatch runs the spreadsheet-driven batch session.
func (a *App) RunBatch(ctx context.Context) error { return a.runner.RunBatch(ctx) }
