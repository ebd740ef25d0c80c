package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/hupe1980/copilotcli/card"
	"github.com/hupe1980/copilotcli/client"
	"github.com/hupe1980/copilotcli/logging"
	"github.com/hupe1980/copilotcli/spreadsheet"
	"github.com/hupe1980/copilotcli/transcript"
)

// Run modes selectable by the operator.
const (
	ModeInteractive = "interactive"
	ModeBatch       = "batch"
)

// DefaultSelectTimeout bounds how long the mode prompt waits before falling
// back to batch mode.
const DefaultSelectTimeout = 15 * time.Second

// ErrNilTurn reports a nil turn received from the client while streaming the
// conversation opening. This violates the client contract and aborts the run.
var ErrNilTurn = errors.New("received nil turn from client")

// Options holds dependency + configuration overrides passed to New().
type Options struct {
	// Logger receives structured diagnostics; conversation text goes to
	// Output, never the logger.
	Logger logging.Logger
	// Input is the operator console reader (stdin by default).
	Input io.Reader
	// Output is the console writer (stdout by default).
	Output io.Writer
	// QuestionsFile is the batch input workbook path.
	QuestionsFile string
	// QuestionsSheet is the sheet holding the question column.
	QuestionsSheet string
	// OutputDir is the directory receiving the timestamped result workbook.
	OutputDir string
	// SelectTimeout bounds the mode-selection prompt.
	SelectTimeout time.Duration
	// Transcripts records every raw activity observed during the run.
	Transcripts transcript.Store
	// Now supplies timestamps; override in tests for determinism.
	Now func() time.Time
}

// Runner drives the agent client through its start-conversation and
// ask-question operations, shuttling text between console or workbook I/O
// and activity streams. One Runner serves one run; it holds no shared
// mutable state beyond the transcript store.
type Runner struct {
	client   client.Client
	logger   *logging.ConsoleLogger
	in       *bufio.Reader
	out      io.Writer
	resolver *card.Resolver

	questionsFile  string
	questionsSheet string
	outputDir      string
	selectTimeout  time.Duration
	transcripts    transcript.Store
	now            func() time.Time
}

// New constructs a Runner with optional overrides.
func New(c client.Client, optFns ...func(o *Options)) *Runner {
	opts := Options{
		Logger:         logging.NoOpLogger{},
		Input:          os.Stdin,
		Output:         os.Stdout,
		QuestionsFile:  spreadsheet.QuestionsFile,
		QuestionsSheet: spreadsheet.QuestionsSheet,
		OutputDir:      ".",
		SelectTimeout:  DefaultSelectTimeout,
		Transcripts:    transcript.NewInMemoryStore(),
		Now:            time.Now,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	in := bufio.NewReader(opts.Input)
	logger := logging.NewConsoleLogger(opts.Logger)
	return &Runner{
		client:         c,
		logger:         logger,
		in:             in,
		out:            opts.Output,
		resolver:       card.NewResolver(in, opts.Output, func(o *card.ResolverOptions) { o.Logger = logger }),
		questionsFile:  opts.QuestionsFile,
		questionsSheet: opts.QuestionsSheet,
		outputDir:      opts.OutputDir,
		selectTimeout:  opts.SelectTimeout,
		transcripts:    opts.Transcripts,
		now:            opts.Now,
	}
}

// Run prompts for a mode and dispatches to the selected driver. Batch mode
// runs when no choice arrives within the timeout or the choice is anything
// but interactive.
func (r *Runner) Run(ctx context.Context) error {
	switch r.selectMode() {
	case ModeInteractive:
		return r.RunInteractive(ctx)
	default:
		return r.RunBatch(ctx)
	}
}

// selectMode races one line of operator input against the selection timer.
func (r *Runner) selectMode() string {
	fmt.Fprintf(r.out, "Select mode: 1) interactive, anything else: batch (default in %s)\n", r.selectTimeout)

	// The reader goroutine outlives a lost race: it stays blocked on the
	// console until the process exits, and a line typed after the timeout is
	// consumed here rather than reaching a later prompt. Harmless, because
	// the batch driver never reads the console again.
	lineCh := make(chan string, 1)
	go func() {
		line, err := r.in.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		lineCh <- strings.TrimSpace(line)
	}()

	timer := time.NewTimer(r.selectTimeout)
	defer timer.Stop()

	select {
	case line := <-lineCh:
		if line == "1" {
			return ModeInteractive
		}
	case <-timer.C:
		fmt.Fprintln(r.out, "No selection received, defaulting to batch mode.")
	}
	return ModeBatch
}
