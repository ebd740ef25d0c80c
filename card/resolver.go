package card

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/copilotcli/logging"
)

// ResolverOptions holds dependency overrides passed to NewResolver.
type ResolverOptions struct {
	// Logger receives warnings about malformed cards and dropped fields.
	Logger logging.Logger
}

// Resolver collects operator answers for the input fields of an adaptive
// card. Prompts are written to out; answers are read line by line from in.
// Unparseable numeric or choice input drops the field silently (logged at
// debug level, never retried).
type Resolver struct {
	in     *bufio.Reader
	out    io.Writer
	logger logging.Logger
}

// NewResolver constructs a resolver bound to a console reader/writer pair.
// An already-buffered reader is used as-is so the resolver and its caller
// never fight over read-ahead input.
func NewResolver(in io.Reader, out io.Writer, optFns ...func(o *ResolverOptions)) *Resolver {
	opts := ResolverOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	br, ok := in.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(in)
	}
	return &Resolver{in: br, out: out, logger: opts.Logger}
}

// Resolve parses raw attachment content and prompts for every input field,
// returning the collected field-id to value mapping. Malformed or bodyless
// content yields an empty answer set after a warning; the caller then sends
// nothing further.
func (r *Resolver) Resolve(content any) map[string]string {
	answers := map[string]string{}

	c, err := Parse(content)
	if err != nil {
		r.logger.Warn("skipping malformed adaptive card", "error", err)
		return answers
	}

	for _, field := range c.Inputs() {
		if field.ID == "" {
			continue
		}
		r.resolveField(field, answers)
	}
	return answers
}

func (r *Resolver) resolveField(field Element, answers map[string]string) {
	switch field.Type {
	case InputText, InputDate, InputTime:
		answers[field.ID] = r.readLine("%s: ", field.Prompt())

	case InputNumber:
		line := r.readLine("%s (number): ", field.Prompt())
		if _, err := strconv.Atoi(line); err != nil {
			r.logger.Debug("dropping unparseable number field", "field_id", field.ID, "input", line)
			return
		}
		answers[field.ID] = line

	case InputChoiceSet:
		fmt.Fprintf(r.out, "%s:\n", field.Prompt())
		for i, choice := range field.Choices {
			fmt.Fprintf(r.out, "  %d) %s\n", i+1, choice.Title)
		}
		line := r.readLine("Select 1-%d: ", len(field.Choices))
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(field.Choices) {
			r.logger.Debug("dropping out-of-range choice field", "field_id", field.ID, "input", line)
			return
		}
		answers[field.ID] = field.Choices[n-1].Value

	case InputToggle:
		line := r.readLine("%s [y/N]: ", field.Prompt())
		answers[field.ID] = toggleValue(line, field)
	}
}

// toggleValue maps operator input onto the toggle's on/off values, falling
// back to literal booleans when the card declares none.
func toggleValue(input string, field Element) string {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		if field.ValueOn != "" {
			return field.ValueOn
		}
		return "true"
	default:
		if field.ValueOff != "" {
			return field.ValueOff
		}
		return "false"
	}
}

// readLine prompts and returns one trimmed line of operator input. A read
// failure (EOF) yields the empty string.
func (r *Resolver) readLine(format string, args ...any) string {
	fmt.Fprintf(r.out, format, args...)
	line, err := r.in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}
