package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hupe1980/copilotcli/activity"
)

// printStream drains one reply stream to the console and returns any
// follow-up questions produced by resolved adaptive card forms.
func (r *Runner) printStream(ctx context.Context, stream *activity.Stream) ([]string, error) {
	defer stream.Close()

	var followUps []string
	for stream.Next(ctx) {
		a := stream.Current()
		if a == nil {
			continue
		}
		r.transcripts.Record(a.ConversationID(), *a)
		followUps = append(followUps, r.printActivity(a)...)
	}
	return followUps, stream.Err()
}

// printActivity renders one turn. Message turns may yield follow-up
// questions: every resolved adaptive card whose answer set is non-empty is
// serialized and returned for re-submission.
func (r *Runner) printActivity(a *activity.Activity) []string {
	var followUps []string

	switch a.Type {
	case activity.TypeMessage:
		if a.Text != "" {
			fmt.Fprintln(r.out, a.Text)
		}
		if a.SuggestedActions != nil && len(a.SuggestedActions.Actions) > 0 {
			fmt.Fprintln(r.out, "Suggested actions:")
			for _, action := range a.SuggestedActions.Actions {
				fmt.Fprintf(r.out, "  - %s\n", action.Title)
			}
		}
		for _, attachment := range a.AdaptiveCards() {
			answers := r.resolver.Resolve(attachment.Content)
			if len(answers) == 0 {
				continue
			}
			payload, err := json.Marshal(answers)
			if err != nil {
				r.logger.Warn("could not serialize card answers", "error", err)
				continue
			}
			followUps = append(followUps, string(payload))
		}

	case activity.TypeTyping:
		fmt.Fprint(r.out, ".")

	case activity.TypeEvent:
		fmt.Fprint(r.out, "+")

	default:
		fmt.Fprintf(r.out, "[%s]\n", a.Type)
	}

	return followUps
}

// ask submits a question and prints its reply stream, then works through any
// card follow-ups iteratively. A queue instead of recursion keeps stack
// growth bounded for long card chains.
func (r *Runner) ask(ctx context.Context, question string) error {
	queue := []string{question}
	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]

		start := time.Now()
		stream, err := r.client.AskQuestion(ctx, q)
		if err != nil {
			r.logger.LogAsk(q, time.Since(start), err)
			return err
		}
		followUps, err := r.printStream(ctx, stream)
		r.logger.LogAsk(q, time.Since(start), err)
		if err != nil {
			return err
		}
		queue = append(queue, followUps...)
	}
	return nil
}
