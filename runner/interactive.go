package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// RunInteractive starts a conversation, prints its opening turns and then
// loops relaying operator questions until the context is cancelled or the
// console input ends. A nil turn during the opening stream violates the
// client contract and aborts the run.
func (r *Runner) RunInteractive(ctx context.Context) error {
	stream, err := r.client.StartConversation(ctx)
	if err != nil {
		return err
	}
	defer stream.Close()

	var (
		followUps []string
		attached  bool
	)
	for stream.Next(ctx) {
		a := stream.Current()
		if a == nil {
			return ErrNilTurn
		}
		if id := a.ConversationID(); id != "" && !attached {
			r.logger = r.logger.WithConversation(id)
			attached = true
		}
		r.transcripts.Record(a.ConversationID(), *a)
		followUps = append(followUps, r.printActivity(a)...)
	}
	if err := stream.Err(); err != nil {
		return err
	}

	// A greeting may itself carry a card; replay its answers like any other
	// follow-up instead of dropping the operator's input.
	for _, followUp := range followUps {
		if err := r.ask(ctx, followUp); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Fprint(r.out, "\n> ")
		line, err := r.in.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read operator input: %w", err)
		}
		question := strings.TrimSpace(line)
		if question == "" {
			continue
		}

		if err := r.ask(ctx, question); err != nil {
			return err
		}
	}
}
