package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hupe1980/copilotcli/activity"
	"github.com/hupe1980/copilotcli/spreadsheet"
)

// systemStartQuestion labels the synthetic result row holding the
// conversation greeting.
const systemStartQuestion = "System Start"

// RunBatch reads the question list, asks each question serially and writes
// one result row per question plus the System Start row. A missing input
// workbook or an empty question set is reported to the console and aborts
// the run cleanly; client failures propagate.
func (r *Runner) RunBatch(ctx context.Context) error {
	questions, err := spreadsheet.ReadQuestions(r.questionsFile, r.questionsSheet)
	if err != nil {
		fmt.Fprintf(r.out, "Batch run aborted: %v\n", err)
		r.logger.Error("batch input unavailable", "error", err)
		return nil
	}

	outputPath := filepath.Join(r.outputDir, spreadsheet.OutputFilename(r.now()))

	writer, err := spreadsheet.NewResultWriter()
	if err != nil {
		return err
	}

	greeting, err := r.startConversation(ctx)
	if err != nil {
		return err
	}
	if err := writer.Append(r.greetingRow(greeting)); err != nil {
		return err
	}

	for _, question := range questions {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Fprintf(r.out, "Asking: %s\n", question)
		result, err := r.askCollect(ctx, question)
		if err != nil {
			return err
		}
		if err := writer.Append(result); err != nil {
			return err
		}
	}

	if err := writer.SaveAs(outputPath); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Wrote %d rows to %s\n", writer.Rows(), outputPath)
	r.logger.Info("batch run complete", "questions", len(questions), "output", outputPath)
	return nil
}

// startConversation opens the conversation and returns the first streamed
// turn. The remainder of the opening stream is discarded; closing the stream
// signals the producer to stop.
func (r *Runner) startConversation(ctx context.Context) (*activity.Activity, error) {
	stream, err := r.client.StartConversation(ctx)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	var greeting *activity.Activity
	if stream.Next(ctx) {
		greeting = stream.Current()
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}
	if greeting != nil {
		if id := greeting.ConversationID(); id != "" {
			r.logger = r.logger.WithConversation(id)
		}
		r.transcripts.Record(greeting.ConversationID(), *greeting)
	}
	return greeting, nil
}

// greetingRow builds the synthetic System Start result row from the opening
// turn (which may be absent).
func (r *Runner) greetingRow(greeting *activity.Activity) spreadsheet.Result {
	row := spreadsheet.Result{
		Question:  systemStartQuestion,
		Timestamp: r.now().Format(time.RFC3339),
	}
	if greeting == nil {
		return row
	}
	if greeting.Text != "" {
		row.Response = greeting.Text + "\n"
	}
	row.ConversationID = greeting.ConversationID()
	if raw, err := json.Marshal([]*activity.Activity{greeting}); err == nil {
		row.ResponseLog = string(raw)
	}
	return row
}

// askCollect submits one question and accumulates its reply: text fragments
// (one line per fragment), the conversation id of the last turn carrying
// one, and a JSON log of every raw turn.
func (r *Runner) askCollect(ctx context.Context, question string) (spreadsheet.Result, error) {
	result := spreadsheet.Result{Question: question}

	start := time.Now()
	stream, err := r.client.AskQuestion(ctx, question)
	if err != nil {
		r.logger.LogAsk(question, time.Since(start), err)
		return result, err
	}
	defer stream.Close()

	var (
		response       []byte
		raw            []*activity.Activity
		conversationID string
	)
	for stream.Next(ctx) {
		a := stream.Current()
		if a == nil {
			continue
		}
		raw = append(raw, a)
		r.transcripts.Record(a.ConversationID(), *a)
		if a.Type == activity.TypeMessage && a.Text != "" {
			response = append(response, a.Text...)
			response = append(response, '\n')
		}
		if id := a.ConversationID(); id != "" {
			conversationID = id
		}
	}
	streamErr := stream.Err()
	r.logger.LogAsk(question, time.Since(start), streamErr)
	if streamErr != nil {
		return result, streamErr
	}

	result.Response = string(response)
	result.ConversationID = conversationID
	result.Timestamp = r.now().Format(time.RFC3339)
	if log, err := json.Marshal(raw); err == nil {
		result.ResponseLog = string(log)
	} else {
		r.logger.Warn("could not serialize response log", "question", question, "error", err)
	}
	return result, nil
}
