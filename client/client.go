// Package client declares the agent client boundary the console runner
// drives. Exactly two capabilities are required: starting a conversation and
// asking a question, both yielding a forward-only activity stream terminated
// by the client. Authentication, transport and protocol semantics live behind
// implementations of this interface; callers never retry or reinterpret
// client-level failures.
package client

import (
	"context"

	"github.com/hupe1980/copilotcli/activity"
)

// AskOptions carries the optional parameters of an AskQuestion call.
type AskOptions struct {
	// Hint is free-form steering context forwarded alongside the question.
	Hint string
}

// Client is the minimal conversational agent surface required by the runner.
type Client interface {
	// StartConversation opens a new conversation and streams its opening
	// turns. The stream is lazy and may be abandoned via Stream.Close.
	StartConversation(ctx context.Context) (*activity.Stream, error)

	// AskQuestion submits one question within the current conversation and
	// streams the reply turns.
	AskQuestion(ctx context.Context, question string, optFns ...func(o *AskOptions)) (*activity.Stream, error)
}

// WithHint sets the optional hint of an AskQuestion call.
func WithHint(hint string) func(o *AskOptions) {
	return func(o *AskOptions) { o.Hint = hint }
}
