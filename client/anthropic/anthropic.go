// Package anthropic implements the client.Client boundary on top of the
// Anthropic Messages API (streaming).
package anthropic

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/hupe1980/copilotcli/activity"
	"github.com/hupe1980/copilotcli/client"
)

// Options configure the Anthropic-backed agent client (model id, sampling,
// max tokens, API key, conversation framing).
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
	// Instructions is the system prompt pinned to every conversation.
	Instructions string
	// Greeting is the opening turn emitted by StartConversation.
	Greeting string
}

// Client drives conversations through the Anthropic Messages API while
// keeping per-conversation message history so follow-up questions carry
// context.
type Client struct {
	client *anthropic.Client
	opts   Options

	mu             sync.Mutex
	conversationID string
	history        []anthropic.MessageParam
}

var _ client.Client = (*Client)(nil)

// New creates a client using the official SDK.
func New(optFns ...func(o *Options)) *Client {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	sdk := anthropic.NewClient(clientOpts...)

	return &Client{client: &sdk, opts: opts}
}

// NewFromClient creates a client from an existing SDK client.
func NewFromClient(sdk *anthropic.Client, optFns ...func(o *Options)) *Client {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{client: sdk, opts: opts}
}

// WithModel overrides the model id by name.
func WithModel(name string) func(o *Options) {
	return func(o *Options) { o.Model = anthropic.Model(name) }
}

func defaultOptions() Options {
	return Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
		Greeting:    "Hello! Ask me anything.",
	}
}

// StartConversation resets the conversation history and streams the opening
// turn.
func (c *Client) StartConversation(ctx context.Context) (*activity.Stream, error) {
	c.mu.Lock()
	c.conversationID = activity.NewID()
	c.history = c.history[:0]
	conversationID := c.conversationID
	c.mu.Unlock()

	p := activity.NewPipe(activity.DefaultStreamBuffer)
	go func() {
		defer p.Close()
		greeting := activity.NewMessage(c.opts.Greeting)
		greeting.Conversation = &activity.ConversationAccount{ID: conversationID}
		p.Send(ctx, greeting)
	}()
	return p.Stream(), nil
}

// AskQuestion appends the question to the conversation history and streams
// the model reply as a typing indicator followed by message fragments.
func (c *Client) AskQuestion(ctx context.Context, question string, optFns ...func(o *client.AskOptions)) (*activity.Stream, error) {
	askOpts := client.AskOptions{}
	for _, fn := range optFns {
		fn(&askOpts)
	}

	userTurn := question
	if askOpts.Hint != "" {
		userTurn = question + "\n\nHint: " + askOpts.Hint
	}

	c.mu.Lock()
	if c.conversationID == "" {
		c.conversationID = activity.NewID()
	}
	conversationID := c.conversationID
	c.history = append(c.history, anthropic.NewUserMessage(anthropic.NewTextBlock(userTurn)))
	params := anthropic.MessageNewParams{
		Model:       c.opts.Model,
		MaxTokens:   c.opts.MaxTokens,
		Temperature: anthropic.Float(c.opts.Temperature),
		Messages:    append([]anthropic.MessageParam(nil), c.history...),
	}
	if c.opts.Instructions != "" {
		params.System = []anthropic.TextBlockParam{{Text: c.opts.Instructions}}
	}
	c.mu.Unlock()

	p := activity.NewPipe(activity.DefaultStreamBuffer)
	go func() {
		defer p.Close()

		typing := activity.NewTyping()
		typing.Conversation = &activity.ConversationAccount{ID: conversationID}
		if !p.Send(ctx, typing) {
			return
		}

		stream := c.client.Messages.NewStreaming(ctx, params)
		var full strings.Builder
		for stream.Next() {
			event := stream.Current()
			switch ev := event.AsAny().(type) {
			case anthropic.ContentBlockDeltaEvent:
				switch delta := ev.Delta.AsAny().(type) {
				case anthropic.TextDelta:
					if delta.Text == "" {
						continue
					}
					full.WriteString(delta.Text)
					msg := activity.NewMessage(delta.Text)
					msg.Conversation = &activity.ConversationAccount{ID: conversationID}
					if !p.Send(ctx, msg) {
						return
					}
				}
			}
		}
		if err := stream.Err(); err != nil {
			p.Fail(fmt.Errorf("anthropic streaming error: %w", err))
			return
		}

		c.mu.Lock()
		c.history = append(c.history, anthropic.NewAssistantMessage(anthropic.NewTextBlock(full.String())))
		c.mu.Unlock()
	}()
	return p.Stream(), nil
}
