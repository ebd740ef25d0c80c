// Package openai implements the client.Client boundary on top of the OpenAI
// Chat Completions API (streaming). Reply deltas are surfaced as message
// activities so the console can print fragments as they arrive.
package openai

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/openai/openai-go"

	"github.com/hupe1980/copilotcli/activity"
	"github.com/hupe1980/copilotcli/client"
)

// Options configure the OpenAI-backed agent client. Fields mirror a minimal
// subset of Chat Completion parameters; extend via functional options without
// breaking callers.
type Options struct {
	Model               openai.ChatModel
	Temperature         float64
	MaxCompletionTokens int64
	// Instructions is the system prompt pinned to every conversation.
	Instructions string
	// Greeting is the opening turn emitted by StartConversation.
	Greeting string
}

// Client drives conversations through the OpenAI Chat Completions API while
// keeping per-conversation message history so follow-up questions carry
// context.
type Client struct {
	client *openai.Client
	opts   Options

	mu             sync.Mutex
	conversationID string
	history        []openai.ChatCompletionMessageParamUnion
}

var _ client.Client = (*Client)(nil)

// New creates a client using the official SDK with ambient credentials.
func New(optFns ...func(o *Options)) *Client {
	c := openai.NewClient()
	return NewFromClient(&c, optFns...)
}

// NewFromClient creates a client from an existing SDK client.
func NewFromClient(sdk *openai.Client, optFns ...func(o *Options)) *Client {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
		Greeting:            "Hello! Ask me anything.",
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{client: sdk, opts: opts}
}

// WithModel overrides the model id by name.
func WithModel(name string) func(o *Options) {
	return func(o *Options) { o.Model = openai.ChatModel(name) }
}

// StartConversation resets the conversation history and streams the opening
// turn. The conversation identifier is minted locally; the Chat Completions
// API itself is stateless.
func (c *Client) StartConversation(ctx context.Context) (*activity.Stream, error) {
	c.mu.Lock()
	c.conversationID = activity.NewID()
	c.history = c.history[:0]
	if c.opts.Instructions != "" {
		c.history = append(c.history, openai.SystemMessage(c.opts.Instructions))
	}
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

	c.mu.Lock()
	if c.conversationID == "" {
		c.conversationID = activity.NewID()
	}
	conversationID := c.conversationID
	c.history = append(c.history, openai.UserMessage(withHint(question, askOpts.Hint)))
	params := openai.ChatCompletionNewParams{
		Messages:            append([]openai.ChatCompletionMessageParamUnion(nil), c.history...),
		Model:               c.opts.Model,
		Temperature:         openai.Float(c.opts.Temperature),
		MaxCompletionTokens: openai.Int(c.opts.MaxCompletionTokens),
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

		stream := c.client.Chat.Completions.NewStreaming(ctx, params)
		var full strings.Builder
		for stream.Next() {
			chunk := stream.Current()
			for _, choice := range chunk.Choices {
				if choice.Delta.Content == "" {
					continue
				}
				full.WriteString(choice.Delta.Content)
				msg := activity.NewMessage(choice.Delta.Content)
				msg.Conversation = &activity.ConversationAccount{ID: conversationID}
				if !p.Send(ctx, msg) {
					return
				}
			}
		}
		if err := stream.Err(); err != nil {
			p.Fail(fmt.Errorf("openai streaming error: %w", err))
			return
		}

		c.mu.Lock()
		c.history = append(c.history, openai.AssistantMessage(full.String()))
		c.mu.Unlock()
	}()
	return p.Stream(), nil
}

// withHint folds the optional hint into the user turn.
func withHint(question, hint string) string {
	if hint == "" {
		return question
	}
	return question + "\n\nHint: " + hint
}
