package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/copilotcli/activity"
	"github.com/hupe1980/copilotcli/client"
)

// ScriptClient is a canned client.Client for tests. Start turns and per
// question replies are scripted up front; every question asked is recorded
// for later assertions.
type ScriptClient struct {
	mu        sync.Mutex
	start     []*activity.Activity
	responses map[string][]*activity.Activity
	questions []string

	// StartErr, when set, is returned by StartConversation.
	StartErr error
	// AskErr, when set, is returned by AskQuestion.
	AskErr error
}

var _ client.Client = (*ScriptClient)(nil)

// NewScriptClient constructs an empty scripted client.
func NewScriptClient() *ScriptClient {
	return &ScriptClient{responses: make(map[string][]*activity.Activity)}
}

// SetStart scripts the turns streamed by StartConversation. Nil entries are
// streamed as-is to exercise the nil turn contract violation path.
func (c *ScriptClient) SetStart(activities ...*activity.Activity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start = activities
}

// AddResponse scripts the reply turns for one exact question. Questions
// without a scripted reply get a single generated message turn.
func (c *ScriptClient) AddResponse(question string, activities ...*activity.Activity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses[question] = activities
}

// Questions returns the questions asked so far in order.
func (c *ScriptClient) Questions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.questions))
	copy(out, c.questions)
	return out
}

// StartConversation implements client.Client.
func (c *ScriptClient) StartConversation(ctx context.Context) (*activity.Stream, error) {
	c.mu.Lock()
	scripted := c.start
	err := c.StartErr
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return c.stream(ctx, scripted), nil
}

// AskQuestion implements client.Client.
func (c *ScriptClient) AskQuestion(ctx context.Context, question string, optFns ...func(o *client.AskOptions)) (*activity.Stream, error) {
	c.mu.Lock()
	c.questions = append(c.questions, question)
	scripted, ok := c.responses[question]
	err := c.AskErr
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if !ok {
		scripted = []*activity.Activity{activity.NewMessage(fmt.Sprintf("scripted response to: %s", question))}
	}
	return c.stream(ctx, scripted), nil
}

func (c *ScriptClient) stream(ctx context.Context, activities []*activity.Activity) *activity.Stream {
	p := activity.NewPipe(len(activities) + 1)
	go func() {
		defer p.Close()
		for _, a := range activities {
			if !p.Send(ctx, a) {
				return
			}
		}
	}()
	return p.Stream()
}
