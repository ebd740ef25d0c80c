package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_DeliversInOrder(t *testing.T) {
	ctx := context.Background()
	p := NewPipe(4)
	go func() {
		defer p.Close()
		p.Send(ctx, NewMessage("one"))
		p.Send(ctx, NewMessage("two"))
		p.Send(ctx, NewMessage("three"))
	}()

	stream := p.Stream()
	var texts []string
	for stream.Next(ctx) {
		texts = append(texts, stream.Current().Text)
	}

	require.NoError(t, stream.Err())
	assert.Equal(t, []string{"one", "two", "three"}, texts)

	// Exhausted stream stays exhausted.
	assert.False(t, stream.Next(ctx))
}

func TestStream_TerminalErrorAfterDrain(t *testing.T) {
	ctx := context.Background()
	p := NewPipe(4)
	go func() {
		p.Send(ctx, NewMessage("partial"))
		p.Fail(errors.New("boom"))
		p.Close()
	}()

	stream := p.Stream()
	var texts []string
	for stream.Next(ctx) {
		texts = append(texts, stream.Current().Text)
	}

	// The in-flight activity arrives before the terminal error surfaces.
	assert.Equal(t, []string{"partial"}, texts)
	assert.EqualError(t, stream.Err(), "boom")
}

func TestStream_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPipe(1)
	stream := p.Stream()

	// Producer never sends; consumer must unblock on cancellation.
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	assert.False(t, stream.Next(ctx))
	assert.ErrorIs(t, stream.Err(), context.Canceled)
}

func TestStream_CloseStopsProducer(t *testing.T) {
	ctx := context.Background()
	p := NewPipe(1)
	stream := p.Stream()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		defer p.Close()
		for i := 0; ; i++ {
			if !p.Send(ctx, NewMessage("turn")) {
				return
			}
		}
	}()

	require.True(t, stream.Next(ctx))
	stream.Close()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("producer did not observe stream close")
	}
}

func TestStream_NilTurnPassesThrough(t *testing.T) {
	ctx := context.Background()
	p := NewPipe(1)
	go func() {
		defer p.Close()
		p.Send(ctx, nil)
	}()

	stream := p.Stream()
	require.True(t, stream.Next(ctx))
	assert.Nil(t, stream.Current())
}
