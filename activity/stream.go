package activity

import (
	"context"
	"sync"
)

// DefaultStreamBuffer sets channel buffering for activity delivery. Larger
// buffers let producers run ahead of a slow console consumer.
const DefaultStreamBuffer = 16

// Stream is a lazily pulled, forward-only sequence of activities. The
// consumer suspends in Next until the producer delivers the next turn or
// terminates the sequence; there is no buffering or reordering beyond the
// underlying channel.
//
// Usage mirrors the streaming iterators of the provider SDKs:
//
//	for stream.Next(ctx) {
//	    handle(stream.Current())
//	}
//	if err := stream.Err(); err != nil { ... }
type Stream struct {
	ch   <-chan *Activity
	errs <-chan error
	done chan struct{}

	closeOnce sync.Once
	cur       *Activity
	err       error
	finished  bool
}

// Next blocks until the next activity is available and reports whether one
// was received. It returns false when the producer closed the sequence, the
// context was cancelled, or the stream was closed.
func (s *Stream) Next(ctx context.Context) bool {
	if s.finished {
		return false
	}
	// Drain already-delivered activities before observing cancellation so a
	// terminating producer never loses in-flight turns.
	select {
	case a, ok := <-s.ch:
		return s.consume(a, ok)
	default:
	}
	select {
	case <-ctx.Done():
		s.err = ctx.Err()
		s.finished = true
		return false
	case a, ok := <-s.ch:
		return s.consume(a, ok)
	}
}

func (s *Stream) consume(a *Activity, ok bool) bool {
	if !ok {
		select {
		case err := <-s.errs:
			s.err = err
		default:
		}
		s.finished = true
		return false
	}
	s.cur = a
	return true
}

// Current returns the activity received by the last successful Next call.
// It may be nil if the producer explicitly emitted a nil turn.
func (s *Stream) Current() *Activity { return s.cur }

// Err returns the terminal error of the stream, if any. It should be checked
// after Next returns false.
func (s *Stream) Err() error { return s.err }

// Close abandons the stream. A blocked producer observes the close on its
// next Send and stops. Closing an already finished stream is a no-op.
func (s *Stream) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// Pipe is the producer half of a Stream. A client implementation sends
// activities from its own goroutine and closes the pipe when the sequence is
// complete (optionally recording a terminal error first).
type Pipe struct {
	ch   chan *Activity
	errs chan error
	done chan struct{}
}

// NewPipe creates a pipe with the given channel buffer size; sizes below one
// fall back to DefaultStreamBuffer.
func NewPipe(buffer int) *Pipe {
	if buffer < 1 {
		buffer = DefaultStreamBuffer
	}
	return &Pipe{
		ch:   make(chan *Activity, buffer),
		errs: make(chan error, 1),
		done: make(chan struct{}),
	}
}

// Stream returns the consumer half of the pipe.
func (p *Pipe) Stream() *Stream {
	return &Stream{ch: p.ch, errs: p.errs, done: p.done}
}

// Send delivers one activity, blocking until the consumer has capacity. It
// returns false when the context is cancelled or the consumer closed the
// stream; the producer should stop then.
func (p *Pipe) Send(ctx context.Context, a *Activity) bool {
	select {
	case <-ctx.Done():
		return false
	case <-p.done:
		return false
	case p.ch <- a:
		return true
	}
}

// Fail records the terminal error surfaced to the consumer after the last
// activity has been drained. Only the first recorded error is kept.
func (p *Pipe) Fail(err error) {
	select {
	case p.errs <- err:
	default:
	}
}

// Close terminates the sequence. Must be called exactly once by the producer
// after all Send and Fail calls.
func (p *Pipe) Close() { close(p.ch) }
