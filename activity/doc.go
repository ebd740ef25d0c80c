// Package activity defines the conversational turn model exchanged between
// the console runner and an agent client. It provides:
//
//   - Activity (one unit of agent-or-user communication: type tag, text,
//     suggested actions, attachments, conversation reference)
//   - Stream (a cancellable, lazily pulled, forward-only activity sequence)
//   - Pipe (the producer side used by client implementations)
//
// The package is deliberately free of transport and provider concerns; client
// implementations translate their wire formats into activities and feed them
// through a Pipe.
package activity
