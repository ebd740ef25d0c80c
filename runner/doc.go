// Package runner implements the session runner driving an agent client from
// the console. Two modes exist:
//
//   - Interactive: stream the conversation opening, then loop reading one
//     line of operator text, forwarding it as a question and printing the
//     reply stream, resolving any embedded adaptive card form along the way.
//   - Batch: read an ordered question list from a workbook, ask each question
//     serially, and write one result row per question (plus a synthetic
//     System Start row) to a timestamped output workbook.
//
// The runner is a single logical thread of control; the only concurrency is
// the mode-selection timeout race and the client's stream delivery, which is
// consumed as a sequential pull loop. Client-level failures are never retried
// or reinterpreted here; they propagate to the caller.
package runner
