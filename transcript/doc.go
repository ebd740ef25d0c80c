// Package transcript houses concrete implementations of the Store interface:
// per-conversation records of every raw activity observed during a run. The
// batch driver serializes a question's activities into the Response Log cell;
// interactive runs keep the transcript for post-run inspection.
//
// Add durable backends in sub-packages without changing any calling code;
// only the wiring layer decides which implementation to instantiate.
package transcript
