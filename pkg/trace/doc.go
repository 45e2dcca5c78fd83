// Package trace provides structured run tracing for miot-lang.
//
// This package defines the Logger interface and Event type for capturing
// pipeline events (fetch, parse, build, save). It is separate from
// operational logging (slog) - a trace file provides a complete
// machine-readable record of a run for debugging catalog issues.
//
// Applications configure tracing by providing a Logger implementation:
//
//	// For development: log to console via slog
//	tracer := trace.NewSlogAdapter(slog.Default())
//
//	// For later analysis: write to binary file
//	tracer, _ := trace.NewFileLogger("run.trace")
//
//	// Both: use MultiLogger
//	tracer := trace.NewMultiLogger(
//	    trace.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// Trace files use CBOR encoding; Reader decodes them back.
package trace
