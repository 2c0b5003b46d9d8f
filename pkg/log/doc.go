// Package log provides structured diagnostic logging for kvargs.
//
// Argument stores collapse every construction and processing failure to a
// single "no result" at the C-style boundary. This package is the side
// channel that keeps the precise cause: every parse, failed process and release
// can be captured as an Event carrying the parse ID, the operation, the
// error kind and the offending key.
//
// It is separate from operational logging (slog) - event capture provides
// a complete machine-readable trace for debugging driver configuration.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	parser.Logger = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	parser.Logger, _ = log.NewFileLogger("/var/log/kvargs/events.klog")
//
//	// Both: use MultiLogger
//	parser.Logger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # File Format
//
// Log files use CBOR encoding with .klog extension. The "kvargs log" command
// reads them back with filtering.
package log
