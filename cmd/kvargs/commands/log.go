package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aatifsyed/dpdk/pkg/log"
)

// LogOptions configures the log command.
type LogOptions struct {
	Filter log.Filter
	Format string
	File   string
}

// EventOutput is one diagnostic event as printed by the CLI.
type EventOutput struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	ParseID   string    `json:"parse_id" yaml:"parse_id"`
	Op        string    `json:"op" yaml:"op"`
	Input     string    `json:"input,omitempty" yaml:"input,omitempty"`
	Count     uint32    `json:"count" yaml:"count"`
	KeyMatch  string    `json:"key_match,omitempty" yaml:"key_match,omitempty"`
	ErrorKind string    `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	Error     string    `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorKey  string    `json:"error_key,omitempty" yaml:"error_key,omitempty"`
	Offset    *int      `json:"offset,omitempty" yaml:"offset,omitempty"`
	Index     *int      `json:"index,omitempty" yaml:"index,omitempty"`
}

// RunLog runs the log command, printing events from a diagnostic event log.
func RunLog(args []string, stdout, stderr io.Writer) int {
	opts, err := parseLogArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		printLogUsage(stderr)
		return exitCommandError
	}

	r, err := log.NewFilteredReader(opts.File, opts.Filter)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer r.Close()

	var events []EventOutput
	for {
		event, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			fmt.Fprintf(stderr, "Error: reading %s: %v\n", opts.File, err)
			return exitCommandError
		}
		events = append(events, eventOutput(event))
	}

	if ok, err := writeStructured(stdout, opts.Format, events); ok {
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}
		return exitSuccess
	}

	for _, e := range events {
		formatEvent(stdout, e)
	}
	fmt.Fprintf(stdout, "Total: %d events\n", len(events))
	return exitSuccess
}

func eventOutput(event log.Event) EventOutput {
	out := EventOutput{
		Timestamp: event.Timestamp,
		ParseID:   event.ParseID,
		Op:        event.Op.String(),
		Input:     event.Input,
		Count:     event.Count,
		KeyMatch:  event.KeyMatch,
	}
	if event.Error != nil {
		out.ErrorKind = event.Error.Kind.String()
		out.Error = event.Error.Message
		out.ErrorKey = event.Error.Key
		out.Offset = event.Error.Offset
		out.Index = event.Error.Index
	}
	return out
}

// formatEvent writes one event on one or two lines.
func formatEvent(w io.Writer, e EventOutput) {
	ts := e.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [%s] %-11s count=%d", ts, shortenID(e.ParseID), e.Op, e.Count)
	if e.KeyMatch != "" {
		fmt.Fprintf(w, " key=%s", e.KeyMatch)
	}
	if e.Input != "" {
		fmt.Fprintf(w, " input=%q", e.Input)
	}
	fmt.Fprintln(w)
	if e.ErrorKind != "" {
		fmt.Fprintf(w, "  %s: %s\n", e.ErrorKind, e.Error)
	}
}

// shortenID returns the first 8 characters of a parse ID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func parseLogArgs(args []string) (LogOptions, error) {
	fs := flag.NewFlagSet("log", flag.ContinueOnError)
	opts := LogOptions{}

	var op, kind string
	fs.StringVar(&opts.Filter.ParseID, "parse-id", "", "Only show events for this parse ID")
	fs.StringVar(&op, "op", "", "Only show this operation (parse, process, process_opt, release)")
	fs.StringVar(&kind, "kind", "", "Only show failures of this kind (e.g. syntax, capacity)")
	fs.BoolVar(&opts.Filter.FailedOnly, "failed", false, "Only show failures")
	fs.StringVar(&opts.Format, "format", "text", "Output format (text, json, yaml)")
	fs.StringVar(&opts.Format, "f", "text", "Output format (shorthand)")

	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if !validFormat(opts.Format) {
		return opts, fmt.Errorf("unknown format %q", opts.Format)
	}

	if op != "" {
		o, ok := log.ParseOp(strings.ToUpper(op))
		if !ok {
			return opts, fmt.Errorf("unknown op %q", op)
		}
		opts.Filter.Op = &o
	}
	if kind != "" {
		k, ok := parseErrorKind(strings.ToUpper(kind))
		if !ok {
			return opts, fmt.Errorf("unknown error kind %q", kind)
		}
		opts.Filter.Kind = &k
	}

	if fs.NArg() != 1 {
		return opts, fmt.Errorf("expected exactly one log file")
	}
	opts.File = fs.Arg(0)
	return opts, nil
}

func parseErrorKind(s string) (log.ErrorKind, bool) {
	for k := log.ErrorKindSyntax; k <= log.ErrorKindInvalidArgument; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

func printLogUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: kvargs log [options] <file.klog>

Options:
  -parse-id     Only show events for this parse ID
  -op           Only show this operation (parse, process, process_opt, release)
  -kind         Only show failures of this kind
  -failed       Only show failures
  -f, -format   Output format (text, json, yaml) [default: text]

Examples:
  kvargs log events.klog
  kvargs log -failed -format json events.klog`)
}
