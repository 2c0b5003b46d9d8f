package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/aatifsyed/dpdk/pkg/kvargs"
)

// ParseOptions configures the parse command.
type ParseOptions struct {
	parserFlags
	Format string
	Args   string
}

// ParseOutput is the result of the parse command.
type ParseOutput struct {
	ID      string        `json:"id" yaml:"id"`
	Input   string        `json:"input" yaml:"input"`
	Count   int           `json:"count" yaml:"count"`
	Entries []EntryOutput `json:"entries" yaml:"entries"`
}

// ParseErrorOutput describes a failed parse.
type ParseErrorOutput struct {
	Input  string `json:"input" yaml:"input"`
	Error  string `json:"error" yaml:"error"`
	Key    string `json:"key,omitempty" yaml:"key,omitempty"`
	Offset *int   `json:"offset,omitempty" yaml:"offset,omitempty"`
}

// RunParse runs the parse command.
func RunParse(args []string, stdout, stderr io.Writer) int {
	opts, err := parseParseArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		printParseUsage(stderr)
		return exitCommandError
	}

	p, closeLog, err := opts.newParser(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer closeLog()

	store, err := p.Parse(opts.Args, opts.options())
	if err != nil {
		out := parseErrorOutput(err)
		if ok, _ := writeStructured(stdout, opts.Format, out); !ok {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return exitValidation
	}
	defer store.Release()

	output := ParseOutput{
		ID:      store.ID(),
		Input:   opts.Args,
		Count:   store.Len(),
		Entries: entriesOf(store),
	}
	if ok, err := writeStructured(stdout, opts.Format, output); ok {
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}
		return exitSuccess
	}

	for _, e := range output.Entries {
		if e.Value == nil {
			fmt.Fprintf(stdout, "%s\n", e.Key)
			continue
		}
		fmt.Fprintf(stdout, "%s = %s\n", e.Key, *e.Value)
	}
	fmt.Fprintf(stdout, "\nTotal: %d entries\n", output.Count)
	return exitSuccess
}

func parseErrorOutput(err error) ParseErrorOutput {
	out := ParseErrorOutput{Error: err.Error()}
	var parseErr *kvargs.ParseError
	if errors.As(err, &parseErr) {
		out.Input = parseErr.Input
		out.Key = parseErr.Key
		out.Error = parseErr.Err.Error()
	}
	var synErr *kvargs.SyntaxError
	if errors.As(err, &synErr) {
		offset := synErr.Offset
		out.Offset = &offset
	}
	return out
}

func parseParseArgs(args []string) (ParseOptions, error) {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	opts := ParseOptions{}

	opts.register(fs)
	fs.StringVar(&opts.Format, "format", "text", "Output format (text, json, yaml)")
	fs.StringVar(&opts.Format, "f", "text", "Output format (shorthand)")

	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if !validFormat(opts.Format) {
		return opts, fmt.Errorf("unknown format %q", opts.Format)
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		return opts, fmt.Errorf("expected exactly one argument string, got %d", len(remaining))
	}
	opts.Args = remaining[0]
	return opts, nil
}

func printParseUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: kvargs parse [options] <args>

Options:
  -f, -format   Output format (text, json, yaml) [default: text]
  -keys         Comma-separated allow-list of keys
  -ends         Terminator bytes
  -event-log    Append diagnostic events to a CBOR file
  -v            Log diagnostic events to stderr

Examples:
  kvargs parse 'iface=eth0,promisc'
  kvargs parse -format json -keys iface,promisc 'iface=eth0,promisc'`)
}
