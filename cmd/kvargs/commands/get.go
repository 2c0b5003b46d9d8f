package commands

import (
	"flag"
	"fmt"
	"io"

	"github.com/aatifsyed/dpdk/pkg/kvargs"
)

// GetOptions configures the get command.
type GetOptions struct {
	parserFlags
	Key      string
	Value    string
	HasValue bool
	Args     string
}

// RunGet runs the get command. With only a key it prints the value of the
// first entry with that key. With -value or without a key it prints the
// first valued entry matching the filter.
func RunGet(args []string, stdout, stderr io.Writer) int {
	opts, err := parseGetArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		printGetUsage(stderr)
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
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitValidation
	}
	defer store.Release()

	var value string
	var ok bool
	if opts.Key != "" && !opts.HasValue {
		value, ok = store.Get(opts.Key)
	} else {
		f := kvargs.Filter{Key: opts.Key}
		if opts.HasValue {
			f.Value = &opts.Value
		}
		value, ok = store.GetWithValue(f)
	}
	if !ok {
		fmt.Fprintln(stderr, "Error: no matching entry with a value")
		return exitValidation
	}
	fmt.Fprintln(stdout, value)
	return exitSuccess
}

func parseGetArgs(args []string) (GetOptions, error) {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	opts := GetOptions{}

	opts.register(fs)
	fs.Func("value", "Only match entries with this value", func(s string) error {
		opts.Value = s
		opts.HasValue = true
		return nil
	})

	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	remaining := fs.Args()
	switch len(remaining) {
	case 1:
		opts.Args = remaining[0]
	case 2:
		opts.Args = remaining[0]
		opts.Key = remaining[1]
	default:
		return opts, fmt.Errorf("expected <args> [key], got %d arguments", len(remaining))
	}
	return opts, nil
}

func printGetUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: kvargs get [options] <args> [key]

Options:
  -value        Only match entries with this value
  -keys         Comma-separated allow-list of keys
  -ends         Terminator bytes
  -event-log    Append diagnostic events to a CBOR file
  -v            Log diagnostic events to stderr

Examples:
  kvargs get 'iface=eth0,iface=eth1' iface
  kvargs get -value eth1 'iface=eth0,iface=eth1'`)
}
