package commands

import (
	"flag"
	"fmt"
	"io"
)

// RunCount runs the count command, printing the number of entries with the
// given key or of all entries.
func RunCount(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("count", flag.ContinueOnError)
	var pf parserFlags
	var key string
	pf.register(fs)
	fs.StringVar(&key, "key", "", "Only count entries with this key")
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		printCountUsage(stderr)
		return exitCommandError
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: expected exactly one argument string")
		printCountUsage(stderr)
		return exitCommandError
	}

	p, closeLog, err := pf.newParser(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer closeLog()

	store, err := p.Parse(fs.Arg(0), pf.options())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitValidation
	}
	defer store.Release()

	fmt.Fprintln(stdout, store.Count(key))
	return exitSuccess
}

func printCountUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: kvargs count [options] <args>

Options:
  -key          Only count entries with this key
  -keys         Comma-separated allow-list of keys
  -ends         Terminator bytes

Examples:
  kvargs count 'a=1,b,a=2'
  kvargs count -key a 'a=1,b,a=2'`)
}
