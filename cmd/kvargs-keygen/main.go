// kvargs-keygen generates allow-list constants and a checker for a driver's
// kvargs keys from a YAML schema.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"
)

func main() {
	schemaPath := flag.String("schema", "", "Path to the key schema YAML")
	output := flag.String("output", "", "Output Go file")
	flag.Parse()

	if *schemaPath == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "Usage: kvargs-keygen -schema <path> -output <file.go>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*schemaPath, *output); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(schemaPath, output string) error {
	schema, err := LoadSchema(schemaPath)
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	code, err := Generate(schema)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err := writeFormatted(output, code); err != nil {
		return err
	}
	fmt.Printf("  generated %s\n", output)
	return nil
}

// writeFormatted formats Go source code with goimports and writes it to a file.
func writeFormatted(path string, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Write unformatted so you can debug the generator output
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}
