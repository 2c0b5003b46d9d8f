package devargs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidFile is returned for structurally valid documents that do not
// describe a usable device list.
var ErrInvalidFile = errors.New("invalid device-argument file")

// detectFormat picks a format from the file extension, falling back to the
// first meaningful line of data.
func detectFormat(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	}

	for _, line := range bytes.Split(data, []byte("\n")) {
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 || trimmed[0] == '#' {
			continue
		}
		if trimmed[0] == '[' {
			return FormatTOML
		}
		if bytes.Contains(trimmed, []byte(" = ")) {
			return FormatTOML
		}
		return FormatYAML
	}
	return FormatYAML
}

// ParseFile reads and parses a device-argument file.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	f, err := parse(data, detectFormat(path, data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.SourceFile = path
	return f, nil
}

// ParseBytes parses data in the given format. FormatAuto inspects the
// content.
func ParseBytes(data []byte, format Format) (*File, error) {
	if format == FormatAuto {
		format = detectFormat("", data)
	}
	return parse(data, format)
}

func parse(data []byte, format Format) (*File, error) {
	var f *File
	var err error
	switch format {
	case FormatTOML:
		f, err = parseTOML(data)
	default:
		f, err = parseYAML(data)
	}
	if err != nil {
		return nil, err
	}
	f.Format = format
	if err := validate(f); err != nil {
		return nil, err
	}
	return f, nil
}

// parseYAML decodes a YAML document, recording the line each device starts on.
func parseYAML(data []byte) (*File, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}

	f := &File{}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return f, nil
	}
	if err := root.Content[0].Decode(f); err != nil {
		return nil, fmt.Errorf("YAML decode error: %w", err)
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return f, nil
	}
	for i := 0; i < len(doc.Content)-1; i += 2 {
		keyNode := doc.Content[i]
		valueNode := doc.Content[i+1]
		if keyNode.Value != "devices" || valueNode.Kind != yaml.SequenceNode {
			continue
		}
		for j, item := range valueNode.Content {
			if j < len(f.Devices) {
				f.Devices[j].LineNumber = item.Line
			}
		}
	}
	return f, nil
}

// parseTOML decodes a TOML document. Decode errors carry their position.
func parseTOML(data []byte) (*File, error) {
	f := &File{}
	if err := toml.Unmarshal(data, f); err != nil {
		var decErr *toml.DecodeError
		if errors.As(err, &decErr) {
			row, col := decErr.Position()
			return nil, fmt.Errorf("TOML parse error at line %d, column %d: %w", row, col, err)
		}
		return nil, fmt.Errorf("TOML parse error: %w", err)
	}
	return f, nil
}

func validate(f *File) error {
	seen := make(map[string]bool, len(f.Devices))
	for i, d := range f.Devices {
		where := fmt.Sprintf("device %d", i)
		if d.LineNumber > 0 {
			where = fmt.Sprintf("line %d", d.LineNumber)
		}
		if d.Name == "" {
			return fmt.Errorf("%s: %w: missing name", where, ErrInvalidFile)
		}
		if seen[d.Name] {
			return fmt.Errorf("%s: %w: duplicate device %q", where, ErrInvalidFile, d.Name)
		}
		seen[d.Name] = true
	}
	return nil
}
