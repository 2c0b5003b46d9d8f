package main

import (
	"fmt"
	"strings"
	"text/template"
)

// funcMap provides helper functions available to the template.
var funcMap = template.FuncMap{
	"goTitleCase": goTitleCase,
	"quote":       func(s string) string { return fmt.Sprintf("%q", s) },
}

const keysTmpl = `// Code generated by kvargs-keygen. DO NOT EDIT.

package {{.Package}}

import (
	"fmt"

	"github.com/aatifsyed/dpdk/pkg/kvargs"
)
{{$name := goTitleCase .Name}}
// Keys accepted by {{$name}} arguments.
const (
{{- range .Keys}}
{{- if .Description}}
	// {{.Description}}
{{- end}}
	{{$name}}Key{{goTitleCase .Name}} = {{quote .Name}}
{{- end}}
)

// {{$name}}ValidKeys is the allow-list for {{$name}} arguments.
var {{$name}}ValidKeys = []string{
{{- range .Keys}}
	{{$name}}Key{{goTitleCase .Name}},
{{- end}}
}

// Parse{{$name}} parses args, accepting only {{$name}}ValidKeys.
func Parse{{$name}}(args string) (*kvargs.Store, error) {
	return kvargs.Parse(args, {{$name}}ValidKeys)
}

// Check{{$name}} reports the first required key that is missing and the
// first key whose value presence does not match its definition.
func Check{{$name}}(s *kvargs.Store) error {
{{- range .Keys}}
{{- if .Required}}
	if !s.Has({{$name}}Key{{goTitleCase .Name}}) {
		return fmt.Errorf("missing required key %q", {{$name}}Key{{goTitleCase .Name}})
	}
{{- end}}
{{- end}}
{{- if .HasValueChecks}}
	for key, value := range s.All() {
		switch key {
{{- range .Keys}}
{{- if eq .Value "required"}}
		case {{$name}}Key{{goTitleCase .Name}}:
			if value == nil {
				return fmt.Errorf("key %q needs a value", key)
			}
{{- else if eq .Value "none"}}
		case {{$name}}Key{{goTitleCase .Name}}:
			if value != nil {
				return fmt.Errorf("key %q takes no value", key)
			}
{{- end}}
{{- end}}
		}
	}
{{- end}}
	return nil
}
`

var keysTemplate = template.Must(template.New("keys").Funcs(funcMap).Parse(keysTmpl))

// Generate renders the Go source for s. The output is not yet formatted.
func Generate(s *RawSchema) (string, error) {
	var b strings.Builder
	if err := keysTemplate.Execute(&b, s); err != nil {
		return "", fmt.Errorf("rendering %s: %w", s.Name, err)
	}
	return b.String(), nil
}
