// Package frontmatter renders h-entry properties as Hugo content files.
package frontmatter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/mfe/internal/mf2"
)

// Supported front matter formats.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// fields are the front matter keys written for an entry.
type fields struct {
	Title      string   `yaml:"title,omitempty" toml:"title,omitempty"`
	Categories []string `yaml:"categories" toml:"categories"`
}

// Build renders props as front matter in format followed by the content body.
func Build(props mf2.EntryProps, format string) ([]byte, error) {
	fm := fields{Title: props.Title, Categories: props.Categories}
	if fm.Categories == nil {
		fm.Categories = []string{}
	}

	var buf bytes.Buffer
	switch format {
	case FormatYAML:
		buf.WriteString("---\n")
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(fm); err != nil {
			return nil, fmt.Errorf("encoding yaml front matter: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding yaml front matter: %w", err)
		}
		buf.WriteString("---\n")
	case FormatTOML:
		buf.WriteString("+++\n")
		if err := toml.NewEncoder(&buf).Encode(fm); err != nil {
			return nil, fmt.Errorf("encoding toml front matter: %w", err)
		}
		buf.WriteString("+++\n")
	default:
		return nil, fmt.Errorf("unsupported front matter format: %s", format)
	}

	if body := strings.TrimSpace(props.Content); body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}
