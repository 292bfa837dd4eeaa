// Package output formats decoded entries for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/mfe/internal/mf2"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatCSV  = "csv"
)

// Record is the flattened, printable form of a decoded item or entry.
// Keys use the mf2 wire names.
type Record struct {
	Type       string   `json:"type" yaml:"type" toml:"type"`
	Title      string   `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Content    string   `json:"content,omitempty" yaml:"content,omitempty" toml:"content,omitempty"`
	Categories []string `json:"category,omitempty" yaml:"category,omitempty" toml:"category,omitempty"`
}

// FromItem flattens a tagged item. Unknown items carry only their type.
func FromItem(it mf2.Item) Record {
	if it.Kind != mf2.KindEntry || it.Entry == nil {
		return Record{Type: it.Type}
	}
	return fromProps(mf2.TypeEntry, *it.Entry)
}

// FromEntry flattens a standalone entry.
func FromEntry(e mf2.Entry) Record {
	return fromProps(e.Type, e.Properties)
}

func fromProps(typ string, p mf2.EntryProps) Record {
	return Record{Type: typ, Title: p.Title, Content: p.Content, Categories: p.Categories}
}

// Renderer writes records in one of the output formats.
type Renderer struct {
	Format string
	// Color enables colored labels in text output.
	Color bool
}

// Render writes rec to w.
func (r Renderer) Render(w io.Writer, rec Record) error {
	switch r.Format {
	case FormatJSON:
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		data, err := yaml.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatTOML:
		data, err := toml.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding TOML: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatText, "":
		return r.renderText(w, rec)
	default:
		return fmt.Errorf("unsupported output format: %s", r.Format)
	}
}

func (r Renderer) renderText(w io.Writer, rec Record) error {
	var b strings.Builder
	field := func(name, value string) {
		label := fmt.Sprintf("%-11s", name+":")
		if r.Color {
			c := color.New(color.FgCyan, color.Bold)
			c.EnableColor()
			label = c.Sprint(label)
		}
		b.WriteString(label + " " + value + "\n")
	}

	field("type", rec.Type)
	if rec.Title != "" {
		field("title", rec.Title)
	}
	if rec.Type == mf2.TypeEntry || len(rec.Categories) > 0 {
		field("categories", strings.Join(rec.Categories, ", "))
	}
	if rec.Content != "" {
		b.WriteString("\n" + rec.Content + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
