package langfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Format selects the output rendering.
type Format string

const (
	// FormatJSON renders 4-space-indented JSON (the default).
	FormatJSON Format = "json"
	// FormatYAML renders YAML.
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name given on the command line.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatJSON, FormatYAML:
		return Format(name), nil
	default:
		return "", fmt.Errorf("unknown format: %s (supported: json, yaml)", name)
	}
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// EncodeJSON writes the document to w as JSON, indented by 4 spaces,
// with non-ASCII characters left unescaped.
func EncodeJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(doc)
}

// EncodeYAML writes the document to w as YAML.
func EncodeYAML(w io.Writer, doc *Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Encode writes the document to w in the given format.
func Encode(w io.Writer, doc *Document, format Format) error {
	if format == FormatYAML {
		return EncodeYAML(w, doc)
	}
	return EncodeJSON(w, doc)
}

// DefaultPath returns the output path derived from the document's URN.
func DefaultPath(doc *Document, format Format) string {
	return doc.URN + format.Ext()
}

// Save writes the document to path in the given format.
func Save(path string, doc *Document, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Encode(f, doc, format); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
