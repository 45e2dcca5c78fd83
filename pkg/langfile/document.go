// Package langfile assembles and renders lang-file documents for the
// Home Assistant MIoT integration: a per-URN, per-language mapping from
// structured key paths to description strings.
package langfile

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/pkg/miotspec"
)

// Document is a lang-file document: { <urn>: { <lang>: <mapping> } }.
// Mapping key order is preserved through both JSON and YAML marshalling.
type Document struct {
	URN     string
	Lang    string
	Mapping *miotspec.Mapping
}

// New wraps a built mapping under the given normalized URN and language tag.
func New(urn, lang string, mapping *miotspec.Mapping) *Document {
	return &Document{URN: urn, Lang: lang, Mapping: mapping}
}

// MarshalJSON renders the document with non-ASCII characters left unescaped
// and mapping keys in entry order.
func (d *Document) MarshalJSON() ([]byte, error) {
	inner, err := d.Mapping.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := writeJSONString(&buf, d.URN); err != nil {
		return nil, err
	}
	buf.WriteString(":{")
	if err := writeJSONString(&buf, d.Lang); err != nil {
		return nil, err
	}
	buf.WriteByte(':')
	buf.Write(inner)
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// MarshalYAML renders the document as an order-preserving yaml.Node tree.
func (d *Document) MarshalYAML() (any, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range d.Mapping.Entries() {
		mapping.Content = append(mapping.Content, scalarNode(e.Key), scalarNode(e.Description))
	}
	lang := &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: []*yaml.Node{scalarNode(d.Lang), mapping},
	}
	return &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: []*yaml.Node{scalarNode(d.URN), lang},
	}, nil
}

func scalarNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// writeJSONString writes s to buf as a JSON string without HTML escaping.
func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encoder.Encode appends a newline; drop it.
	buf.Truncate(buf.Len() - 1)
	return nil
}
