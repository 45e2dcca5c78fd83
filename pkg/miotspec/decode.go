package miotspec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Decode decodes an instance document from r into a generic value tree.
// Numbers are decoded as json.Number, not float64, so identifier values
// keep their exact digits.
func Decode(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding instance document: %w", err)
	}
	return doc, nil
}

// DecodeBytes decodes an instance document from raw JSON bytes.
func DecodeBytes(data []byte) (any, error) {
	return Decode(bytes.NewReader(data))
}
