package miotspec

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Entry is one key/description pair of a Mapping.
type Entry struct {
	Key         string
	Description string
}

// Mapping is an ordered collection of key/description pairs. Writing an
// existing key overwrites its description in place (last write wins);
// marshalling preserves entry order.
type Mapping struct {
	entries []Entry
	index   map[string]int
}

// NewMapping returns an empty Mapping.
func NewMapping() *Mapping {
	return &Mapping{index: make(map[string]int)}
}

// Set adds or overwrites the description for key.
func (m *Mapping) Set(key, description string) {
	if i, ok := m.index[key]; ok {
		m.entries[i].Description = description
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Description: description})
}

// Get returns the description for key and whether the key is present.
func (m *Mapping) Get(key string) (string, bool) {
	i, ok := m.index[key]
	if !ok {
		return "", false
	}
	return m.entries[i].Description, true
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	return len(m.entries)
}

// Keys returns the keys in entry order.
func (m *Mapping) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy of the entries in order.
func (m *Mapping) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Sort orders entries numerically by the key segment after the first ":"
// when that segment is all digits, otherwise lexicographically by the whole
// key. Numeric segments sort before non-numeric ones. The sort is stable,
// so entries sharing a numeric segment keep their insertion order
// (service, then properties with their value lists, then actions, then
// events).
func (m *Mapping) Sort() {
	sort.SliceStable(m.entries, func(i, j int) bool {
		ni, iNum := numericSegment(m.entries[i].Key)
		nj, jNum := numericSegment(m.entries[j].Key)
		switch {
		case iNum && jNum:
			return ni < nj
		case iNum != jNum:
			return iNum
		default:
			return m.entries[i].Key < m.entries[j].Key
		}
	})
	for i, e := range m.entries {
		m.index[e.Key] = i
	}
}

// numericSegment parses the key segment after the first ":" as an integer.
func numericSegment(key string) (int, bool) {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) < 2 || !isDigits(parts[1]) {
		return 0, false
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// MarshalJSON renders the mapping as a JSON object with keys in entry order.
// Non-ASCII characters are left unescaped.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := appendJSONString(&buf, e.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := appendJSONString(&buf, e.Description); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// appendJSONString writes s to buf as a JSON string without HTML escaping.
func appendJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encoder.Encode appends a newline; drop it.
	buf.Truncate(buf.Len() - 1)
	return nil
}
