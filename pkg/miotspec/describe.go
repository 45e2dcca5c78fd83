package miotspec

import (
	"fmt"
	"sort"
	"strings"
)

// descriptionFields are the candidate fields holding a description,
// tried in order.
var descriptionFields = []string{"description", "name", "title", "desc", "display-name"}

// descriptionLangs are the language sub-keys recognized inside a nested
// description object, tried in order.
var descriptionLangs = []string{"en", "zh", "zh-CN", "cn", "default"}

// Description extracts a human-readable description from an instance node.
//
// A string node is returned as-is. An object node is probed for the
// description candidate fields in order; when the "description" field is
// itself an object, the recognized language sub-keys are tried first, then
// any remaining string value. Other scalars are rendered with their string
// representation. Returns "" when nothing usable is found; callers treat
// an empty result as "no description".
func Description(node any) string {
	if node == nil {
		return ""
	}
	if s, ok := node.(string); ok {
		return s
	}
	obj, ok := node.(map[string]any)
	if !ok {
		return fmt.Sprint(node)
	}

	for _, field := range descriptionFields {
		if s, ok := obj[field].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}

	// The description field itself may be an object keyed by language.
	if langs, ok := obj["description"].(map[string]any); ok {
		for _, lang := range descriptionLangs {
			if s, ok := langs[lang].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
		// Fall back to any string value. Keys are scanned in sorted
		// order to keep the result deterministic.
		for _, k := range sortedKeys(langs) {
			if s, ok := langs[k].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}

	return ""
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
