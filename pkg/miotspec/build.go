package miotspec

import (
	"fmt"
	"strings"
)

// Identifier alias chains per record kind, tried in order.
var (
	serviceIDFields  = []string{"siid", "iid", "id"}
	propertyIDFields = []string{"piid", "iid", "id"}
	actionIDFields   = []string{"aiid", "iid", "id"}
	eventIDFields    = []string{"eiid", "iid", "id"}
)

// valueListFields are the known aliases for a property's enumerated value
// list, tried in order; the first alias present wins.
var valueListFields = []string{"value-list", "value_list", "valueList", "enum", "value list", "values"}

// BuildMapping walks the service records of an instance document and builds
// the flat key → description mapping. Entries with an empty description are
// omitted. The result is sorted (see Mapping.Sort).
func BuildMapping(root any) *Mapping {
	mapping := NewMapping()

	for _, node := range Services(root) {
		svc, ok := node.(map[string]any)
		if !ok {
			continue
		}
		sid := FormatID(firstField(svc, serviceIDFields))
		if desc := Description(svc); desc != "" {
			mapping.Set("service:"+sid, desc)
		}

		for _, node := range listField(svc, "properties") {
			prop, ok := node.(map[string]any)
			if !ok {
				continue
			}
			pid := FormatID(firstField(prop, propertyIDFields))
			prefix := fmt.Sprintf("service:%s:property:%s", sid, pid)
			if desc := Description(prop); desc != "" {
				mapping.Set(prefix, desc)
			}
			for i, entry := range valueList(prop) {
				if desc := valueDescription(entry); desc != "" {
					mapping.Set(fmt.Sprintf("%s:valuelist:%03d", prefix, i), desc)
				}
			}
		}

		for _, node := range listField(svc, "actions") {
			act, ok := node.(map[string]any)
			if !ok {
				continue
			}
			if desc := Description(act); desc != "" {
				aid := FormatID(firstField(act, actionIDFields))
				mapping.Set(fmt.Sprintf("service:%s:action:%s", sid, aid), desc)
			}
		}

		for _, node := range listField(svc, "events") {
			ev, ok := node.(map[string]any)
			if !ok {
				continue
			}
			if desc := Description(ev); desc != "" {
				eid := FormatID(firstField(ev, eventIDFields))
				mapping.Set(fmt.Sprintf("service:%s:event:%s", sid, eid), desc)
			}
		}
	}

	mapping.Sort()
	return mapping
}

// valueList returns the property's enumerated value list, or nil when no
// alias resolves to an array.
func valueList(prop map[string]any) []any {
	for _, field := range valueListFields {
		if v, ok := prop[field]; ok {
			list, _ := v.([]any)
			return list
		}
	}
	return nil
}

// valueDescription extracts the description of a single value-list entry.
// String entries are used directly; object entries go through Description
// with "value" and "name" fields as fallbacks; other scalars are rendered.
func valueDescription(entry any) string {
	switch e := entry.(type) {
	case string:
		return strings.TrimSpace(e)
	case map[string]any:
		if desc := Description(e); desc != "" {
			return desc
		}
		for _, field := range []string{"value", "name"} {
			if v, ok := e[field]; ok && v != nil {
				if desc := strings.TrimSpace(fmt.Sprint(v)); desc != "" {
					return desc
				}
			}
		}
		return ""
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(e))
	}
}

// firstField returns the value of the first field present in obj, or nil.
func firstField(obj map[string]any, fields []string) any {
	for _, field := range fields {
		if v, ok := obj[field]; ok {
			return v
		}
	}
	return nil
}

// listField returns obj[field] when it is an array, else nil.
func listField(obj map[string]any, field string) []any {
	list, _ := obj[field].([]any)
	return list
}
