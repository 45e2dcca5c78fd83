package miotspec

// serviceListKeys are the document keys that hold the service list when the
// document follows the nominal catalog schema.
var serviceListKeys = []string{"services", "service", "specServices"}

// Services locates the service list inside an instance document.
//
// The nominal location is a top-level "services" array (with "service" and
// "specServices" as known vendor variants). When none of those is present,
// the tree is searched depth-first for the first array containing an object
// with a "siid" or "iid" key; that whole array is returned. Returns an empty
// slice when no qualifying array exists.
func Services(root any) []any {
	if obj, ok := root.(map[string]any); ok {
		for _, key := range serviceListKeys {
			if list, ok := obj[key].([]any); ok {
				return list
			}
		}
	}
	if found := searchServiceList(root); found != nil {
		return found
	}
	return []any{}
}

// searchServiceList walks the value tree depth-first and returns the first
// array with at least one service-shaped element. Object keys are visited in
// sorted order so the search is deterministic. Search stops at the first hit.
func searchServiceList(node any) []any {
	switch n := node.(type) {
	case map[string]any:
		for _, k := range sortedKeys(n) {
			v := n[k]
			if list, ok := v.([]any); ok && containsServiceRecord(list) {
				return list
			}
			switch v.(type) {
			case map[string]any, []any:
				if found := searchServiceList(v); found != nil {
					return found
				}
			}
		}
	case []any:
		for _, item := range n {
			if rec, ok := item.(map[string]any); ok && isServiceRecord(rec) {
				return n
			}
			switch item.(type) {
			case map[string]any, []any:
				if found := searchServiceList(item); found != nil {
					return found
				}
			}
		}
	}
	return nil
}

func containsServiceRecord(list []any) bool {
	for _, item := range list {
		if rec, ok := item.(map[string]any); ok && isServiceRecord(rec) {
			return true
		}
	}
	return false
}

func isServiceRecord(obj map[string]any) bool {
	_, hasSiid := obj["siid"]
	_, hasIid := obj["iid"]
	return hasSiid || hasIid
}
