// Package services implements per-resource operations on top of the API
// client, shared by every CLI command group.
//
// The API wraps payloads under endpoint-specific keys, and some endpoints
// return the payload unwrapped. Each service unwraps with an explicit
// fallback order instead of probing ad hoc.
package services

// unwrapList returns the list under the first matching key, or nil.
func unwrapList(resp map[string]any, keys ...string) []map[string]any {
	for _, key := range keys {
		raw, ok := resp[key]
		if !ok {
			continue
		}
		switch v := raw.(type) {
		case []any:
			out := make([]map[string]any, 0, len(v))
			for _, item := range v {
				if m, ok := item.(map[string]any); ok {
					out = append(out, m)
				}
			}
			return out
		case map[string]any:
			// Single object where a list was expected.
			return []map[string]any{v}
		}
	}
	return nil
}

// unwrapObject returns the object under the first matching key, falling
// back to the response itself.
func unwrapObject(resp map[string]any, keys ...string) map[string]any {
	for _, key := range keys {
		if m, ok := resp[key].(map[string]any); ok {
			return m
		}
	}
	return resp
}

// stringField returns a string field from a response object, or "".
func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// stringList converts a []any of strings.
func stringList(raw any) []string {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
