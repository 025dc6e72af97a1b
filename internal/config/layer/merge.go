package layer

import "strings"

// DeepMerge folds src into dst and returns dst. Sections merge key by key;
// any other value from src replaces the one in dst.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if have, ok := dst[k].(map[string]any); ok {
				dst[k] = DeepMerge(have, sub)
				continue
			}
		}
		dst[k] = cloneValue(v)
	}
	return dst
}

// walkLeaves calls fn with the dotted path of every non-section value.
func walkLeaves(data map[string]any, prefix string, fn func(path string)) {
	for k, v := range data {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			walkLeaves(sub, path, fn)
			continue
		}
		fn(path)
	}
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		return cloneSlice(t)
	case []string:
		return append([]string(nil), t...)
	}
	return v
}

// GetByPath looks up a dotted path such as "view.scrollOff".
func GetByPath(data map[string]any, path string) (any, bool) {
	if data == nil || path == "" {
		return nil, false
	}
	var cur any = data
	for _, part := range strings.Split(path, ".") {
		section, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = section[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// SetByPath stores value at a dotted path, creating sections on the way
// and overwriting scalars that stand where a section is needed.
func SetByPath(data map[string]any, path string, value any) {
	if data == nil || path == "" {
		return
	}
	parts := strings.Split(path, ".")
	last := len(parts) - 1
	section := data
	for _, part := range parts[:last] {
		next, ok := section[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			section[part] = next
		}
		section = next
	}
	section[parts[last]] = value
}
