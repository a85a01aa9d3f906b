package hermes

import "fmt"

// Truncate returns a copy of the JSON value v that keeps only depth levels
// of nesting. Values below that depth are replaced by a short string that
// hints at their kind. Arrays keep their first element followed by a
// marker that tells how many elements were left out.
func Truncate(v any, depth int) any {
	k, ok := KindOf(v)
	if !ok {
		return fmt.Sprintf("<%T>", v)
	}
	if depth <= 0 {
		switch k {
		case KindString:
			return `"..."`
		case KindArray:
			return "[...]"
		case KindObject:
			return "{...}"
		}
		return k.String()
	}
	switch v := v.(type) {
	case map[string]any:
		res := make(map[string]any, len(v))
		for n, mv := range v {
			res[n] = Truncate(mv, depth-1)
		}
		return res
	case map[any]any:
		res := make(map[string]any, len(v))
		for n, mv := range v {
			res[fmt.Sprint(n)] = Truncate(mv, depth-1)
		}
		return res
	case []any:
		switch len(v) {
		case 0:
			return []any{}
		case 1:
			return []any{Truncate(v[0], depth-1)}
		}
		return []any{
			Truncate(v[0], depth-1),
			fmt.Sprintf("... (%d more)", len(v)-1),
		}
	}
	return v
}

// Normalize converts the maps with non-string keys that gopkg.in/yaml.v3
// produces into map[string]any, recursively. Keys are formatted with
// fmt.Sprint. If two keys of a map format to the same name, the value of
// the string key wins. Arrays and map[string]any are updated in place.
func Normalize(v any) any {
	switch v := v.(type) {
	case map[any]any:
		res := make(map[string]any, len(v))
		for k, mv := range v {
			if _, ok := k.(string); !ok {
				res[fmt.Sprint(k)] = Normalize(mv)
			}
		}
		for k, mv := range v {
			if s, ok := k.(string); ok {
				res[s] = Normalize(mv)
			}
		}
		return res
	case map[string]any:
		for n, mv := range v {
			v[n] = Normalize(mv)
		}
	case []any:
		for i, e := range v {
			v[i] = Normalize(e)
		}
	}
	return v
}
