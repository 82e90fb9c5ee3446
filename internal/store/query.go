package store

import (
	"encoding/json"
	"sort"
)

// applyQuery evaluates a ChildQuery over a raw child set. All backends fetch
// the immediate children of a path and run them through this one function so
// ordering and filtering behave identically everywhere.
func applyQuery(children []Child, q ChildQuery) []Child {
	if q.OrderBy == "" {
		sort.Slice(children, func(i, j int) bool { return children[i].Key < children[j].Key })
	} else {
		if q.HasEquals {
			filtered := children[:0]
			for _, c := range children {
				if valuesEqual(fieldOf(c.Value, q.OrderBy), q.Equals) {
					filtered = append(filtered, c)
				}
			}
			children = filtered
		}
		sort.SliceStable(children, func(i, j int) bool {
			vi, vj := fieldOf(children[i].Value, q.OrderBy), fieldOf(children[j].Value, q.OrderBy)
			if c := compareValues(vi, vj); c != 0 {
				return c < 0
			}
			return children[i].Key < children[j].Key
		})
	}

	if q.LimitToLast > 0 && len(children) > q.LimitToLast {
		children = children[len(children)-q.LimitToLast:]
	}
	return children
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// fieldOf extracts one field of a raw JSON document. Missing fields and
// non-object documents decode as nil, which sorts first.
func fieldOf(raw json.RawMessage, field string) any {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil
	}
	return doc[field]
}

// typeRank orders JSON values across types: null < bool < number < string.
func typeRank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case float64:
		return 2
	case string:
		return 3
	default:
		return 4
	}
}

func compareValues(a, b any) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch av := a.(type) {
	case bool:
		bv := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	case float64:
		bv := b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case string:
		bv := b.(string)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	default:
		return 0
	}
}

func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	// Numeric filter values arrive as Go ints or floats; stored JSON numbers
	// always decode as float64.
	if bf, ok := toFloat(b); ok {
		af, ok := toFloat(a)
		return ok && af == bf
	}
	return typeRank(a) == typeRank(b) && compareValues(a, b) == 0
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
