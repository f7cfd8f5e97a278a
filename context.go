package entforge

import (
	"fmt"
	"strconv"
)

// Context is the name-to-value environment a template renders against. Values
// are scalars (string, bool, int, float64), nested Context/map values, or
// ordered lists of any of those. A Context is treated as read-only during a
// render.
type Context map[string]any

type missingValue struct{}

// Missing is the sentinel produced when a lookup resolves nothing. It is falsy
// in boolean positions; interpolating it is an error.
var Missing = missingValue{}

// IsMissing reports whether v is the Missing sentinel.
func IsMissing(v any) bool {
	_, ok := v.(missingValue)
	return ok
}

// scope is one level of loop-variable shadowing over a root Context. Lookups
// check loop bindings innermost-first, then fall back to the root map.
type scope struct {
	varName string
	value   any
	parent  *scope
	root    Context
}

func rootScope(ctx Context) *scope {
	return &scope{root: ctx}
}

func (s *scope) child(name string, value any) *scope {
	return &scope{varName: name, value: value, parent: s, root: s.root}
}

func (s *scope) lookup(name string) any {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.varName == name {
			return cur.value
		}
	}
	if v, ok := s.root[name]; ok {
		return v
	}
	return Missing
}

// truthy implements boolean coercion: false, empty string, zero numbers,
// Missing, nil, and empty lists/maps are falsy; everything else is truthy.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil, missingValue:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	case []any:
		return len(val) > 0
	case []Context:
		return len(val) > 0
	case []map[string]any:
		return len(val) > 0
	case []string:
		return len(val) > 0
	case Context:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}

// stringify renders a scalar value into output text.
func stringify(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case missingValue:
		return "", ErrUndefinedVariable
	default:
		return fmt.Sprint(val), nil
	}
}

// asList normalizes the list shapes a Context may carry into []any.
// Strings and maps are deliberately not iterable.
func asList(v any) ([]any, bool) {
	switch val := v.(type) {
	case []any:
		return val, true
	case []Context:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out, true
	case []string:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out, true
	default:
		return nil, false
	}
}

// fieldOf resolves one dotted-path segment against a map-shaped value.
func fieldOf(v any, name string) any {
	switch val := v.(type) {
	case Context:
		if inner, ok := val[name]; ok {
			return inner
		}
	case map[string]any:
		if inner, ok := val[name]; ok {
			return inner
		}
	}
	return Missing
}
