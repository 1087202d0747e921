package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/jacoelho/jolt/internal/number"
)

// ErrUnsupportedType indicates a Go value with no JSON representation.
var ErrUnsupportedType = errors.New("document: unsupported Go type")

// FromGo converts plain Go values, as produced by encoding/json or built by
// hand, into a tree. Map keys are sorted so the result is deterministic.
// Values that already are trees are returned unchanged.
func FromGo(v any) (any, error) {
	switch current := v.(type) {
	case nil, bool, string, json.Number:
		return current, nil
	case *Object:
		if current == nil {
			return nil, nil
		}
		out := NewObject(current.Len())
		for key, value := range current.All() {
			converted, err := FromGo(value)
			if err != nil {
				return nil, err
			}
			out.Set(key, converted)
		}
		return out, nil
	case map[string]any:
		keys := make([]string, 0, len(current))
		for key := range current {
			keys = append(keys, key)
		}
		slices.Sort(keys)

		out := NewObject(len(keys))
		for _, key := range keys {
			converted, err := FromGo(current[key])
			if err != nil {
				return nil, err
			}
			out.Set(key, converted)
		}
		return out, nil
	case []any:
		out := make([]any, len(current))
		for i, item := range current {
			converted, err := FromGo(item)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	case []string:
		out := make([]any, len(current))
		for i, item := range current {
			out[i] = item
		}
		return out, nil
	default:
		if n, ok := number.FromGo(v); ok {
			return n, nil
		}
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

// ToGo converts a tree into plain Go values: objects become map[string]any
// and member order is lost.
func ToGo(v any) any {
	switch current := v.(type) {
	case []any:
		out := make([]any, len(current))
		for i, item := range current {
			out[i] = ToGo(item)
		}
		return out
	case *Object:
		if current == nil {
			return nil
		}
		out := make(map[string]any, current.Len())
		for key, value := range current.All() {
			out[key] = ToGo(value)
		}
		return out
	default:
		return v
	}
}
