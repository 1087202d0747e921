package document

import (
	"encoding/json"
	"fmt"

	"github.com/jacoelho/jolt/internal/number"
)

// KeyOf returns the key a scalar node presents when it is matched as if it
// were an object with a single child.
func KeyOf(v any) string {
	switch current := v.(type) {
	case nil:
		return "null"
	case bool:
		if current {
			return "true"
		}
		return "false"
	case json.Number:
		return number.Canonical(current)
	case string:
		return current
	default:
		return fmt.Sprint(current)
	}
}

// TypeName names the JSON type of v for error messages.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case *Object:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// IsScalar reports whether v is neither an array nor an object.
func IsScalar(v any) bool {
	switch v.(type) {
	case []any, *Object:
		return false
	default:
		return true
	}
}

// Equal is deep semantic equality over trees.
func Equal(a, b any) bool {
	switch left := a.(type) {
	case nil:
		return b == nil
	case bool:
		right, ok := b.(bool)
		return ok && left == right
	case string:
		right, ok := b.(string)
		return ok && left == right
	case json.Number:
		right, ok := b.(json.Number)
		return ok && number.Equal(left, right)
	case []any:
		right, ok := b.([]any)
		if !ok || len(left) != len(right) {
			return false
		}
		for i := range left {
			if !Equal(left[i], right[i]) {
				return false
			}
		}
		return true
	case *Object:
		right, ok := b.(*Object)
		return ok && left.Equal(right)
	default:
		return false
	}
}

// Clone deep-copies containers; scalars are immutable and shared.
func Clone(v any) any {
	switch current := v.(type) {
	case []any:
		out := make([]any, len(current))
		for i, item := range current {
			out[i] = Clone(item)
		}
		return out
	case *Object:
		if current == nil {
			return (*Object)(nil)
		}
		out := NewObject(current.Len())
		for key, value := range current.All() {
			out.Set(key, Clone(value))
		}
		return out
	default:
		return v
	}
}
