package jolt

import (
	"github.com/jacoelho/jolt/internal/document"
	"github.com/jacoelho/jolt/internal/spec"
)

// Object is an insertion-ordered JSON object.
type Object = document.Object

// Spec is a compiled operation list.
type Spec = spec.Spec

// ParseSpec decodes and compiles a JSON spec document. Duplicate keys are
// rejected.
func ParseSpec(data []byte) (*Spec, error) {
	return spec.Parse(data)
}

// CompileSpec compiles an already decoded spec document. A bare object is
// taken as a single shift operation.
func CompileSpec(tree any) (*Spec, error) {
	tree, err := document.FromGo(tree)
	if err != nil {
		return nil, err
	}
	return spec.Compile(tree)
}

// Transform applies s to input.
func Transform(input any, s *Spec) (any, error) {
	return s.Transform(input)
}

// TransformJSON decodes input, applies s and encodes the result compactly.
func TransformJSON(input []byte, s *Spec) ([]byte, error) {
	tree, err := Decode(input)
	if err != nil {
		return nil, err
	}

	out, err := s.Transform(tree)
	if err != nil {
		return nil, err
	}
	return Marshal(out)
}

// Decode parses a single JSON document, keeping member order and number text.
func Decode(data []byte) (any, error) {
	return document.Unmarshal(data)
}

// Marshal encodes a document compactly in member order.
func Marshal(v any) ([]byte, error) {
	return document.Marshal(v)
}

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return document.NewObject(0)
}
