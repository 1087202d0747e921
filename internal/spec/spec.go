// Package spec models a transformation as an ordered list of operations
// and runs them.
package spec

import (
	"bytes"
	"fmt"

	"github.com/jacoelho/jolt/internal/defaults"
	"github.com/jacoelho/jolt/internal/document"
	"github.com/jacoelho/jolt/internal/remove"
	"github.com/jacoelho/jolt/internal/shift"
)

type Operation string

const (
	OperationShift   Operation = "shift"
	OperationDefault Operation = "default"
	OperationRemove  Operation = "remove"
)

// StageError reports the operation that failed while transforming.
type StageError struct {
	Index     int
	Operation Operation
	Err       error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("operation %d (%s): %v", e.Index, e.Operation, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

type stage struct {
	operation Operation
	shift     *shift.Spec
	tree      *document.Object
}

// Spec is a compiled operation list. It is immutable and safe for
// concurrent use.
type Spec struct {
	stages []stage
}

// Parse decodes a JSON spec document, rejecting duplicate keys, and
// compiles it.
func Parse(data []byte) (*Spec, error) {
	tree, err := document.Decode(bytes.NewReader(data), document.DisallowDuplicateKeys())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSpec, err)
	}
	return Compile(tree)
}

// Compile builds a Spec from a decoded spec document: an array of
// {"operation", "spec"} entries, or a bare object taken as a single shift.
func Compile(tree any) (*Spec, error) {
	var entries []any
	switch current := tree.(type) {
	case []any:
		entries = current
	case *document.Object:
		if current == nil {
			return nil, fmt.Errorf("%w: spec document is null", ErrInvalidSpec)
		}
		return compileStages([]stage{{operation: OperationShift, tree: current}})
	default:
		return nil, fmt.Errorf("%w: spec document must be an array or an object, got %s", ErrInvalidSpec, document.TypeName(tree))
	}

	stages := make([]stage, 0, len(entries))
	for index, entry := range entries {
		operation, specTree, err := ValidateStage(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: operation %d: %w", ErrInvalidSpec, index, err)
		}
		stages = append(stages, stage{operation: operation, tree: specTree})
	}

	return compileStages(stages)
}

func compileStages(stages []stage) (*Spec, error) {
	for index := range stages {
		if stages[index].operation != OperationShift {
			continue
		}
		compiled, err := shift.Compile(stages[index].tree)
		if err != nil {
			return nil, fmt.Errorf("%w: operation %d: %w", ErrInvalidSpec, index, err)
		}
		stages[index].shift = compiled
	}
	return &Spec{stages: stages}, nil
}

// Operations lists the operations in the order they run.
func (s *Spec) Operations() []Operation {
	out := make([]Operation, len(s.stages))
	for i, st := range s.stages {
		out[i] = st.operation
	}
	return out
}

// Transform runs every operation in order, feeding each one the output of
// the previous. input may hold plain Go maps; it is never modified.
func (s *Spec) Transform(input any) (any, error) {
	// FromGo copies, so default and remove may edit current in place.
	current, err := document.FromGo(input)
	if err != nil {
		return nil, err
	}

	for index, st := range s.stages {
		switch st.operation {
		case OperationShift:
			current, err = st.shift.Apply(current)
			if err != nil {
				return nil, &StageError{Index: index, Operation: st.operation, Err: err}
			}
		case OperationDefault:
			current = defaults.Apply(current, st.tree)
		case OperationRemove:
			current = remove.Apply(current, st.tree)
		}
	}

	return current, nil
}
