package shift

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jacoelho/jolt/internal/document"
	"github.com/jacoelho/jolt/internal/dsl"
	"github.com/jacoelho/jolt/internal/number"
	"github.com/jacoelho/jolt/internal/stack"
)

const rootKey = "root"

// MaxIndex bounds the array index an output path may write to. Writing past
// the end pads the array with nulls, so larger indices are rejected.
const MaxIndex = 1 << 20

// frame is one level of the walk: the captures that matched the key and the
// input value under it.
type frame struct {
	captures []string
	value    any
}

type evaluator struct {
	path *stack.Stack[frame]
	out  any
}

// Apply runs the spec over input and returns the new document. The input is
// not modified. A spec that writes nothing yields nil.
func (s *Spec) Apply(input any) (any, error) {
	e := &evaluator{path: stack.NewWithCapacity[frame](16)}

	err := e.descend(frame{captures: []string{rootKey}, value: input}, func() error {
		return e.apply(s.root)
	})
	if err != nil {
		return nil, err
	}
	return e.out, nil
}

func (e *evaluator) descend(f frame, fn func() error) error {
	e.path.Push(f)
	err := fn()
	e.path.Pop()
	return err
}

func (e *evaluator) apply(obj *object) error {
	tip, _ := e.path.Peek()

	for _, ent := range obj.infallible {
		value, err := e.computeValue(ent.lhs)
		if err != nil {
			return err
		}

		err = e.descend(tip, func() error {
			return e.writeAll(ent.target.paths, value)
		})
		if err != nil {
			return err
		}
	}

	switch node := tip.value.(type) {
	case *document.Object:
		for key, value := range node.All() {
			if err := e.matchChild(obj, key, value); err != nil {
				return err
			}
		}
	case []any:
		for i, value := range node {
			if err := e.matchChild(obj, strconv.Itoa(i), value); err != nil {
				return err
			}
		}
	default:
		return e.matchChild(obj, document.KeyOf(node), node)
	}

	return nil
}

func (e *evaluator) computeValue(lhs dsl.Lhs) (any, error) {
	switch current := lhs.(type) {
	case dsl.DollarSign:
		return e.capture(current.Level, current.Index)
	case dsl.At:
		return e.evalAt(current.Level, current.Rhs)
	case dsl.Square:
		return current.Text, nil
	default:
		return nil, &EvalError{Err: ErrShapeMismatch}
	}
}

// matchChild finds the first entry matching key: literals, then
// back-references, then globs.
func (e *evaluator) matchChild(obj *object, key string, value any) error {
	for _, ent := range obj.literal {
		if ent.lhs.(dsl.Literal).Text == key {
			return e.descend(frame{captures: []string{key}, value: value}, func() error {
				return e.applyTarget(ent.target, value)
			})
		}
	}

	for _, ent := range obj.amp {
		amp := ent.lhs.(dsl.Amp)
		captured, err := e.capture(amp.Level, amp.Index)
		if err != nil {
			return err
		}
		if captured == key {
			return e.descend(frame{captures: []string{captured}, value: value}, func() error {
				return e.applyTarget(ent.target, value)
			})
		}
	}

	for _, ent := range obj.pipes {
		if captures, ok := matchPipes(ent.lhs.(dsl.Pipes).Branches, key); ok {
			return e.descend(frame{captures: captures, value: value}, func() error {
				return e.applyTarget(ent.target, value)
			})
		}
	}

	return nil
}

func (e *evaluator) applyTarget(t target, value any) error {
	switch t.kind {
	case targetObject:
		return e.apply(t.nested)
	case targetPaths:
		return e.writeAll(t.paths, value)
	default:
		return nil
	}
}

// capture resolves a (level, index) back-reference.
func (e *evaluator) capture(level, index int) (string, error) {
	f, ok := e.path.FromTop(level)
	if !ok {
		return "", &EvalError{Err: ErrLevelOutOfRange, Level: level, Len: e.path.Size()}
	}
	if index < 0 || index >= len(f.captures) {
		return "", &EvalError{Err: ErrCaptureOutOfRange, Level: level, Index: index, Len: len(f.captures)}
	}
	return f.captures[index], nil
}

// evalAt looks rhs up inside the input value level frames up.
func (e *evaluator) evalAt(level int, rhs dsl.Rhs) (any, error) {
	f, ok := e.path.FromTop(level)
	if !ok {
		return nil, &EvalError{Err: ErrLevelOutOfRange, Level: level, Len: e.path.Size()}
	}
	return e.lookup(f.value, rhs.Parts)
}

func (e *evaluator) lookup(node any, parts []dsl.RhsPart) (any, error) {
	for _, part := range parts {
		switch current := part.(type) {
		case dsl.IndexPart:
			arr, ok := node.([]any)
			if !ok {
				return nil, &EvalError{Err: ErrShapeMismatch, Value: node}
			}
			if _, ok := current.Op.(dsl.IndexEmpty); ok {
				return nil, &EvalError{Err: ErrShapeMismatch, Value: node}
			}
			index, err := e.resolveIndex(current.Op)
			if err != nil {
				return nil, err
			}
			if index >= len(arr) {
				return nil, &EvalError{Err: ErrIndexOutOfRange, Index: index, Len: len(arr)}
			}
			node = arr[index]
		default:
			key, err := e.resolveSegment(part)
			if err != nil {
				return nil, err
			}
			obj, ok := node.(*document.Object)
			if !ok {
				return nil, &EvalError{Err: ErrShapeMismatch, Value: node}
			}
			child, ok := obj.Get(key)
			if !ok {
				return nil, &EvalError{Err: ErrKeyNotFound, Key: key}
			}
			node = child
		}
	}
	return node, nil
}

// resolveSegment computes the member name of a KeyPart or CompositeKey.
func (e *evaluator) resolveSegment(part dsl.RhsPart) (string, error) {
	switch current := part.(type) {
	case dsl.KeyPart:
		return e.resolveEntry(current.Entry)
	case dsl.CompositeKey:
		var b strings.Builder
		for _, entry := range current.Entries {
			text, err := e.resolveEntry(entry)
			if err != nil {
				return "", err
			}
			b.WriteString(text)
		}
		return b.String(), nil
	default:
		return "", &EvalError{Err: ErrShapeMismatch}
	}
}

func (e *evaluator) resolveEntry(entry dsl.RhsEntry) (string, error) {
	switch current := entry.(type) {
	case dsl.Key:
		return current.Text, nil
	case dsl.Amp:
		return e.capture(current.Level, current.Index)
	case dsl.At:
		value, err := e.evalAt(current.Level, current.Rhs)
		if err != nil {
			return "", err
		}
		switch value.(type) {
		case string, bool, json.Number:
			return document.KeyOf(value), nil
		}
		return "", &EvalError{Err: ErrNotString, Value: value}
	default:
		return "", &EvalError{Err: ErrShapeMismatch}
	}
}

func (e *evaluator) resolveIndex(op dsl.IndexOp) (int, error) {
	switch current := op.(type) {
	case dsl.IndexLiteral:
		return current.Index, nil
	case dsl.Amp:
		captured, err := e.capture(current.Level, current.Index)
		if err != nil {
			return 0, err
		}
		index, err := number.ParseIndex(captured)
		if err != nil {
			return 0, &EvalError{Err: ErrInvalidIndex, Value: captured}
		}
		return index, nil
	case dsl.At:
		value, err := e.evalAt(current.Level, current.Rhs)
		if err != nil {
			return 0, err
		}
		index, err := number.ToIndex(value)
		if err != nil {
			return 0, &EvalError{Err: ErrInvalidIndex, Value: value}
		}
		return index, nil
	case dsl.IndexSquare:
		return 0, &EvalError{Err: ErrNotSupported}
	default:
		return 0, &EvalError{Err: ErrShapeMismatch}
	}
}

func (e *evaluator) writeAll(paths []dsl.Rhs, value any) error {
	for _, rhs := range paths {
		updated, err := e.put(e.out, rhs.Parts, document.Clone(value))
		if err != nil {
			return err
		}
		e.out = updated
	}
	return nil
}

// put writes value at parts below node, creating objects and arrays on the
// way, and returns the updated node.
func (e *evaluator) put(node any, parts []dsl.RhsPart, value any) (any, error) {
	if len(parts) == 0 {
		return collide(node, value), nil
	}

	part, rest := parts[0], parts[1:]
	if index, ok := part.(dsl.IndexPart); ok {
		return e.putIndex(node, index.Op, rest, value)
	}

	key, err := e.resolveSegment(part)
	if err != nil {
		return nil, err
	}

	var obj *document.Object
	switch current := node.(type) {
	case nil:
		obj = document.NewObject(1)
	case *document.Object:
		obj = current
	default:
		return nil, &EvalError{Err: ErrShapeMismatch, Value: node}
	}

	child, _ := obj.Get(key)
	updated, err := e.put(child, rest, value)
	if err != nil {
		return nil, err
	}
	obj.Set(key, updated)
	return obj, nil
}

func (e *evaluator) putIndex(node any, op dsl.IndexOp, rest []dsl.RhsPart, value any) (any, error) {
	var arr []any
	switch current := node.(type) {
	case nil:
		arr = []any{}
	case []any:
		arr = current
	case *document.Object:
		return nil, &EvalError{Err: ErrShapeMismatch, Value: node}
	default:
		arr = []any{current}
	}

	var index int
	if _, ok := op.(dsl.IndexEmpty); ok {
		arr = append(arr, nil)
		index = len(arr) - 1
	} else {
		resolved, err := e.resolveIndex(op)
		if err != nil {
			return nil, err
		}
		index = resolved
		if index > MaxIndex {
			return nil, &EvalError{Err: ErrIndexOutOfRange, Index: index, Len: len(arr)}
		}
		for len(arr) <= index {
			arr = append(arr, nil)
		}
	}

	updated, err := e.put(arr[index], rest, value)
	if err != nil {
		return nil, err
	}
	arr[index] = updated
	return arr, nil
}

// collide places value at an output leaf: an empty slot takes the value, an
// array gains it as a new element and any other value becomes [old, new].
func collide(existing, value any) any {
	switch current := existing.(type) {
	case nil:
		return value
	case []any:
		return append(current, value)
	default:
		return []any{current, value}
	}
}
