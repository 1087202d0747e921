// Package shift compiles and applies shift specifications: objects whose
// keys match input keys and whose values name where matched values go in
// the output.
package shift

import (
	"errors"

	"github.com/jacoelho/jolt/internal/document"
	"github.com/jacoelho/jolt/internal/dsl"
)

type targetKind uint8

const (
	targetDrop targetKind = iota
	targetObject
	targetPaths
)

// target is what a matched entry does with its value.
type target struct {
	kind   targetKind
	nested *object
	paths  []dsl.Rhs
}

type entry struct {
	lhs    dsl.Lhs
	target target
}

// object is a compiled spec object. Entries are grouped by how their key
// matches; evaluation order between the groups is fixed.
type object struct {
	infallible []entry
	literal    []entry
	amp        []entry
	pipes      []entry
}

// Spec is a compiled shift specification. It is immutable and safe for
// concurrent use.
type Spec struct {
	root *object
}

// Compile checks and compiles a shift specification tree. Member names are
// unique by construction of *document.Object; decoders reject duplicates
// before a tree gets here.
func Compile(spec any) (*Spec, error) {
	obj, ok := spec.(*document.Object)
	if !ok || obj == nil {
		return nil, &CompileError{Err: ErrInvalidSpec}
	}

	root, err := compileObject(obj, nil)
	if err != nil {
		return nil, err
	}
	return &Spec{root: root}, nil
}

func compileObject(obj *document.Object, path []string) (*object, error) {
	compiled := &object{}

	for key, value := range obj.All() {
		lhs, err := dsl.ParseLhs(key)
		if err != nil {
			return nil, &CompileError{Path: path, Key: key, Err: err}
		}

		infallible := dsl.Infallible(lhs)
		tgt, err := compileTarget(value, appendPath(path, key), infallible)
		if err != nil {
			// nested failures already carry their location
			var nestedErr *CompileError
			if errors.As(err, &nestedErr) {
				return nil, err
			}
			return nil, &CompileError{Path: path, Key: key, Err: err}
		}

		e := entry{lhs: lhs, target: tgt}
		switch lhs.(type) {
		case dsl.DollarSign, dsl.At, dsl.Square:
			compiled.infallible = append(compiled.infallible, e)
		case dsl.Literal:
			compiled.literal = append(compiled.literal, e)
		case dsl.Amp:
			compiled.amp = append(compiled.amp, e)
		case dsl.Pipes:
			compiled.pipes = append(compiled.pipes, e)
		}
	}

	return compiled, nil
}

func compileTarget(value any, path []string, infallible bool) (target, error) {
	switch current := value.(type) {
	case nil:
		return target{kind: targetDrop}, nil
	case *document.Object:
		if infallible {
			return target{}, ErrInfallibleObject
		}
		nested, err := compileObject(current, path)
		if err != nil {
			return target{}, err
		}
		return target{kind: targetObject, nested: nested}, nil
	case string:
		rhs, err := dsl.ParseRhs(current)
		if err != nil {
			return target{}, err
		}
		return target{kind: targetPaths, paths: []dsl.Rhs{rhs}}, nil
	case []any:
		paths := make([]dsl.Rhs, 0, len(current))
		for _, item := range current {
			text, ok := item.(string)
			if !ok {
				return target{}, ErrInvalidTarget
			}
			rhs, err := dsl.ParseRhs(text)
			if err != nil {
				return target{}, err
			}
			paths = append(paths, rhs)
		}
		return target{kind: targetPaths, paths: paths}, nil
	default:
		return target{}, ErrInvalidTarget
	}
}

func appendPath(path []string, key string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, key)
}
