package shift

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jacoelho/jolt/internal/document"
)

var (
	// ErrInvalidSpec indicates a shift spec that is not an object.
	ErrInvalidSpec = errors.New("shift spec must be an object")

	// ErrInvalidTarget indicates a spec value that is not an object, a path,
	// a list of paths or null.
	ErrInvalidTarget = errors.New("invalid spec value")

	// ErrInfallibleObject indicates a $, @ or # key whose value is an object.
	ErrInfallibleObject = errors.New("computed value key cannot hold a nested spec")

	ErrLevelOutOfRange   = errors.New("level out of range")
	ErrCaptureOutOfRange = errors.New("capture index out of range")
	ErrIndexOutOfRange   = errors.New("array index out of range")
	ErrInvalidIndex      = errors.New("value is not a valid array index")
	ErrKeyNotFound       = errors.New("key not found")
	ErrShapeMismatch     = errors.New("unexpected value shape")
	ErrNotString         = errors.New("value cannot be used as a key")
	ErrNotSupported      = errors.New("operator not supported")
)

// CompileError locates a spec entry that failed to compile. Path lists the
// keys of the enclosing spec objects.
type CompileError struct {
	Path []string
	Key  string
	Err  error
}

func (e *CompileError) Error() string {
	location := strings.Join(append(append([]string{}, e.Path...), e.Key), ".")
	return fmt.Sprintf("shift: compile %q: %v", location, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// EvalError describes a failure while applying a compiled spec. Only the
// fields relevant to Err are set.
type EvalError struct {
	Err   error
	Level int
	Index int
	Len   int
	Key   string
	Value any
}

func (e *EvalError) Error() string {
	switch {
	case errors.Is(e.Err, ErrLevelOutOfRange):
		return fmt.Sprintf("shift: %v: level %d with %d levels", e.Err, e.Level, e.Len)
	case errors.Is(e.Err, ErrCaptureOutOfRange):
		return fmt.Sprintf("shift: %v: index %d at level %d with %d captures", e.Err, e.Index, e.Level, e.Len)
	case errors.Is(e.Err, ErrIndexOutOfRange):
		return fmt.Sprintf("shift: %v: index %d with length %d", e.Err, e.Index, e.Len)
	case errors.Is(e.Err, ErrKeyNotFound):
		return fmt.Sprintf("shift: %v: %q", e.Err, e.Key)
	case errors.Is(e.Err, ErrInvalidIndex), errors.Is(e.Err, ErrNotString), errors.Is(e.Err, ErrShapeMismatch):
		return fmt.Sprintf("shift: %v: got %s", e.Err, document.TypeName(e.Value))
	default:
		return fmt.Sprintf("shift: %v", e.Err)
	}
}

func (e *EvalError) Unwrap() error {
	return e.Err
}
