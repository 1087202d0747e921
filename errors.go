package jolt

import (
	"github.com/jacoelho/jolt/internal/document"
	"github.com/jacoelho/jolt/internal/dsl"
	"github.com/jacoelho/jolt/internal/shift"
	"github.com/jacoelho/jolt/internal/spec"
)

type (
	// ParseError locates a syntax error inside a spec key or path.
	ParseError = dsl.ParseError

	// CompileError locates a shift spec entry that failed to compile.
	CompileError = shift.CompileError

	// EvalError describes a shift failure on a particular document.
	EvalError = shift.EvalError

	// StageError names the operation that failed during Transform.
	StageError = spec.StageError
)

var (
	ErrInvalidSpec  = spec.ErrInvalidSpec
	ErrMalformed    = document.ErrMalformed
	ErrDuplicateKey = document.ErrDuplicateKey

	ErrUnexpectedEOF   = dsl.ErrUnexpectedEOF
	ErrUnexpectedToken = dsl.ErrUnexpectedToken
	ErrInvalidInteger  = dsl.ErrInvalidInteger
	ErrMaxDepth        = dsl.ErrMaxDepth
	ErrInvalidEscape   = dsl.ErrInvalidEscape

	ErrInvalidTarget     = shift.ErrInvalidTarget
	ErrInfallibleObject  = shift.ErrInfallibleObject
	ErrLevelOutOfRange   = shift.ErrLevelOutOfRange
	ErrCaptureOutOfRange = shift.ErrCaptureOutOfRange
	ErrIndexOutOfRange   = shift.ErrIndexOutOfRange
	ErrInvalidIndex      = shift.ErrInvalidIndex
	ErrKeyNotFound       = shift.ErrKeyNotFound
	ErrShapeMismatch     = shift.ErrShapeMismatch
	ErrNotString         = shift.ErrNotString
	ErrNotSupported      = shift.ErrNotSupported
)
