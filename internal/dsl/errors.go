package dsl

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedEOF   = errors.New("unexpected end of input")
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrInvalidInteger  = errors.New("invalid integer literal")
	ErrMaxDepth        = errors.New("maximum nesting depth exceeded")
	ErrInvalidEscape   = errors.New("invalid escape")
	ErrPutBack         = errors.New("put back slot is full")
)

// ParseError reports where an expression failed to parse. Err wraps one of
// the sentinel causes above.
type ParseError struct {
	Input string
	Pos   int
	Token Token
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q at position %d: %v", e.Input, e.Pos, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
