package dsl

// Lhs is a parsed match key: one of DollarSign, Amp, At, Square, Pipes or
// Literal.
type Lhs interface {
	isLhs()
}

// RhsEntry is a piece of an output path segment: Key, Amp or At.
type RhsEntry interface {
	isRhsEntry()
}

// RhsPart is one step of an output path: KeyPart, CompositeKey or IndexPart.
type RhsPart interface {
	isRhsPart()
}

// IndexOp selects an array slot: IndexLiteral, Amp, At, IndexEmpty or
// IndexSquare.
type IndexOp interface {
	isIndexOp()
}

// DollarSign emits the capture at (Level, Index) as the value.
type DollarSign struct {
	Level int
	Index int
}

// Amp is a back-reference to the capture at (Level, Index).
type Amp struct {
	Level int
	Index int
}

// At evaluates Rhs against the input value Level frames up.
type At struct {
	Level int
	Rhs   Rhs
}

// Square emits Text verbatim.
type Square struct {
	Text string
}

// Pipes matches when any branch glob matches.
type Pipes struct {
	Branches []Stars
}

// Literal matches a key exactly.
type Literal struct {
	Text string
}

// Stars is a glob as the literal fragments between its stars: a*b is
// ["a", "b"] and * alone is ["", ""].
type Stars []string

// Rhs is an output path. The zero value is the empty path.
type Rhs struct {
	Parts []RhsPart
}

// Key is a literal path segment text.
type Key struct {
	Text string
}

// KeyPart is a segment made of a single entry.
type KeyPart struct {
	Entry RhsEntry
}

// CompositeKey is a segment whose entries are concatenated.
type CompositeKey struct {
	Entries []RhsEntry
}

// IndexPart is an array step.
type IndexPart struct {
	Op IndexOp
}

type IndexLiteral struct {
	Index int
}

// IndexEmpty is the append operator [].
type IndexEmpty struct{}

// IndexSquare is the match count operator [#N].
type IndexSquare struct {
	Level int
}

func (DollarSign) isLhs() {}
func (Amp) isLhs()        {}
func (At) isLhs()         {}
func (Square) isLhs()     {}
func (Pipes) isLhs()      {}
func (Literal) isLhs()    {}

func (Key) isRhsEntry() {}
func (Amp) isRhsEntry() {}
func (At) isRhsEntry()  {}

func (KeyPart) isRhsPart()      {}
func (CompositeKey) isRhsPart() {}
func (IndexPart) isRhsPart()    {}

func (IndexLiteral) isIndexOp() {}
func (Amp) isIndexOp()          {}
func (At) isIndexOp()           {}
func (IndexEmpty) isIndexOp()   {}
func (IndexSquare) isIndexOp()  {}

// Infallible reports whether lhs matches regardless of the key.
func Infallible(lhs Lhs) bool {
	switch lhs.(type) {
	case DollarSign, At, Square:
		return true
	default:
		return false
	}
}
