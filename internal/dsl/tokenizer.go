package dsl

import (
	"fmt"
	"strings"
)

// Tokenizer produces tokens lazily from an expression. It holds one token
// that was put back, ahead of one token that was peeked.
type Tokenizer struct {
	input  string
	pos    int
	back   *Token
	peeked *Token
}

func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

// Pos is the byte offset of the next token to be read.
func (t *Tokenizer) Pos() int {
	switch {
	case t.back != nil:
		return t.back.Pos
	case t.peeked != nil:
		return t.peeked.Pos
	default:
		return t.pos
	}
}

// Next consumes and returns the next token. At the end of input it returns a
// KindEOF token, repeatedly.
func (t *Tokenizer) Next() (Token, error) {
	if t.back != nil {
		tok := *t.back
		t.back = nil
		return tok, nil
	}
	if t.peeked != nil {
		tok := *t.peeked
		t.peeked = nil
		return tok, nil
	}
	return t.scan()
}

// Peek returns the next token without consuming it.
func (t *Tokenizer) Peek() (Token, error) {
	if t.back != nil {
		return *t.back, nil
	}
	if t.peeked != nil {
		return *t.peeked, nil
	}
	tok, err := t.scan()
	if err != nil {
		return Token{}, err
	}
	t.peeked = &tok
	return tok, nil
}

// PutBack restores tok so the following Next returns it. A second PutBack
// without an intervening Next fails.
func (t *Tokenizer) PutBack(tok Token) error {
	if t.back != nil {
		return t.errorf(tok, ErrPutBack, "token slot already holds %s", t.back)
	}
	t.back = &tok
	return nil
}

func (t *Tokenizer) scan() (Token, error) {
	if t.pos >= len(t.input) {
		return Token{Kind: KindEOF, Pos: len(t.input)}, nil
	}

	c := t.input[t.pos]
	if kind, ok := operators[c]; ok {
		tok := Token{Kind: kind, Text: string(c), Pos: t.pos}
		t.pos++
		return tok, nil
	}

	return t.scanKey()
}

func (t *Tokenizer) scanKey() (Token, error) {
	start := t.pos
	var b strings.Builder

	for t.pos < len(t.input) {
		c := t.input[t.pos]
		if c == '\\' {
			if t.pos+1 >= len(t.input) {
				t.pos++
				return Token{}, t.errorf(Token{Kind: KindEOF, Pos: t.pos}, ErrUnexpectedEOF, "escape at end of input")
			}
			escaped := t.input[t.pos+1]
			if !isEscapable(escaped) {
				return Token{}, t.errorf(Token{Kind: KindKey, Text: string(escaped), Pos: t.pos + 1}, ErrInvalidEscape, "%q cannot be escaped", escaped)
			}
			b.WriteByte(escaped)
			t.pos += 2
			continue
		}
		if _, ok := operators[c]; ok {
			break
		}
		b.WriteByte(c)
		t.pos++
	}

	return Token{Kind: KindKey, Text: b.String(), Pos: start}, nil
}

func (t *Tokenizer) errorf(tok Token, cause error, format string, args ...any) error {
	return &ParseError{
		Input: t.input,
		Pos:   tok.Pos,
		Token: tok,
		Err:   fmt.Errorf("%w: %s", cause, fmt.Sprintf(format, args...)),
	}
}
