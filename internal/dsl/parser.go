// Package dsl parses the key and path expressions used inside shift
// specifications.
package dsl

import (
	"fmt"
	"strings"

	"github.com/jacoelho/jolt/internal/number"
)

// MaxDepth bounds how deeply @(...) expressions may nest.
const MaxDepth = 32

type parserState struct {
	tokens *Tokenizer
	input  string
}

// ParseLhs parses a match key. The whole input must be consumed.
func ParseLhs(input string) (Lhs, error) {
	p := &parserState{tokens: NewTokenizer(input), input: input}

	lhs, err := p.parseLhs()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return lhs, nil
}

// ParseRhs parses an output path. The empty string is the empty path.
func ParseRhs(input string) (Rhs, error) {
	p := &parserState{tokens: NewTokenizer(input), input: input}

	rhs, err := p.parseRhs(0, false)
	if err != nil {
		return Rhs{}, err
	}
	if err := p.expectEOF(); err != nil {
		return Rhs{}, err
	}
	return rhs, nil
}

func (p *parserState) parseLhs() (Lhs, error) {
	tok, err := p.tokens.Next()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case KindEOF:
		return Literal{}, nil
	case KindDollar:
		level, index, err := p.parseReference()
		if err != nil {
			return nil, err
		}
		return DollarSign{Level: level, Index: index}, nil
	case KindAmp:
		level, index, err := p.parseReference()
		if err != nil {
			return nil, err
		}
		return Amp{Level: level, Index: index}, nil
	case KindAt:
		return p.parseAt(0)
	case KindSquare:
		return p.parseSquare()
	case KindKey, KindStar, KindPipe:
		if err := p.tokens.PutBack(tok); err != nil {
			return nil, err
		}
		return p.parsePipes()
	default:
		return nil, p.unexpected(tok)
	}
}

// parseSquare takes the rest of the input as literal text.
func (p *parserState) parseSquare() (Lhs, error) {
	var b strings.Builder
	for {
		tok, err := p.tokens.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEOF {
			return Square{Text: b.String()}, nil
		}
		b.WriteString(tok.Text)
	}
}

func (p *parserState) parsePipes() (Lhs, error) {
	var branches []Stars
	current := Stars{""}

	for {
		tok, err := p.tokens.Next()
		if err != nil {
			return nil, err
		}

		switch tok.Kind {
		case KindKey:
			current[len(current)-1] += tok.Text
		case KindStar:
			current = append(current, "")
		case KindPipe:
			branches = append(branches, current)
			current = Stars{""}
		case KindEOF:
			branches = append(branches, current)
			if len(branches) == 1 && len(branches[0]) == 1 {
				return Literal{Text: branches[0][0]}, nil
			}
			return Pipes{Branches: branches}, nil
		default:
			return nil, p.unexpected(tok)
		}
	}
}

// advance consumes the token last returned by Peek. A peeked token is
// already scanned, so Next cannot fail.
func (p *parserState) advance() Token {
	tok, _ := p.tokens.Next()
	return tok
}

// parseReference reads what follows & or $: nothing, a run of digits, (a) or
// (a,b).
func (p *parserState) parseReference() (int, int, error) {
	tok, err := p.tokens.Peek()
	if err != nil {
		return 0, 0, err
	}

	switch {
	case tok.Kind == KindOpenParen:
		p.advance()
		level, err := p.parseInteger()
		if err != nil {
			return 0, 0, err
		}

		closing, err := p.tokens.Next()
		if err != nil {
			return 0, 0, err
		}
		switch closing.Kind {
		case KindCloseParen:
			return level, 0, nil
		case KindComma:
			index, err := p.parseInteger()
			if err != nil {
				return 0, 0, err
			}
			if err := p.expect(KindCloseParen); err != nil {
				return 0, 0, err
			}
			return level, index, nil
		default:
			return 0, 0, p.unexpected(closing)
		}
	case tok.Kind == KindKey && startsWithDigit(tok.Text):
		p.advance()
		digits := leadingDigits(tok.Text)
		level, err := number.ParseIndex(digits)
		if err != nil {
			return 0, 0, p.errorf(tok, ErrInvalidInteger, "%q", digits)
		}
		if rest := tok.Text[len(digits):]; rest != "" {
			remainder := Token{Kind: KindKey, Text: rest, Pos: tok.Pos + len(digits)}
			if err := p.tokens.PutBack(remainder); err != nil {
				return 0, 0, err
			}
		}
		return level, 0, nil
	default:
		return 0, 0, nil
	}
}

// parseAt reads what follows @: nothing, (expr), (digits) or (level,expr).
func (p *parserState) parseAt(depth int) (At, error) {
	tok, err := p.tokens.Peek()
	if err != nil {
		return At{}, err
	}
	if tok.Kind != KindOpenParen {
		return At{}, nil
	}
	p.advance()

	if depth+1 > MaxDepth {
		return At{}, p.errorf(tok, ErrMaxDepth, "limit is %d", MaxDepth)
	}

	first, err := p.parseRhs(depth+1, true)
	if err != nil {
		return At{}, err
	}

	sep, err := p.tokens.Next()
	if err != nil {
		return At{}, err
	}

	switch sep.Kind {
	case KindCloseParen:
		if digits, ok := singleKey(first); ok && isDigits(digits) {
			level, err := number.ParseIndex(digits)
			if err != nil {
				return At{}, p.errorf(sep, ErrInvalidInteger, "%q", digits)
			}
			return At{Level: level}, nil
		}
		return At{Rhs: first}, nil
	case KindComma:
		digits, ok := singleKey(first)
		if !ok || !isDigits(digits) {
			return At{}, p.errorf(sep, ErrInvalidInteger, "level before ',' must be digits")
		}
		level, err := number.ParseIndex(digits)
		if err != nil {
			return At{}, p.errorf(sep, ErrInvalidInteger, "%q", digits)
		}

		rhs, err := p.parseRhs(depth+1, true)
		if err != nil {
			return At{}, err
		}
		if err := p.expect(KindCloseParen); err != nil {
			return At{}, err
		}
		return At{Level: level, Rhs: rhs}, nil
	default:
		return At{}, p.unexpected(sep)
	}
}

// parseRhs reads dot separated segments. When nested it stops, without
// consuming, at ',' or ')'.
func (p *parserState) parseRhs(depth int, nested bool) (Rhs, error) {
	var rhs Rhs
	afterDot := false

	for {
		entries, err := p.parseEntries(depth)
		if err != nil {
			return Rhs{}, err
		}
		switch len(entries) {
		case 0:
		case 1:
			rhs.Parts = append(rhs.Parts, KeyPart{Entry: entries[0]})
		default:
			rhs.Parts = append(rhs.Parts, CompositeKey{Entries: entries})
		}

		indexes, err := p.parseIndexes(depth)
		if err != nil {
			return Rhs{}, err
		}
		rhs.Parts = append(rhs.Parts, indexes...)

		tok, err := p.tokens.Peek()
		if err != nil {
			return Rhs{}, err
		}

		if len(entries) == 0 && len(indexes) == 0 {
			// Only the empty path may have an empty segment.
			if afterDot || len(rhs.Parts) > 0 || !endsRhs(tok, nested) {
				return Rhs{}, p.unexpected(tok)
			}
			return rhs, nil
		}

		switch {
		case tok.Kind == KindDot:
			p.advance()
			afterDot = true
		case endsRhs(tok, nested):
			return rhs, nil
		default:
			return Rhs{}, p.unexpected(tok)
		}
	}
}

func endsRhs(tok Token, nested bool) bool {
	if tok.Kind == KindEOF {
		return true
	}
	return nested && (tok.Kind == KindComma || tok.Kind == KindCloseParen)
}

func (p *parserState) parseEntries(depth int) ([]RhsEntry, error) {
	var entries []RhsEntry
	for {
		tok, err := p.tokens.Peek()
		if err != nil {
			return nil, err
		}

		switch tok.Kind {
		case KindKey:
			p.advance()
			entries = append(entries, Key{Text: tok.Text})
		case KindAmp:
			p.advance()
			level, index, err := p.parseReference()
			if err != nil {
				return nil, err
			}
			entries = append(entries, Amp{Level: level, Index: index})
		case KindAt:
			p.advance()
			at, err := p.parseAt(depth)
			if err != nil {
				return nil, err
			}
			entries = append(entries, at)
		default:
			return entries, nil
		}
	}
}

func (p *parserState) parseIndexes(depth int) ([]RhsPart, error) {
	var parts []RhsPart
	for {
		tok, err := p.tokens.Peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind != KindOpenBracket {
			return parts, nil
		}
		p.advance()

		op, err := p.parseIndexOp(depth)
		if err != nil {
			return nil, err
		}
		if err := p.expect(KindCloseBracket); err != nil {
			return nil, err
		}
		parts = append(parts, IndexPart{Op: op})
	}
}

func (p *parserState) parseIndexOp(depth int) (IndexOp, error) {
	tok, err := p.tokens.Peek()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case KindCloseBracket:
		return IndexEmpty{}, nil
	case KindAmp:
		p.advance()
		level, index, err := p.parseReference()
		if err != nil {
			return nil, err
		}
		return Amp{Level: level, Index: index}, nil
	case KindAt:
		p.advance()
		return p.parseAt(depth)
	case KindSquare:
		p.advance()
		level, err := p.parseInteger()
		if err != nil {
			return nil, err
		}
		return IndexSquare{Level: level}, nil
	case KindKey:
		index, err := p.parseInteger()
		if err != nil {
			return nil, err
		}
		return IndexLiteral{Index: index}, nil
	default:
		return nil, p.unexpected(tok)
	}
}

func (p *parserState) parseInteger() (int, error) {
	tok, err := p.tokens.Next()
	if err != nil {
		return 0, err
	}
	if tok.Kind != KindKey {
		return 0, p.unexpected(tok)
	}
	if !isDigits(tok.Text) {
		return 0, p.errorf(tok, ErrInvalidInteger, "%q", tok.Text)
	}
	n, err := number.ParseIndex(tok.Text)
	if err != nil {
		return 0, p.errorf(tok, ErrInvalidInteger, "%q", tok.Text)
	}
	return n, nil
}

func (p *parserState) expect(kind Kind) error {
	tok, err := p.tokens.Next()
	if err != nil {
		return err
	}
	if tok.Kind != kind {
		return p.unexpected(tok)
	}
	return nil
}

func (p *parserState) expectEOF() error {
	tok, err := p.tokens.Next()
	if err != nil {
		return err
	}
	if tok.Kind != KindEOF {
		return p.unexpected(tok)
	}
	return nil
}

func (p *parserState) unexpected(tok Token) error {
	if tok.Kind == KindEOF {
		return p.errorf(tok, ErrUnexpectedEOF, "expression ended early")
	}
	return p.errorf(tok, ErrUnexpectedToken, "%s", tok)
}

func (p *parserState) errorf(tok Token, cause error, format string, args ...any) error {
	return &ParseError{
		Input: p.input,
		Pos:   tok.Pos,
		Token: tok,
		Err:   fmt.Errorf("%w: %s", cause, fmt.Sprintf(format, args...)),
	}
}

func singleKey(rhs Rhs) (string, bool) {
	if len(rhs.Parts) != 1 {
		return "", false
	}
	part, ok := rhs.Parts[0].(KeyPart)
	if !ok {
		return "", false
	}
	key, ok := part.Entry.(Key)
	if !ok {
		return "", false
	}
	return key.Text, true
}

func isDigits(s string) bool {
	return s != "" && len(leadingDigits(s)) == len(s)
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}
