package dsl

import "strconv"

// Kind identifies a token of the expression language.
type Kind int

const (
	KindEOF Kind = iota
	KindKey
	KindDollar
	KindAmp
	KindAt
	KindSquare
	KindStar
	KindPipe
	KindOpenBracket
	KindCloseBracket
	KindOpenParen
	KindCloseParen
	KindDot
	KindComma
)

var kindNames = [...]string{
	KindEOF:          "end of input",
	KindKey:          "key",
	KindDollar:       "'$'",
	KindAmp:          "'&'",
	KindAt:           "'@'",
	KindSquare:       "'#'",
	KindStar:         "'*'",
	KindPipe:         "'|'",
	KindOpenBracket:  "'['",
	KindCloseBracket: "']'",
	KindOpenParen:    "'('",
	KindCloseParen:   "')'",
	KindDot:          "'.'",
	KindComma:        "','",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Token is one lexical unit. Text is the unescaped key for KindKey and the
// operator character otherwise; Pos is the byte offset where it starts.
type Token struct {
	Kind Kind
	Text string
	Pos  int
}

func (t Token) String() string {
	if t.Kind == KindKey {
		return "key " + strconv.Quote(t.Text)
	}
	return t.Kind.String()
}

var operators = map[byte]Kind{
	'$': KindDollar,
	'&': KindAmp,
	'@': KindAt,
	'#': KindSquare,
	'*': KindStar,
	'|': KindPipe,
	'[': KindOpenBracket,
	']': KindCloseBracket,
	'(': KindOpenParen,
	')': KindCloseParen,
	'.': KindDot,
	',': KindComma,
}

// isEscapable reports whether c may follow a backslash inside a key.
func isEscapable(c byte) bool {
	_, ok := operators[c]
	return ok || c == '\\'
}
