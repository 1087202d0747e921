package dsl

import (
	"errors"
	"testing"
)

var fuzzSeeds = []string{
	"",
	"*",
	"a|b*c",
	"&(1,2)",
	"$3",
	"@(2,clone&(1,1)_suffix)",
	"#text",
	"photos[&(1)].id",
	"states.@(2,states[&])",
	"hello[@(2,world)]",
	"list[#2]",
	`\[\]E`,
	"a..b",
	"@(@(@(",
	"[[[",
	`a\`,
}

func checkParseResult(t *testing.T, input string, err error) {
	t.Helper()
	if err == nil {
		return
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("parse(%q) error = %T (%v), want *ParseError", input, err, err)
	}
	if parseErr.Pos < 0 || parseErr.Pos > len(input) {
		t.Fatalf("parse(%q) position %d outside input", input, parseErr.Pos)
	}
}

func FuzzParseLhs(f *testing.F) {
	for _, seed := range fuzzSeeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		_, err := ParseLhs(input)
		checkParseResult(t, input, err)
	})
}

func FuzzParseRhs(f *testing.F) {
	for _, seed := range fuzzSeeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		_, err := ParseRhs(input)
		checkParseResult(t, input, err)
	})
}
