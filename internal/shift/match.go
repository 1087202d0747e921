package shift

import (
	"strings"

	"github.com/jacoelho/jolt/internal/dsl"
)

// matchStars matches key against a glob. The captures start with the whole
// key followed by the text each star consumed, left to right. The last
// literal fragment is anchored at the end of the key; an empty fragment
// captures everything that is left.
func matchStars(frags dsl.Stars, key string) ([]string, bool) {
	switch len(frags) {
	case 0:
		if key == "" {
			return []string{""}, true
		}
		return nil, false
	case 1:
		if key == frags[0] {
			return []string{key}, true
		}
		return nil, false
	}

	rest, ok := strings.CutPrefix(key, frags[0])
	if !ok {
		return nil, false
	}

	captures := make([]string, 1, len(frags))
	captures[0] = key

	last := len(frags) - 1
	for i := 1; i <= last; i++ {
		frag := frags[i]
		switch {
		case frag == "":
			captures = append(captures, rest)
		case i == last:
			if !strings.HasSuffix(rest, frag) {
				return nil, false
			}
			captures = append(captures, rest[:len(rest)-len(frag)])
		default:
			idx := strings.Index(rest, frag)
			if idx < 0 {
				return nil, false
			}
			captures = append(captures, rest[:idx])
			rest = rest[idx+len(frag):]
		}
	}

	return captures, true
}

// matchPipes tries each branch in order and returns the captures of the first
// that matches.
func matchPipes(branches []dsl.Stars, key string) ([]string, bool) {
	for _, branch := range branches {
		if captures, ok := matchStars(branch, key); ok {
			return captures, true
		}
	}
	return nil, false
}
