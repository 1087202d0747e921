package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jacoelho/jolt/internal/stack"
)

var (
	// ErrMalformed indicates the input is not a single well-formed JSON value.
	ErrMalformed = errors.New("document: malformed JSON")

	// ErrDuplicateKey indicates an object repeats a member name while
	// duplicate detection is enabled.
	ErrDuplicateKey = errors.New("document: duplicate object key")
)

const (
	kindObj containerKind = iota
	kindArr
)

type containerKind uint8

// containerFrame is an object or array still being filled.
type containerFrame struct {
	kind    containerKind
	obj     *Object
	arr     []any
	key     string // pending member name for objects
	needKey bool   // true if object expects a key next
}

func (f *containerFrame) value() any {
	if f.kind == kindObj {
		return f.obj
	}
	return f.arr
}

// Option configures a Decoder.
type Option func(*Decoder)

// DisallowDuplicateKeys makes the decoder fail on a repeated member name.
func DisallowDuplicateKeys() Option {
	return func(d *Decoder) {
		d.disallowDuplicates = true
	}
}

// Decoder reads a stream of JSON values into trees.
type Decoder struct {
	dec                *json.Decoder
	disallowDuplicates bool
}

func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	dec := json.NewDecoder(r)
	dec.UseNumber() // keep number text, never float64

	d := &Decoder{dec: dec}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode reads the next value from the stream. It returns io.EOF when the
// stream holds no further values.
func (d *Decoder) Decode() (any, error) {
	containers := stack.NewWithCapacity[containerFrame](8)

	for {
		tok, err := d.dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if containers.IsEmpty() {
					return nil, io.EOF
				}
				return nil, fmt.Errorf("%w: unexpected end of input", ErrMalformed)
			}
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		var value any
		switch current := tok.(type) {
		case json.Delim:
			switch current {
			case '{':
				containers.Push(containerFrame{kind: kindObj, obj: NewObject(4), needKey: true})
				continue
			case '[':
				containers.Push(containerFrame{kind: kindArr, arr: []any{}})
				continue
			default:
				closed, _ := containers.Pop()
				value = closed.value()
			}
		default:
			top := containers.PeekRef()
			if top != nil && top.kind == kindObj && top.needKey {
				key, ok := tok.(string)
				if !ok {
					return nil, fmt.Errorf("%w: object key is not a string", ErrMalformed)
				}
				if d.disallowDuplicates && top.obj.Has(key) {
					return nil, fmt.Errorf("%w: %q at offset %d", ErrDuplicateKey, key, d.dec.InputOffset())
				}
				top.key = key
				top.needKey = false
				continue
			}
			value = tok
		}

		top := containers.PeekRef()
		if top == nil {
			return value, nil
		}
		if top.kind == kindObj {
			top.obj.Set(top.key, value)
			top.needKey = true
		} else {
			top.arr = append(top.arr, value)
		}
	}
}

// Decode reads exactly one JSON value from r.
func Decode(r io.Reader, opts ...Option) (any, error) {
	d := NewDecoder(r, opts...)

	v, err := d.Decode()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty input", ErrMalformed)
	}
	if err != nil {
		return nil, err
	}

	if _, err := d.dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after value", ErrMalformed)
	}

	return v, nil
}

// Unmarshal is Decode over a byte slice.
func Unmarshal(data []byte, opts ...Option) (any, error) {
	return Decode(bytes.NewReader(data), opts...)
}
