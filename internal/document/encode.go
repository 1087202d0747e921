package document

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Marshal encodes a tree as compact JSON. Object members keep their order
// and HTML characters are not escaped.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndent is Marshal followed by json.Indent.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	compact, err := Marshal(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (o *Object) MarshalJSON() ([]byte, error) {
	return Marshal(o)
}

func encode(buf *bytes.Buffer, v any) error {
	switch current := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if current {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case json.Number:
		if !json.Valid([]byte(current)) {
			return fmt.Errorf("%w: invalid number %q", ErrMalformed, current.String())
		}
		buf.WriteString(current.String())
	case string:
		return encodeString(buf, current)
	case []any:
		buf.WriteByte('[')
		for i, item := range current {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encode(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *Object:
		if current == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('{')
		for i, key := range current.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encode(buf, current.values[key]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		converted, err := FromGo(v)
		if err != nil {
			return err
		}
		return encode(buf, converted)
	}
	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
