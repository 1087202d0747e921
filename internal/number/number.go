package number

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNotIndex indicates a value that cannot address an array slot.
var ErrNotIndex = errors.New("value is not a non-negative integer")

// FromGo converts Go numeric values into json.Number.
func FromGo(value any) (json.Number, bool) {
	switch current := value.(type) {
	case json.Number:
		return current, true
	case int:
		return json.Number(strconv.FormatInt(int64(current), 10)), true
	case int8:
		return json.Number(strconv.FormatInt(int64(current), 10)), true
	case int16:
		return json.Number(strconv.FormatInt(int64(current), 10)), true
	case int32:
		return json.Number(strconv.FormatInt(int64(current), 10)), true
	case int64:
		return json.Number(strconv.FormatInt(current, 10)), true
	case uint:
		return json.Number(strconv.FormatUint(uint64(current), 10)), true
	case uint8:
		return json.Number(strconv.FormatUint(uint64(current), 10)), true
	case uint16:
		return json.Number(strconv.FormatUint(uint64(current), 10)), true
	case uint32:
		return json.Number(strconv.FormatUint(uint64(current), 10)), true
	case uint64:
		return json.Number(strconv.FormatUint(current, 10)), true
	case float32:
		return json.Number(formatFloat(float64(current))), true
	case float64:
		return json.Number(formatFloat(current)), true
	default:
		return "", false
	}
}

// Canonical renders a number the same way regardless of how it was spelled
// in the source document: integers as plain digits, everything else in the
// shortest float form that round-trips.
func Canonical(n json.Number) string {
	text := n.String()
	if isIntegerLiteral(text) {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return strconv.FormatInt(i, 10)
		}
		if u, err := strconv.ParseUint(text, 10, 64); err == nil {
			return strconv.FormatUint(u, 10)
		}
		return text
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return text
	}
	return formatFloat(f)
}

// Equal compares two numbers by canonical form.
func Equal(a, b json.Number) bool {
	return Canonical(a) == Canonical(b)
}

// ParseIndex parses an unsigned decimal array index.
func ParseIndex(text string) (int, error) {
	if text == "" {
		return 0, fmt.Errorf("%w: empty", ErrNotIndex)
	}
	value, err := strconv.ParseUint(text, 10, strconv.IntSize-1)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotIndex, text)
	}
	return int(value), nil
}

// ToIndex coerces a computed value into an array index. Integer numbers and
// strings of decimal digits are accepted.
func ToIndex(value any) (int, error) {
	switch current := value.(type) {
	case json.Number:
		text := current.String()
		if !isIntegerLiteral(text) || strings.HasPrefix(text, "-") {
			return 0, fmt.Errorf("%w: %s", ErrNotIndex, text)
		}
		return ParseIndex(text)
	case string:
		return ParseIndex(current)
	default:
		if n, ok := FromGo(value); ok {
			return ToIndex(n)
		}
		return 0, fmt.Errorf("%w: %T", ErrNotIndex, value)
	}
}

func isIntegerLiteral(text string) bool {
	return text != "" && !strings.ContainsAny(text, ".eE")
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		if math.Abs(f) < 1<<53 {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
