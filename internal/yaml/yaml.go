// Package yaml loads transformation specs from YAML or JSON files into
// ordered document trees.
package yaml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/jolt/internal/document"
)

var (
	// ErrParser wraps every YAML decoding failure.
	ErrParser = errors.New("yaml parser error")

	// ErrUnsupportedFormat indicates a spec file whose extension is not
	// .json, .yaml or .yml.
	ErrUnsupportedFormat = errors.New("unsupported spec file format")

	// ErrInvalidKey indicates a mapping key that is a mapping or a sequence.
	ErrInvalidKey = errors.New("mapping key must be a scalar")
)

// Load reads a spec file and decodes it by extension. Duplicate keys are
// rejected in both formats.
func Load(path string) (any, error) {
	if !Supported(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return document.Unmarshal(data, document.DisallowDuplicateKeys())
	}
	return Unmarshal(data)
}

// Supported reports whether path has a spec file extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// Unmarshal decodes a YAML document keeping mapping order.
func Unmarshal(data []byte) (any, error) {
	var raw any
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap(), yaml.DisallowDuplicateKey()); err != nil {
		return nil, fmt.Errorf("%w: failed to decode YAML: %v", ErrParser, err)
	}
	return toDocument(raw)
}

func toDocument(v any) (any, error) {
	switch current := v.(type) {
	case yaml.MapSlice:
		obj := document.NewObject(len(current))
		for _, item := range current {
			key, err := mappingKey(item.Key)
			if err != nil {
				return nil, err
			}
			value, err := toDocument(item.Value)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			obj.Set(key, value)
		}
		return obj, nil
	case []any:
		out := make([]any, len(current))
		for i, item := range current {
			value, err := toDocument(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = value
		}
		return out, nil
	default:
		value, err := document.FromGo(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParser, err)
		}
		return value, nil
	}
}

// mappingKey turns scalar keys such as 0 or true into their JSON text.
func mappingKey(key any) (string, error) {
	if s, ok := key.(string); ok {
		return s, nil
	}

	value, err := document.FromGo(key)
	if err != nil || !document.IsScalar(value) {
		return "", fmt.Errorf("%w: got %T", ErrInvalidKey, key)
	}
	return document.KeyOf(value), nil
}
