package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestCreateFormatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format string
		want   string
	}{
		{name: "json", format: "json", want: "*logrus.JSONFormatter"},
		{name: "json_upper", format: "JSON", want: "*logrus.JSONFormatter"},
		{name: "text", format: "text", want: "*logrus.TextFormatter"},
		{name: "unknown", format: "xml", want: "*logrus.TextFormatter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CreateFormatter(tt.format)
			switch got.(type) {
			case *logrus.JSONFormatter:
				if tt.want != "*logrus.JSONFormatter" {
					t.Fatalf("CreateFormatter(%q) = %T, want %s", tt.format, got, tt.want)
				}
			case *logrus.TextFormatter:
				if tt.want != "*logrus.TextFormatter" {
					t.Fatalf("CreateFormatter(%q) = %T, want %s", tt.format, got, tt.want)
				}
			default:
				t.Fatalf("CreateFormatter(%q) = %T", tt.format, got)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]string{"": TextFormat, " Text ": TextFormat, "json": JSONFormat} {
		got, err := ParseFormat(input)
		if err != nil {
			t.Fatalf("ParseFormat(%q) error = %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseFormat(%q) = %q, want %q", input, got, want)
		}
	}

	if _, err := ParseFormat("yaml"); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("ParseFormat(yaml) error = %v, want %v", err, ErrInvalidFormat)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    logrus.Level
		wantErr bool
	}{
		{input: "", want: logrus.InfoLevel},
		{input: "debug", want: logrus.DebugLevel},
		{input: "WARN", want: logrus.WarnLevel},
		{input: "loud", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidLevel) {
				t.Fatalf("ParseLevel(%q) error = %v, want %v", tt.input, err, ErrInvalidLevel)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseLevel(%q) error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Options{Level: logrus.WarnLevel, Format: JSONFormat, Output: &buf})

	logger.Info("hidden")
	logger.WithField("record", 3).Warn("record failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("logged %d lines, want 1:\n%s", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if entry["msg"] != "record failed" || entry["level"] != "warning" || entry["record"] != float64(3) {
		t.Fatalf("entry = %v", entry)
	}
}
