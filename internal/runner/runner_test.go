package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/jacoelho/jolt/internal/config"
	"github.com/jacoelho/jolt/internal/exit"
	"github.com/jacoelho/jolt/internal/logging"
)

const recordSpec = `[{"operation":"shift","spec":{"id":"record.id","name":"record.label"}}]`

func newConfig(t *testing.T, spec string, modify func(*config.Config)) *config.Config {
	t.Helper()

	specFile := filepath.Join(t.TempDir(), "spec.json")
	if err := os.WriteFile(specFile, []byte(spec), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		SpecFile:   specFile,
		InputFile:  config.Stdio,
		OutputFile: config.Stdio,
		Workers:    1,
		LogLevel:   logrus.InfoLevel,
		LogFormat:  logging.JSONFormat,
	}
	if modify != nil {
		modify(cfg)
	}
	return cfg
}

type runOutput struct {
	stdout string
	stderr string
	code   int
}

func run(t *testing.T, cfg *config.Config, input string) runOutput {
	t.Helper()

	var stdout, stderr bytes.Buffer
	r, result := New(cfg, Streams{In: strings.NewReader(input), Out: &stdout, Err: &stderr})
	if result != nil {
		t.Fatalf("New() result = %+v", result)
	}

	code := r.Run(context.Background())
	return runOutput{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func TestRunDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		spec   string
		modify func(*config.Config)
		input  string
		want   string
	}{
		{
			name:  "compact",
			spec:  `{"rating":{"*":{"value":"ratings.&1"}}}`,
			input: `{"rating":{"quality":{"value":3},"price":{"value":4}}}`,
			want:  `{"ratings":{"quality":3,"price":4}}` + "\n",
		},
		{
			name:   "pretty",
			spec:   `{"a":"b.c"}`,
			modify: func(c *config.Config) { c.Pretty = true },
			input:  `{"a":[1,"x"]}`,
			want:   "{\n  \"b\": {\n    \"c\": [\n      1,\n      \"x\"\n    ]\n  }\n}\n",
		},
		{
			name:   "select",
			spec:   `{"*":"values[]"}`,
			modify: func(c *config.Config) { c.Select = "$.values[*]" },
			input:  `{"a":1,"b":"two"}`,
			want:   `[1,"two"]` + "\n",
		},
		{
			name:  "operation_list",
			spec:  `[{"operation":"shift","spec":{"a":"x"}},{"operation":"default","spec":{"y":true}},{"operation":"remove","spec":{"x":""}}]`,
			input: `{"a":1}`,
			want:  `{"y":true}` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := run(t, newConfig(t, tt.spec, tt.modify), tt.input)
			if got.code != exit.CodeSuccess {
				t.Fatalf("Run() code = %d, stderr:\n%s", got.code, got.stderr)
			}
			if got.stdout != tt.want {
				t.Fatalf("Run() stdout = %q, want %q", got.stdout, tt.want)
			}
		})
	}
}

func TestRunDocumentFailure(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, `{"a":"out[&]"}`, func(c *config.Config) { c.Summary = true })
	got := run(t, cfg, `{"a":1}`)

	if got.code != exit.CodeFailure {
		t.Fatalf("Run() code = %d, want %d", got.code, exit.CodeFailure)
	}
	if got.stdout != "" {
		t.Fatalf("Run() stdout = %q, want empty", got.stdout)
	}
	for _, want := range []string{`"msg":"run failed"`, "value is not a valid array index", "Failed records:    1 (100.0%)"} {
		if !strings.Contains(got.stderr, want) {
			t.Fatalf("Run() stderr = %q, want it to contain %q", got.stderr, want)
		}
	}
}

func TestRunLinesPreservesOrder(t *testing.T) {
	t.Parallel()

	const records = 200

	var input, want strings.Builder
	for i := range records {
		fmt.Fprintf(&input, `{"id":%d,"name":"n%d"}`+"\n", i, i)
		fmt.Fprintf(&want, `{"record":{"id":%d,"label":"n%d"}}`+"\n", i, i)
	}

	cfg := newConfig(t, recordSpec, func(c *config.Config) {
		c.Lines = true
		c.Workers = 8
	})

	got := run(t, cfg, input.String())
	if got.code != exit.CodeSuccess {
		t.Fatalf("Run() code = %d, stderr:\n%s", got.code, got.stderr)
	}
	if got.stdout != want.String() {
		t.Fatalf("Run() stdout mismatch:\ngot:\n%s\nwant:\n%s", got.stdout, want.String())
	}
}

func TestRunLinesContinueOnError(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, recordSpec, func(c *config.Config) {
		c.Lines = true
		c.Workers = 3
		c.ContinueOnError = true
	})

	var stdout, stderr bytes.Buffer
	r, result := New(cfg, Streams{
		In:  strings.NewReader("{\"id\":1}\n\n{\"id\":\n  \n{\"id\":3}\n"),
		Out: &stdout,
		Err: &stderr,
	})
	if result != nil {
		t.Fatalf("New() result = %+v", result)
	}

	summary, err := r.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if want := `{"record":{"id":1}}` + "\n" + `{"record":{"id":3}}` + "\n"; stdout.String() != want {
		t.Fatalf("Execute() stdout = %q, want %q", stdout.String(), want)
	}
	if summary.Records != 3 || summary.Failed != 1 || summary.Succeeded != 2 {
		t.Fatalf("summary = %d/%d/%d, want 3 records, 2 succeeded, 1 failed", summary.Records, summary.Succeeded, summary.Failed)
	}
	if summary.Failures[0].Record != 3 {
		t.Fatalf("failed record = %d, want line 3", summary.Failures[0].Record)
	}
	if !strings.Contains(stderr.String(), `"record":3`) || !strings.Contains(stderr.String(), "record skipped") {
		t.Fatalf("stderr = %q, want a warning for record 3", stderr.String())
	}
	if summary.RunID == "" {
		t.Fatal("summary.RunID is empty")
	}
}

func TestRunLinesStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, recordSpec, func(c *config.Config) { c.Lines = true })
	got := run(t, cfg, "{\"id\":1}\nnot json\n{\"id\":3}\n")

	if got.code != exit.CodeFailure {
		t.Fatalf("Run() code = %d, want %d", got.code, exit.CodeFailure)
	}
	if want := `{"record":{"id":1}}` + "\n"; got.stdout != want {
		t.Fatalf("Run() stdout = %q, want %q", got.stdout, want)
	}
	if !strings.Contains(got.stderr, "record 2") {
		t.Fatalf("Run() stderr = %q, want it to name record 2", got.stderr)
	}
}

func TestRunLinesSelect(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, `{"tags":{"*":"out[]"}}`, func(c *config.Config) {
		c.Lines = true
		c.Select = "$.out[*]"
	})

	got := run(t, cfg, `{"tags":["a","b"]}`+"\n"+`{"tags":["c"]}`+"\n")
	if got.code != exit.CodeSuccess {
		t.Fatalf("Run() code = %d, stderr:\n%s", got.code, got.stderr)
	}
	if want := "\"a\"\n\"b\"\n\"c\"\n"; got.stdout != want {
		t.Fatalf("Run() stdout = %q, want %q", got.stdout, want)
	}
}

func TestRunFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inputFile := filepath.Join(dir, "input.json")
	outputFile := filepath.Join(dir, "output.json")
	if err := os.WriteFile(inputFile, []byte(`{"a":"v"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	specFile := filepath.Join(dir, "spec.yaml")
	if err := os.WriteFile(specFile, []byte("- operation: shift\n  spec:\n    a: b\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := newConfig(t, "{}", func(c *config.Config) {
		c.SpecFile = specFile
		c.InputFile = inputFile
		c.OutputFile = outputFile
	})

	got := run(t, cfg, "")
	if got.code != exit.CodeSuccess {
		t.Fatalf("Run() code = %d, stderr:\n%s", got.code, got.stderr)
	}

	written, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if want := `{"b":"v"}` + "\n"; string(written) != want {
		t.Fatalf("output file = %q, want %q", written, want)
	}
}

func TestRunValidateOnly(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, recordSpec, func(c *config.Config) { c.ValidateOnly = true })
	got := run(t, cfg, "")

	if got.code != exit.CodeSuccess {
		t.Fatalf("Run() code = %d", got.code)
	}
	if !strings.HasSuffix(got.stdout, ": 1 operation(s) OK\n") {
		t.Fatalf("Run() stdout = %q", got.stdout)
	}
}

func TestNewErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		spec    string
		wantMsg string
	}{
		{name: "bad_rhs", spec: `{"a":"b..c"}`, wantMsg: "Error compiling spec"},
		{name: "unknown_operation", spec: `[{"operation":"sort","spec":{}}]`, wantMsg: "Error compiling spec"},
		{name: "malformed", spec: `{"a":`, wantMsg: "Error loading spec"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			r, result := New(newConfig(t, tt.spec, nil), Streams{In: strings.NewReader(""), Out: &buf, Err: &buf})
			if r != nil {
				t.Fatal("New() runner != nil")
			}
			if result == nil || result.ExitCode != exit.CodeFailure {
				t.Fatalf("New() result = %+v, want failure", result)
			}
			if !strings.Contains(result.Message, tt.wantMsg) {
				t.Fatalf("New() message = %q, want it to contain %q", result.Message, tt.wantMsg)
			}
		})
	}
}
