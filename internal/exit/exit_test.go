package exit

import (
	"bytes"
	"os"
	"testing"
)

func TestResults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		result     *Result
		wantCode   int
		wantOutput *os.File
		wantMsg    string
	}{
		{name: "success", result: Success("ok"), wantCode: CodeSuccess, wantOutput: os.Stdout, wantMsg: "ok"},
		{name: "error", result: Errorf("failed %d", 2), wantCode: CodeFailure, wantOutput: os.Stderr, wantMsg: "failed 2"},
		{name: "usage", result: Usagef("bad flag %q", "x"), wantCode: CodeUsage, wantOutput: os.Stderr, wantMsg: `bad flag "x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.result.ExitCode != tt.wantCode {
				t.Fatalf("ExitCode = %d, want %d", tt.result.ExitCode, tt.wantCode)
			}
			if tt.result.Output != tt.wantOutput {
				t.Fatalf("Output = %v, want %v", tt.result.Output, tt.wantOutput)
			}
			if tt.result.Message != tt.wantMsg {
				t.Fatalf("Message = %q, want %q", tt.result.Message, tt.wantMsg)
			}
		})
	}
}

func TestPrint(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	(&Result{Output: &buf, Message: "done"}).Print()
	(&Result{Output: &buf}).Print()

	if got := buf.String(); got != "done\n" {
		t.Fatalf("Print() wrote %q, want %q", got, "done\n")
	}
}
