package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/clickup-export/internal/output"
)

func runConvertCmd(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd()
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"convert"}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestConvertCommand_File(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "doc.json")
	if err := os.WriteFile(input, []byte(docJSON), 0o600); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(dir, "out")

	stdout, _, err := runConvertCmd(t, "", input, "-o", outDir)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "Guide", "Setup_Install.md"))
	if err != nil || string(data) != "steps" {
		t.Errorf("Setup_Install.md = %q (err = %v)", data, err)
	}
	if !strings.Contains(stdout, "Export complete!") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestConvertCommand_Stdin(t *testing.T) {
	isolateConfig(t)
	outDir := t.TempDir()

	_, _, err := runConvertCmd(t, `[{"id": "s1", "name": "From stdin", "content": "hi"}]`, "-", "-o", outDir)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "From stdin.md"))
	if err != nil || string(data) != "hi" {
		t.Errorf("From stdin.md = %q (err = %v)", data, err)
	}
}

func TestConvertCommand_NoCredentialsNeeded(t *testing.T) {
	isolateConfig(t)

	_, _, err := runConvertCmd(t, "[]", "-", "-o", t.TempDir())
	if err != nil {
		t.Errorf("convert should not require an API key: %v", err)
	}
}

func TestConvertCommand_Errors(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		args     []string
		wantCode int
		wantMsg  string
	}{
		{
			name:     "missing file",
			args:     []string{"does-not-exist.json"},
			wantCode: output.ExitUserError,
			wantMsg:  "input file not found",
		},
		{
			name:     "not an array",
			stdin:    `{"id": "x"}`,
			args:     []string{"-"},
			wantCode: output.ExitUserError,
			wantMsg:  "input must be an array of page objects",
		},
		{
			name:     "page without id",
			stdin:    `[{"name": "x"}]`,
			args:     []string{"-"},
			wantCode: output.ExitUserError,
			wantMsg:  "invalid page input",
		},
		{
			name:     "bad policy",
			stdin:    `[]`,
			args:     []string{"-", "--on-collision", "skip"},
			wantCode: output.ExitUserError,
			wantMsg:  "--on-collision",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfig(t)
			outDir := filepath.Join(t.TempDir(), "out")

			_, stderr, err := runConvertCmd(t, tt.stdin, append(tt.args, "-o", outDir)...)
			if code := output.GetExitCode(err); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (err = %v)", code, tt.wantCode, err)
			}
			if !strings.Contains(stderr, tt.wantMsg) {
				t.Errorf("stderr = %q, want to contain %q", stderr, tt.wantMsg)
			}
			if _, statErr := os.Stat(outDir); !os.IsNotExist(statErr) {
				t.Errorf("output dir should not exist after a failed convert")
			}
		})
	}
}

func TestConvertCommand_RequiresOneArg(t *testing.T) {
	isolateConfig(t)

	if _, _, err := runConvertCmd(t, ""); err == nil {
		t.Error("expected error without an input argument")
	}
}
