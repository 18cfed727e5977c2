package envfile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeEnv(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// unset clears a variable for the duration of the test.
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	_ = os.Unsetenv(key) //nolint:errcheck
}

func TestLoad_NonexistentFile(t *testing.T) {
	if err := Load("/nonexistent/.env", ""); err != nil {
		t.Fatalf("expected nil for nonexistent file, got %v", err)
	}
}

func TestLoad_SetsUnsetVars(t *testing.T) {
	path := writeEnv(t, ".env.local", "CLICKUP_API_TOKEN=pk_123\nCLICKUP_WORKSPACE_ID=\"9012\"\n# comment\n\nexport CLICKUP_TIMEOUT='30s'\n")
	unset(t, "CLICKUP_API_TOKEN")
	unset(t, "CLICKUP_WORKSPACE_ID")
	unset(t, "CLICKUP_TIMEOUT")

	if err := Load(path); err != nil {
		t.Fatal(err)
	}

	want := map[string]string{
		"CLICKUP_API_TOKEN":    "pk_123",
		"CLICKUP_WORKSPACE_ID": "9012",
		"CLICKUP_TIMEOUT":      "30s",
	}
	for key, value := range want {
		if got := os.Getenv(key); got != value {
			t.Errorf("%s = %q, want %q", key, got, value)
		}
	}
}

func TestLoad_DoesNotOverrideExisting(t *testing.T) {
	path := writeEnv(t, ".env", "CLICKUP_API_TOKEN=from_file\n")
	t.Setenv("CLICKUP_API_TOKEN", "from_env")

	if err := Load(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("CLICKUP_API_TOKEN"); got != "from_env" {
		t.Errorf("CLICKUP_API_TOKEN = %q, want %q (env should take precedence)", got, "from_env")
	}
}

func TestLoad_EarlierFileWins(t *testing.T) {
	local := writeEnv(t, ".env.local", "CLICKUP_WORKSPACE_ID=local\n")
	shared := writeEnv(t, ".env", "CLICKUP_WORKSPACE_ID=shared\nCLICKUP_API_URL=http://proxy\n")
	unset(t, "CLICKUP_WORKSPACE_ID")
	unset(t, "CLICKUP_API_URL")

	if err := Load(local, shared); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("CLICKUP_WORKSPACE_ID"); got != "local" {
		t.Errorf("CLICKUP_WORKSPACE_ID = %q, want %q", got, "local")
	}
	if got := os.Getenv("CLICKUP_API_URL"); got != "http://proxy" {
		t.Errorf("CLICKUP_API_URL = %q, want %q", got, "http://proxy")
	}
}

func TestLoad_UnreadableFile(t *testing.T) {
	// a directory exists but cannot be read as an env file
	if err := Load(t.TempDir()); err == nil {
		t.Error("expected error when the path is a directory")
	}
}

func TestLoad_BadFileDoesNotStopLaterFiles(t *testing.T) {
	shared := writeEnv(t, ".env", "CLICKUP_API_TOKEN=from_shared\n")
	unset(t, "CLICKUP_API_TOKEN")

	err := Load(t.TempDir(), shared)
	if err == nil {
		t.Error("expected an error for the unreadable file")
	}
	if got := os.Getenv("CLICKUP_API_TOKEN"); got != "from_shared" {
		t.Errorf("CLICKUP_API_TOKEN = %q, want %q", got, "from_shared")
	}
}
