package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestResolveColorMode(t *testing.T) {
	tests := []struct {
		colorMode string
		isTTY     bool
		want      bool
	}{
		{"never", true, false},
		{"never", false, false},
		{"always", true, true},
		{"always", false, true},
		{"auto", true, true},
		{"auto", false, false},
		{"", true, true},
		{"bogus", false, false},
	}

	for _, tt := range tests {
		if got := ResolveColorMode(tt.colorMode, tt.isTTY); got != tt.want {
			t.Errorf("ResolveColorMode(%q, %v) = %v, want %v", tt.colorMode, tt.isTTY, got, tt.want)
		}
	}
}

func TestIsTTY_Buffer(t *testing.T) {
	var buf bytes.Buffer
	if IsTTY(&buf) {
		t.Error("IsTTY(buffer) should return false")
	}
}

func TestNewPrinter_StylesFollowTTY(t *testing.T) {
	var buf bytes.Buffer
	empty := lipgloss.NewStyle()

	plain := NewPrinter(&buf, false, ResolveColorMode("never", true))
	if plain.IsTTY() {
		t.Error("printer should report non-TTY when color=never")
	}
	if plain.styles.Error.GetForeground() != empty.GetForeground() {
		t.Error("Error style should have no foreground color when color=never")
	}

	colored := NewPrinter(&buf, false, ResolveColorMode("always", false))
	if colored.styles.Error.GetForeground() == empty.GetForeground() {
		t.Error("Error style should have foreground color when color=always")
	}
}

func TestNewPrinter_NoANSIWhenPlain(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Error(NewSystemError("mkdir out/Root: permission denied"))
	printer.Progress("wrote %s", "out/Root.md")

	if strings.Contains(buf.String(), "\033[") {
		t.Errorf("plain output should contain no ANSI codes, got: %q", buf.String())
	}
}
