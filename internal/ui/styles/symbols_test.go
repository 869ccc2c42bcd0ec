package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestStatusLines(t *testing.T) {
	tests := []struct {
		name   string
		render func(string) string
		want   string
	}{
		{"ok", OK, "✓ xcodebuild"},
		{"fail", Fail, "✗ xcodebuild"},
		{"warn", Warn, "⚠ xcodebuild"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ansi.Strip(tt.render("xcodebuild"))
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if !strings.HasSuffix(got, "xcodebuild") {
				t.Errorf("text not kept: %q", got)
			}
		})
	}
}
