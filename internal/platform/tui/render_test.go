package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/side-effects/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawText(0, 0, "plain")
	s.SetWithColor(6, 0, '#', core.ColorRed)
	s.SetWithColor(7, 0, '#', core.ColorRed)
	s.DrawTextColor(0, 1, "gray", core.ColorGray)

	out := ansi.Strip(NewPalette(nil).RenderScreen(s))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "plain ##  " {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "gray      " {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestPaletteUnknownColor(t *testing.T) {
	p := NewPalette(nil)
	if got := p.Style(core.Color(200)).Render("x"); got != "x" {
		t.Errorf("unknown colors should render plain, got %q", got)
	}
}
