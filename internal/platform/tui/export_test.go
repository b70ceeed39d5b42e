package tui

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/reality-controller/internal/core"
)

func TestSaveScreenshot(t *testing.T) {
	dir := t.TempDir()
	s := core.NewScreen(12, 4)
	s.DrawBox(s.Bounds(), core.ColorBorder)
	s.DrawText(2, 1, "hi", core.Color("#00ffff"))

	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	shot, err := SaveScreenshot(dir, s, now)
	if err != nil {
		t.Fatalf("SaveScreenshot() failed: %v", err)
	}

	if !strings.HasSuffix(shot.Text, "reality_20240506_070809.txt") {
		t.Errorf("text path = %s", shot.Text)
	}
	data, err := os.ReadFile(shot.Text)
	if err != nil {
		t.Fatalf("text screenshot missing: %v", err)
	}
	if string(data) != s.String() {
		t.Errorf("text screenshot = %q, want %q", data, s.String())
	}

	if _, err := os.Stat(shot.PNG); err != nil {
		t.Errorf("png screenshot missing: %v", err)
	}
}

func TestRenderPNGSize(t *testing.T) {
	s := core.NewScreen(10, 5)
	img, err := RenderPNG(s)
	if err != nil {
		t.Fatalf("RenderPNG() failed: %v", err)
	}

	b := img.Bounds()
	wantW := int(float64(10+2*pngPadding) * pngCellW)
	wantH := int(float64(5+2*pngPadding) * pngCellH)
	if b.Dx() != wantW || b.Dy() != wantH {
		t.Errorf("image = %dx%d, want %dx%d", b.Dx(), b.Dy(), wantW, wantH)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(8, 2)
	s.DrawText(0, 0, "rain", core.ColorRain)
	s.DrawText(0, 1, "plain", core.ColorDefault)

	out := RenderScreen(s)
	if !strings.Contains(out, "rain") || !strings.Contains(out, "plain") {
		t.Errorf("RenderScreen() lost text: %q", out)
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("RenderScreen() has %d newlines, want 1", got)
	}
}

func TestFeedbackMessages(t *testing.T) {
	var f Feedback
	if f.View() != "" {
		t.Error("hidden feedback should render empty")
	}

	g1 := f.Processing("explode")
	if f.Message != `Processing: "explode"` || f.Kind != FeedbackProcessing {
		t.Errorf("Processing() = %+v", f)
	}
	g2 := f.Executed("explode")
	if g2 <= g1 {
		t.Errorf("generation did not advance: %d -> %d", g1, g2)
	}
	if f.Hide(g1) {
		t.Error("Hide(stale) returned true")
	}
	if !f.Hide(g2) || f.Visible {
		t.Error("Hide(current) did not hide")
	}
}
