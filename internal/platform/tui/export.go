package tui

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/vovakirdan/reality-controller/internal/core"
)

// PNG cell metrics
const (
	pngCellW    = 9.0
	pngCellH    = 18.0
	pngFontSize = 14.0
	pngPadding  = 1 // Cells of margin around the screen
)

// PNG palette
const (
	pngBackground = "#0b0b14"
	pngForeground = "#eeeeee"
)

// Screenshot is the pair of files written by SaveScreenshot.
type Screenshot struct {
	Text string
	PNG  string
}

// SaveScreenshot writes the screen as plain text and as a PNG into dir,
// named after the timestamp.
func SaveScreenshot(dir string, s *core.Screen, now time.Time) (Screenshot, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Screenshot{}, fmt.Errorf("screenshot: cannot create %s: %w", dir, err)
	}

	base := filepath.Join(dir, "reality_"+now.Format("20060102_150405"))
	shot := Screenshot{Text: base + ".txt", PNG: base + ".png"}

	if err := os.WriteFile(shot.Text, []byte(s.String()), 0o600); err != nil {
		return Screenshot{}, fmt.Errorf("screenshot: cannot write text: %w", err)
	}

	img, err := RenderPNG(s)
	if err != nil {
		return Screenshot{}, err
	}
	if err := gg.SavePNG(shot.PNG, img); err != nil {
		return Screenshot{}, fmt.Errorf("screenshot: cannot write png: %w", err)
	}

	return shot, nil
}

// RenderPNG draws the screen cells with their colors in Go Mono.
func RenderPNG(s *core.Screen) (image.Image, error) {
	imageWidth := int(float64(s.Width()+2*pngPadding) * pngCellW)
	imageHeight := int(float64(s.Height()+2*pngPadding) * pngCellH)

	dc := gg.NewContext(max(imageWidth, 1), max(imageHeight, 1))
	dc.SetHexColor(pngBackground)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("screenshot: failed to parse font: %w", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    pngFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()
	dc.SetFontFace(face)

	for y := range s.Height() {
		// Baseline sits at three quarters of the cell
		baseline := (float64(y+pngPadding) + 0.75) * pngCellH
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Rune == ' ' || cell.Rune == 0 {
				continue
			}
			if cell.Color.IsDefault() {
				dc.SetHexColor(pngForeground)
			} else {
				dc.SetHexColor(string(cell.Color))
			}
			dc.DrawString(string(cell.Rune), float64(x+pngPadding)*pngCellW, baseline)
		}
	}

	return dc.Image(), nil
}
