// Package ogimage renders post titles into social-preview PNGs: word-wrapped,
// auto-sized text centered on a vertical gradient background.
package ogimage

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/haasonsaas/blogkit"
)

// Spec is one image request. The same spec always maps to the same file.
type Spec struct {
	Width      int
	Height     int
	Text       string
	Background color.RGBA
	TextColor  color.RGBA
}

var (
	defaultBackground = color.RGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 0xff}
	defaultTextColor  = color.RGBA{R: 0xf8, G: 0xfa, B: 0xfc, A: 0xff}
)

// gradientDelta is how much the bottom gradient stop is darkened per channel.
const gradientDelta = 40

// Generator rasterizes Specs into OutputDir. The generated map memoizes
// which filenames this run has already produced; it is per-Generator state,
// not package state, so tests can reset it by constructing a new Generator.
type Generator struct {
	OutputDir string
	generated map[string]bool
	font      *opentype.Font
}

// NewGenerator creates a Generator writing into outputDir.
func NewGenerator(outputDir string) (*Generator, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("ogimage: parse font: %w", err)
	}
	return &Generator{
		OutputDir: outputDir,
		generated: make(map[string]bool),
		font:      f,
	}, nil
}

// Filename returns the output filename for a spec without generating it.
func (g *Generator) Filename(spec Spec) string {
	return blogkit.ImageFilename(spec.Width, spec.Height, spec.Text)
}

// Generate renders the Spec to a PNG and reports the path and whether a new
// file was written. Generation is idempotent: if the target file already
// exists, or this run already produced it, Generate does no work.
func (g *Generator) Generate(spec Spec) (string, bool, error) {
	filename := g.Filename(spec)
	path := filepath.Join(g.OutputDir, filename)

	if g.generated[filename] {
		return path, false, nil
	}
	if _, err := os.Stat(path); err == nil {
		g.generated[filename] = true
		return path, false, nil
	}

	img, err := g.render(spec)
	if err != nil {
		return "", false, err
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return "", false, fmt.Errorf("ogimage: create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(g.OutputDir, filename+".tmp*")
	if err != nil {
		return "", false, fmt.Errorf("ogimage: create temp file: %w", err)
	}
	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", false, fmt.Errorf("ogimage: encode %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", false, fmt.Errorf("ogimage: close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", false, fmt.Errorf("ogimage: rename into place: %w", err)
	}

	g.generated[filename] = true
	return path, true, nil
}

func (g *Generator) render(spec Spec) (*image.RGBA, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("ogimage: invalid dimensions %dx%d", spec.Width, spec.Height)
	}
	bg := spec.Background
	if bg == (color.RGBA{}) {
		bg = defaultBackground
	}
	fg := spec.TextColor
	if fg == (color.RGBA{}) {
		fg = defaultTextColor
	}

	img := image.NewRGBA(image.Rect(0, 0, spec.Width, spec.Height))
	drawGradient(img, bg)

	text := strings.TrimSpace(spec.Text)
	if text == "" {
		return img, nil
	}

	size := FitFontSize(text, spec.Width, spec.Height)
	lines := WrapText(text, size, spec.Width)

	face, err := opentype.NewFace(g.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("ogimage: create face: %w", err)
	}
	defer face.Close()

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
	}

	// Center the text block vertically: the first baseline sits one font
	// size below the block's top edge.
	lineHeight := size * 1.2
	blockHeight := lineHeight * float64(len(lines))
	baseline := (float64(spec.Height)-blockHeight)/2 + size

	for _, line := range lines {
		advance := drawer.MeasureString(line)
		x := (fixed.I(spec.Width) - advance) / 2
		drawer.Dot = fixed.Point26_6{X: x, Y: floatToFixed(baseline)}
		drawer.DrawString(line)
		baseline += lineHeight
	}
	return img, nil
}

// FitFontSize picks a font size for text in a width x height canvas. It
// targets roughly 2.5 lines: estimate the single-line size from the text
// length, scale toward the target line count bounded by the available
// height, shrink by 0.8, then clamp to 4%-15% of the smaller dimension.
func FitFontSize(text string, width, height int) float64 {
	availW := float64(width) * 0.8
	availH := float64(height) * 0.8
	const targetLines = 2.5

	base := availW / (float64(len(text)) * 0.6)
	size := base * targetLines
	if size*1.2*targetLines > availH {
		size = availH / (1.2 * targetLines)
	}
	size *= 0.8

	minDim := math.Min(float64(width), float64(height))
	if lo := minDim * 0.04; size < lo {
		size = lo
	}
	if hi := minDim * 0.15; size > hi {
		size = hi
	}
	return size
}

// WrapText greedily packs words into lines while the estimated line width
// (character count x fontSize x 0.6) stays under 80% of the image width.
// The estimate is intentionally approximate; real glyph metrics are only
// used when drawing, for horizontal centering.
func WrapText(text string, fontSize float64, width int) []string {
	limit := 0.8 * float64(width)
	var lines []string
	var line string
	for _, word := range strings.Fields(text) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if float64(len(candidate))*fontSize*0.6 > limit && line != "" {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// drawGradient fills img with a two-stop vertical gradient from bg down to
// bg darkened by gradientDelta.
func drawGradient(img *image.RGBA, bg color.RGBA) {
	bounds := img.Bounds()
	span := float64(bounds.Dy() - 1)
	if span < 1 {
		span = 1
	}
	bottom := darken(bg, gradientDelta)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		t := float64(y-bounds.Min.Y) / span
		row := color.RGBA{
			R: lerp(bg.R, bottom.R, t),
			G: lerp(bg.G, bottom.G, t),
			B: lerp(bg.B, bottom.B, t),
			A: 0xff,
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x, y, row)
		}
	}
}

func darken(c color.RGBA, delta uint8) color.RGBA {
	sub := func(v uint8) uint8 {
		if v < delta {
			return 0
		}
		return v - delta
	}
	return color.RGBA{R: sub(c.R), G: sub(c.G), B: sub(c.B), A: c.A}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func floatToFixed(f float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(f * 64))
}
