package meme

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"YoDawg/core"
	"YoDawg/lib/sl"
)

// Compositor lays captions onto images.
type Compositor struct {
	fontDir string
	sources func(override, fontDir string) []FontSource
	log     *slog.Logger
}

func NewCompositor(fontDir string, log *slog.Logger) *Compositor {
	return &Compositor{
		fontDir: fontDir,
		sources: FontSources,
		log:     log.With(sl.Module("meme")),
	}
}

// WithFontSources replaces the font search order, mostly for tests.
func (c *Compositor) WithFontSources(sources func(override, fontDir string) []FontSource) *Compositor {
	c.sources = sources
	return c
}

// Overlay draws the caption on a copy of the template and writes it to outputPath.
// The top line sits near the upper margin, the bottom line near the lower margin.
// Lines that do not fit at the smallest size overflow; they are not wrapped.
func (c *Compositor) Overlay(caption core.Caption, templatePath, outputPath, fontOverride string) error {
	if strings.TrimSpace(templatePath) == "" {
		return fmt.Errorf("%w: template path must not be empty", core.ErrInvalidInput)
	}
	if strings.TrimSpace(outputPath) == "" {
		return fmt.Errorf("%w: output path must not be empty", core.ErrInvalidInput)
	}
	if samePath(templatePath, outputPath) {
		return fmt.Errorf("%w: output %q would overwrite the template", core.ErrInvalidInput, outputPath)
	}

	canvas, err := loadCanvas(templatePath)
	if err != nil {
		return err
	}

	parsed, fontName := FirstFont(c.sources(fontOverride, c.fontDir)...)
	if parsed == nil {
		fontName = "minimal"
	}

	height := canvas.Bounds().Dy()
	for _, line := range []struct {
		text string
		y    int
	}{
		{caption.Top, topOffset},
		{caption.Bottom, height - bottomOffset},
	} {
		if line.text == "" {
			continue
		}
		fit := FitText(parsed, line.text, canvas.Bounds().Dx())
		x := (canvas.Bounds().Dx() - fit.Width) / 2
		drawOutlined(canvas, fit.Face, line.text, x, line.y)
		_ = fit.Close()

		c.log.With(
			slog.String("font", fontName),
			slog.Float64("size", fit.Size),
			slog.Int("width", fit.Width),
			slog.Int("x", x),
			slog.Int("y", line.y),
		).Debug("line placed")
	}

	if err := writeImage(canvas, outputPath); err != nil {
		return err
	}
	c.log.With(
		slog.String("template", templatePath),
		slog.String("output", outputPath),
	).Info("static meme saved")
	return nil
}

func loadCanvas(path string) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: static image %q: %v", core.ErrInputNotFound, path, err)
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: decode static image %q: %v", core.ErrInputNotFound, path, err)
	}

	bounds := src.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(canvas, canvas.Bounds(), src, bounds.Min, draw.Src)
	return canvas, nil
}

// writeImage encodes by extension: JPEG for .jpg/.jpeg, PNG otherwise.
func writeImage(img image.Image, path string) error {
	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
			return fmt.Errorf("encode jpeg: %w", err)
		}
	default:
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
