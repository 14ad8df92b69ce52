package meme

import (
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"YoDawg/core"
)

func testCompositor() *Compositor {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCompositor("", log).WithFontSources(func(_, _ string) []FontSource {
		return []FontSource{GoBold()}
	})
}

func writeTemplate(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 128, G: 128, B: 128, A: 255}), image.Point{}, draw.Src)

	path := filepath.Join(t.TempDir(), "template.png")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, png.Encode(file, img))
	return path
}

func TestOverlay_MissingTemplate(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.png")

	err := testCompositor().Overlay(core.Caption{Top: "YO DAWG", Bottom: "x"}, filepath.Join(t.TempDir(), "nope.png"), output, "")

	require.ErrorIs(t, err, core.ErrInputNotFound)
	assert.NoFileExists(t, output)
}

func TestOverlay_NotAnImage(t *testing.T) {
	template := filepath.Join(t.TempDir(), "template.png")
	require.NoError(t, os.WriteFile(template, []byte("not an image"), 0o644))
	output := filepath.Join(t.TempDir(), "out.png")

	err := testCompositor().Overlay(core.Caption{Top: "YO DAWG"}, template, output, "")

	require.ErrorIs(t, err, core.ErrInputNotFound)
	assert.NoFileExists(t, output)
}

func TestOverlay_RefusesToOverwriteTemplate(t *testing.T) {
	template := writeTemplate(t, 200, 200)

	err := testCompositor().Overlay(core.Caption{Top: "YO DAWG"}, template, template, "")

	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestOverlay_Idempotent(t *testing.T) {
	template := writeTemplate(t, 600, 400)
	original, err := os.ReadFile(template)
	require.NoError(t, err)

	caption := core.Caption{Top: "YO DAWG, I heard you like tests", Bottom: "so I put a test in your test"}
	dir := t.TempDir()
	first := filepath.Join(dir, "first.png")
	second := filepath.Join(dir, "second.png")

	c := testCompositor()
	require.NoError(t, c.Overlay(caption, template, first, ""))
	require.NoError(t, c.Overlay(caption, template, second, ""))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	after, err := os.ReadFile(template)
	require.NoError(t, err)
	assert.Equal(t, original, after, "template must not change")
}

func TestOverlay_DrawsWhiteTextWithBlackOutline(t *testing.T) {
	template := writeTemplate(t, 600, 400)
	output := filepath.Join(t.TempDir(), "out.png")

	require.NoError(t, testCompositor().Overlay(core.Caption{Top: "YO DAWG", Bottom: "WOW"}, template, output, ""))

	file, err := os.Open(output)
	require.NoError(t, err)
	defer file.Close()
	img, err := png.Decode(file)
	require.NoError(t, err)

	assert.Equal(t, 600, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())

	countColors := func(y0, y1 int) (white, black int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < img.Bounds().Dx(); x++ {
				r, g, b, _ := img.At(x, y).RGBA()
				switch {
				case r == 0xffff && g == 0xffff && b == 0xffff:
					white++
				case r == 0 && g == 0 && b == 0:
					black++
				}
			}
		}
		return white, black
	}

	white, black := countColors(0, 200)
	assert.Positive(t, white, "top line fill")
	assert.Positive(t, black, "top line outline")

	white, black = countColors(260, 400)
	assert.Positive(t, white, "bottom line fill")
	assert.Positive(t, black, "bottom line outline")
}

func TestOverlay_JPEGOutput(t *testing.T) {
	template := writeTemplate(t, 300, 300)
	output := filepath.Join(t.TempDir(), "out.jpg")

	require.NoError(t, testCompositor().Overlay(core.Caption{Top: "YO DAWG"}, template, output, ""))

	file, err := os.Open(output)
	require.NoError(t, err)
	defer file.Close()
	_, err = jpeg.Decode(file)
	assert.NoError(t, err)
}

func TestOverlay_FallsBackToMinimalFont(t *testing.T) {
	template := writeTemplate(t, 300, 300)
	output := filepath.Join(t.TempDir(), "out.png")
	c := testCompositor().WithFontSources(func(_, _ string) []FontSource {
		return []FontSource{FileFont(filepath.Join(t.TempDir(), "missing.ttf"))}
	})

	require.NoError(t, c.Overlay(core.Caption{Top: "YO DAWG", Bottom: "minimal"}, template, output, ""))
	assert.FileExists(t, output)
}

func TestFitText_Bounds(t *testing.T) {
	parsed, _ := FirstFont(GoBold())
	require.NotNil(t, parsed)

	texts := []string{
		"YO",
		"YO DAWG, I heard you like tests",
		strings.Repeat("so I put a meme in your meme ", 6),
	}
	for _, width := range []int{120, 400, 1024} {
		for _, text := range texts {
			fit := FitText(parsed, text, width)

			assert.False(t, fit.Minimal)
			assert.GreaterOrEqual(t, fit.Size, float64(minFontSize))
			assert.LessOrEqual(t, fit.Size, float64(initialFontSize))
			if fit.Size > minFontSize {
				assert.LessOrEqual(t, fit.Width, width-2*sideMargin, "text %q width %d", text, width)
			}
			assert.NoError(t, fit.Close())
		}
	}
}

func TestFitText_ShortTextKeepsInitialSize(t *testing.T) {
	parsed, _ := FirstFont(GoBold())

	fit := FitText(parsed, "YO", 1024)
	defer fit.Close()

	assert.Equal(t, float64(initialFontSize), fit.Size)
}

func TestFitText_OverflowStopsAtFloor(t *testing.T) {
	parsed, _ := FirstFont(GoBold())

	fit := FitText(parsed, strings.Repeat("W", 200), 300)
	defer fit.Close()

	assert.Equal(t, float64(minFontSize), fit.Size)
	assert.Greater(t, fit.Width, 300-2*sideMargin)
}

func TestFitText_NoFont(t *testing.T) {
	fit := FitText(nil, "YO DAWG", 400)

	assert.True(t, fit.Minimal)
	assert.Positive(t, fit.Width)
}
