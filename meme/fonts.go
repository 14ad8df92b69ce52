package meme

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// platformFonts are tried after the bundled files, in this order.
var platformFonts = []string{
	"/usr/share/fonts/truetype/impact/impact.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"C:/Windows/Fonts/impact.ttf",
	"/Library/Fonts/Impact.ttf",
	"/Library/Fonts/Arial Black.ttf",
}

// bundledFonts are looked up in the font directory shipped next to the binary.
var bundledFonts = []string{"impact.ttf", "Anton-Regular.ttf"}

// FontSource is one candidate in the font search order.
type FontSource interface {
	Name() string
	Load() (*opentype.Font, error)
}

// FileFont loads a TrueType or OpenType file from disk.
type FileFont string

func (f FileFont) Name() string { return string(f) }

func (f FileFont) Load() (*opentype.Font, error) {
	data, err := os.ReadFile(string(f))
	if err != nil {
		return nil, err
	}
	return opentype.Parse(data)
}

type embeddedFont struct {
	name string
	data []byte
}

func (e embeddedFont) Name() string { return e.name }

func (e embeddedFont) Load() (*opentype.Font, error) {
	return opentype.Parse(e.data)
}

// GoBold is the bold Go font compiled into the binary.
func GoBold() FontSource {
	return embeddedFont{name: "embedded:gobold", data: gobold.TTF}
}

// FontSources lists the candidates for a render: override, bundled files,
// platform fonts, then the embedded Go Bold font.
func FontSources(override, fontDir string) []FontSource {
	var sources []FontSource
	if override != "" {
		sources = append(sources, FileFont(override))
	}
	if fontDir != "" {
		for _, name := range bundledFonts {
			sources = append(sources, FileFont(filepath.Join(fontDir, name)))
		}
	}
	for _, path := range platformFonts {
		sources = append(sources, FileFont(path))
	}
	return append(sources, GoBold())
}

// FirstFont returns the first source that loads. A nil font means every candidate
// failed and the caller has to use the minimal face.
func FirstFont(sources ...FontSource) (*opentype.Font, string) {
	for _, source := range sources {
		parsed, err := source.Load()
		if err == nil && parsed != nil {
			return parsed, source.Name()
		}
	}
	return nil, ""
}

// minimalFace is the built-in bitmap font; it has a single size.
func minimalFace() font.Face {
	return basicfont.Face7x13
}

func newFace(parsed *opentype.Font, size float64) (font.Face, error) {
	if parsed == nil {
		return nil, fmt.Errorf("no font loaded")
	}
	return opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
