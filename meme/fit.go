package meme

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	initialFontSize = 80
	minFontSize     = 10
	fontSizeStep    = 4
	sideMargin      = 20
	outlineRange    = 4
	topOffset       = 40
	bottomOffset    = 140
)

// Fit is the outcome of shrinking a line until it fits the canvas width.
type Fit struct {
	Face  font.Face
	Size  float64
	Width int
	// Minimal is set when the built-in bitmap font had to be used.
	Minimal bool
}

// Close releases the face.
func (f Fit) Close() error {
	if f.Face == nil {
		return nil
	}
	return f.Face.Close()
}

// FitText shrinks the font from 80pt in 4pt steps until text fits canvasWidth minus the
// side margins, never going below 10pt. A face that cannot be created switches to the
// minimal font and stops the shrinking.
func FitText(parsed *opentype.Font, text string, canvasWidth int) Fit {
	usable := canvasWidth - 2*sideMargin

	size := float64(initialFontSize)
	face, err := newFace(parsed, size)
	if err != nil {
		face = minimalFace()
		return Fit{Face: face, Width: measure(face, text), Minimal: true}
	}

	width := measure(face, text)
	for width > usable && size > minFontSize {
		size -= fontSizeStep
		if size < minFontSize {
			size = minFontSize
		}
		next, err := newFace(parsed, size)
		_ = face.Close()
		if err != nil {
			face = minimalFace()
			return Fit{Face: face, Width: measure(face, text), Minimal: true}
		}
		face = next
		width = measure(face, text)
	}
	return Fit{Face: face, Size: size, Width: width}
}

func measure(face font.Face, text string) int {
	return font.MeasureString(face, text).Ceil()
}

// drawOutlined renders text with its top edge at y: a 9x9 grid of black passes around
// (x, y) followed by a white pass on top.
func drawOutlined(dst *image.RGBA, face font.Face, text string, x, y int) {
	baseline := y + face.Metrics().Ascent.Ceil()
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.Black,
		Face: face,
	}
	for dx := -outlineRange; dx <= outlineRange; dx++ {
		for dy := -outlineRange; dy <= outlineRange; dy++ {
			drawer.Dot = fixed.P(x+dx, baseline+dy)
			drawer.DrawString(text)
		}
	}
	drawer.Src = image.White
	drawer.Dot = fixed.P(x, baseline)
	drawer.DrawString(text)
}
