// Package render draws the absolute slot strip of a pager as an image.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	pagertest "github.com/go-drift/infinitepager/pkg/testing"
)

// Layout of one slot cell, in pixels.
const (
	CellWidth  = 72
	CellHeight = 48
	Gap        = 4
	Border     = 2
)

var (
	background  = color.RGBA{0x1e, 0x1e, 0x24, 0xff}
	canonical   = color.RGBA{0xe8, 0xe8, 0xee, 0xff}
	shadow      = color.RGBA{0x8a, 0x8a, 0x96, 0xff}
	liveBorder  = color.RGBA{0x3c, 0xb3, 0x71, 0xff}
	currentFill = color.RGBA{0x4a, 0x90, 0xe2, 0xff}
	textColor   = color.RGBA{0x10, 0x10, 0x14, 0xff}
)

// Strip renders slots left to right. Canonical slots are light, shadow
// slots grey, the current slot blue, and live slots get a green border.
// Each cell is labelled with the page title and its absolute index.
func Strip(slots []pagertest.Slot) *image.RGBA {
	width := Gap + len(slots)*(CellWidth+Gap)
	height := CellHeight + 2*Gap
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	for i, s := range slots {
		x := Gap + i*(CellWidth+Gap)
		cell := image.Rect(x, Gap, x+CellWidth, Gap+CellHeight)

		fill := canonical
		switch {
		case s.Current:
			fill = currentFill
		case s.Shadow:
			fill = shadow
		}
		if s.Live {
			draw.Draw(img, cell, image.NewUniform(liveBorder), image.Point{}, draw.Src)
			cell = cell.Inset(Border)
		}
		draw.Draw(img, cell, image.NewUniform(fill), image.Point{}, draw.Src)

		label(img, face, s.Title, x, Gap+CellHeight/2)
		label(img, face, strconv.Itoa(s.Absolute), x, Gap+CellHeight/2+face.Height)
	}
	return img
}

// WritePNG renders slots and encodes them as PNG.
func WritePNG(w io.Writer, slots []pagertest.Slot) error {
	return png.Encode(w, Strip(slots))
}

// label draws text centred horizontally in the cell starting at x, with
// its baseline at y. Text wider than the cell is truncated.
func label(dst draw.Image, face font.Face, text string, x, y int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(textColor),
		Face: face,
	}
	for text != "" && d.MeasureString(text).Ceil() > CellWidth-2*Border {
		text = text[:len(text)-1]
	}
	w := d.MeasureString(text).Ceil()
	d.Dot = fixed.P(x+(CellWidth-w)/2, y)
	d.DrawString(text)
}
