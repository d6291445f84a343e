// Package rendertest provides headless render implementations for tests.
package rendertest

import (
	"fmt"
	"image"
	"image/color"

	"chosenoffset.com/adventure/internal/render"
)

// Image is an in-memory render.Image that records draw calls.
type Image struct {
	Name   string
	Rect   image.Rectangle
	Draws  []Draw
	Filled color.Color
}

// Draw records a single DrawImage call.
type Draw struct {
	Src  render.Image
	Opts render.DrawImageOptions
}

// NewImage creates a fake image of the given size.
func NewImage(name string, width, height int) *Image {
	return &Image{Name: name, Rect: image.Rect(0, 0, width, height)}
}

func (i *Image) Bounds() image.Rectangle { return i.Rect }
func (i *Image) Size() (int, int) { return i.Rect.Dx(), i.Rect.Dy() }
func (i *Image) Fill(clr color.Color) { i.Filled = clr }
func (i *Image) Clear() { i.Draws = nil }
func (i *Image) Dispose() {}
func (i *Image) String() string { return i.Name }

// SubImage returns a new fake image covering r.
func (i *Image) SubImage(r image.Rectangle) render.Image {
	return &Image{Name: fmt.Sprintf("%s%v", i.Name, r), Rect: r.Sub(r.Min)}
}

// DrawImage records the call.
func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	d := Draw{Src: src}
	if opts != nil {
		d.Opts = *opts
	}
	i.Draws = append(i.Draws, d)
}

// Renderer is a render.Renderer that records text and rectangle draws.
// Text is measured as 6x13 pixels per character at scale 1.
type Renderer struct {
	Texts []Text
	Rects []FillRect
}

// Text records a DrawText call.
type Text struct {
	Text  string
	X, Y  float64
	Scale float64
}

// FillRect records a FillRect call.
type FillRect struct {
	X, Y, W, H float32
}

func (r *Renderer) NewImage(width, height int) render.Image {
	return NewImage("offscreen", width, height)
}

func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	r.Rects = append(r.Rects, FillRect{X: x, Y: y, W: width, H: height})
}

func (r *Renderer) DrawText(dst render.Image, text string, x, y float64, clr color.Color, scale float64) {
	r.Texts = append(r.Texts, Text{Text: text, X: x, Y: y, Scale: scale})
}

func (r *Renderer) MeasureText(text string, scale float64) (float64, float64) {
	return float64(len(text)) * 6 * scale, 13 * scale
}
