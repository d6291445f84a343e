// Package placeholders draws the demo scene's art procedurally so the game
// runs without hand-made assets.
package placeholders

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
)

// Backgrounds are drawn at twice the virtual resolution.
const (
	BackgroundWidth  = 480
	BackgroundHeight = 270

	// FloorTop is the first background row of walkable floor.
	FloorTop = 160

	FrameWidth  = 16
	FrameHeight = 32
	IconSize    = 8
)

// MaskColor marks walkable pixels in the walk mask.
var MaskColor = color.RGBA{255, 0, 255, 255}

// ColorPalette defines colors for the office scene
var ColorPalette = struct {
	WallDark   color.RGBA
	WallLit    color.RGBA
	FloorDark  color.RGBA
	FloorLit   color.RGBA
	Window     color.RGBA
	Desk       color.RGBA
	SwitchBody color.RGBA
	SwitchOn   color.RGBA
	SwitchOff  color.RGBA
	Key        color.RGBA
	Plant      color.RGBA
	Pot        color.RGBA

	// Hero
	Skin  color.RGBA
	Shirt color.RGBA
	Legs  color.RGBA

	// UI
	Icon   color.RGBA
	Border color.RGBA
}{
	WallDark:   color.RGBA{28, 30, 40, 255},
	WallLit:    color.RGBA{190, 180, 150, 255},
	FloorDark:  color.RGBA{20, 18, 22, 255},
	FloorLit:   color.RGBA{120, 90, 60, 255},
	Window:     color.RGBA{60, 80, 130, 255},
	Desk:       color.RGBA{100, 70, 45, 255},
	SwitchBody: color.RGBA{220, 220, 210, 255},
	SwitchOn:   color.RGBA{80, 200, 80, 255},
	SwitchOff:  color.RGBA{200, 60, 60, 255},
	Key:        color.RGBA{255, 215, 0, 255},
	Plant:      color.RGBA{40, 150, 60, 255},
	Pot:        color.RGBA{170, 90, 50, 255},

	Skin:  color.RGBA{240, 200, 160, 255},
	Shirt: color.RGBA{0, 185, 19, 255},
	Legs:  color.RGBA{40, 50, 110, 255},

	Icon:   color.RGBA{230, 230, 230, 255},
	Border: color.RGBA{90, 90, 90, 255},
}

// CreateSolid creates a solid-colored image
func CreateSolid(w, h int, col color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
	return img
}

// CreateBordered creates a filled image with a border
func CreateBordered(w, h int, fillColor, borderColor color.RGBA, borderWidth int) *image.RGBA {
	img := CreateSolid(w, h, fillColor)
	for i := 0; i < borderWidth; i++ {
		for x := 0; x < w; x++ {
			img.Set(x, i, borderColor)
			img.Set(x, h-1-i, borderColor)
		}
		for y := 0; y < h; y++ {
			img.Set(i, y, borderColor)
			img.Set(w-1-i, y, borderColor)
		}
	}
	return img
}

// FillRect paints a rectangle onto img
func FillRect(img draw.Image, r image.Rectangle, col color.Color) {
	draw.Draw(img, r, &image.Uniform{col}, image.Point{}, draw.Src)
}

// CreateCircle creates a circle of the given diameter on a transparent image
func CreateCircle(size int, fillColor, outlineColor color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	center := size / 2
	radius := size/2 - 1

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := x - center
			dy := y - center
			distSq := dx*dx + dy*dy

			if distSq <= radius*radius {
				img.Set(x, y, fillColor)
			} else if distSq <= (radius+1)*(radius+1) {
				img.Set(x, y, outlineColor)
			}
		}
	}
	return img
}

// CreateStrip lays equal-sized frames out left to right
func CreateStrip(frames []*image.RGBA, frameW, frameH int) *image.RGBA {
	strip := image.NewRGBA(image.Rect(0, 0, frameW*len(frames), frameH))
	for i, frame := range frames {
		if frame == nil {
			continue
		}
		dst := image.Rect(i*frameW, 0, (i+1)*frameW, frameH)
		draw.Draw(strip, dst, frame, image.Point{}, draw.Src)
	}
	return strip
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// Lighten returns a lighter version of a color
func Lighten(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) + (255-float64(c.R))*factor),
		G: uint8(float64(c.G) + (255-float64(c.G))*factor),
		B: uint8(float64(c.B) + (255-float64(c.B))*factor),
		A: c.A,
	}
}
