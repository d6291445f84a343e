package room

import (
	"image"
	"image/color"
	"math"

	"chosenoffset.com/adventure/internal/core/geom"
)

// Region decides which world positions are walkable.
type Region interface {
	Contains(p geom.Point) bool
}

// PolygonRegion is walkable inside a closed polygon, boundary included.
type PolygonRegion struct {
	Polygon geom.Polygon
}

// NewPolygonRegion creates a polygon walk region.
func NewPolygonRegion(points ...geom.Point) *PolygonRegion {
	return &PolygonRegion{Polygon: geom.Polygon(points)}
}

// Contains implements Region.
func (r *PolygonRegion) Contains(p geom.Point) bool {
	return r.Polygon.Contains(p)
}

// MaskRegion is walkable where the reference image has exactly the marker
// color. Every other color, and anything outside the image, is blocked.
type MaskRegion struct {
	img    image.Image
	marker color.NRGBA
	// pixelsPerUnit maps world units to mask pixels
	pixelsPerUnit float64
}

// NewMaskRegion creates a pixel mask walk region. pixelsPerUnit <= 0 means 1.
func NewMaskRegion(img image.Image, marker color.Color, pixelsPerUnit float64) *MaskRegion {
	if pixelsPerUnit <= 0 {
		pixelsPerUnit = 1
	}
	return &MaskRegion{
		img:           img,
		marker:        color.NRGBAModel.Convert(marker).(color.NRGBA),
		pixelsPerUnit: pixelsPerUnit,
	}
}

// Contains implements Region.
func (r *MaskRegion) Contains(p geom.Point) bool {
	if r.img == nil || math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return false
	}
	b := r.img.Bounds()
	x := int(math.Floor(p.X*r.pixelsPerUnit)) + b.Min.X
	y := int(math.Floor(p.Y*r.pixelsPerUnit)) + b.Min.Y
	if !(image.Point{X: x, Y: y}).In(b) {
		return false
	}
	c := color.NRGBAModel.Convert(r.img.At(x, y)).(color.NRGBA)
	return c == r.marker
}
