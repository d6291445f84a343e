// Package viewport maps the fixed virtual resolution of the game world onto
// the real screen: a uniform scale plus centering offsets, recomputed on
// every resize. The UI layer is kept 1:1 in screen pixels.
package viewport

import (
	"errors"
	"math"

	"chosenoffset.com/adventure/internal/core/geom"
	"chosenoffset.com/adventure/internal/render/scene"
)

// ErrNotBound is returned by ApplyResize before Bind has been called.
var ErrNotBound = errors.New("projector not bound: call Bind(world, ui) first")

// Config describes the virtual frame.
type Config struct {
	VirtualWidth   float64
	VirtualHeight  float64
	IntegerScaling bool
}

// Projector converts between world (virtual) and screen coordinates.
type Projector struct {
	cfg Config

	world *scene.Node
	ui    *scene.Node

	screenW, screenH float64

	scale   float64
	offsetX float64
	offsetY float64
	resized bool
}

// New creates a projector with identity scale. Projection is not meaningful
// until Bind and the first ApplyResize have run.
func New(cfg Config) *Projector {
	return &Projector{cfg: cfg, scale: 1}
}

// Bind sets the containers the projection is applied to.
func (p *Projector) Bind(world, ui *scene.Node) {
	p.world = world
	p.ui = ui
}

// ApplyResize recomputes scale and offsets for a screen of the given size and
// applies them to the world container. Calling it again with the same size
// changes nothing. Non-positive sizes (a minimized window) are ignored.
func (p *Projector) ApplyResize(screenW, screenH float64) error {
	if p.world == nil || p.ui == nil {
		return ErrNotBound
	}
	if screenW <= 0 || screenH <= 0 {
		return nil
	}

	p.screenW = screenW
	p.screenH = screenH

	raw := math.Min(screenW/p.cfg.VirtualWidth, screenH/p.cfg.VirtualHeight)
	if p.cfg.IntegerScaling {
		p.scale = math.Max(1, math.Floor(raw))
	} else {
		p.scale = raw
	}

	p.offsetX = (screenW - p.cfg.VirtualWidth*p.scale) / 2
	p.offsetY = (screenH - p.cfg.VirtualHeight*p.scale) / 2
	p.resized = true

	p.world.ScaleX, p.world.ScaleY = p.scale, p.scale
	p.world.SetPosition(p.offsetX, p.offsetY)

	// UI stays in screen coordinates: no scaling, no offset.
	p.ui.ScaleX, p.ui.ScaleY = 1, 1
	p.ui.SetPosition(0, 0)

	return nil
}

// Ready reports whether at least one resize has been applied.
func (p *Projector) Ready() bool {
	return p.resized
}

// Scale returns the current world-to-screen scale.
func (p *Projector) Scale() float64 {
	return p.scale
}

// Offset returns the screen position of the world origin.
func (p *Projector) Offset() geom.Point {
	return geom.Pt(p.offsetX, p.offsetY)
}

// ScreenSize returns the size passed to the last applied resize.
func (p *Projector) ScreenSize() (float64, float64) {
	return p.screenW, p.screenH
}

// VirtualSize returns the virtual frame size.
func (p *Projector) VirtualSize() (float64, float64) {
	return p.cfg.VirtualWidth, p.cfg.VirtualHeight
}

// WorldToScreen projects a world position into screen pixels.
func (p *Projector) WorldToScreen(world geom.Point) geom.Point {
	return geom.Pt(p.offsetX+world.X*p.scale, p.offsetY+world.Y*p.scale)
}

// ScreenToWorld is the inverse of WorldToScreen.
func (p *Projector) ScreenToWorld(screen geom.Point) geom.Point {
	return geom.Pt((screen.X-p.offsetX)/p.scale, (screen.Y-p.offsetY)/p.scale)
}

// FitContain scales a sprite to fit inside the virtual frame, preserving its
// aspect ratio, and centers it. Sprites without a texture are left alone.
func (p *Projector) FitContain(sprite *scene.Node) {
	tex := sprite.Texture()
	if tex == nil {
		return
	}
	w, h := tex.Size()
	if w <= 0 || h <= 0 {
		return
	}
	tw, th := float64(w), float64(h)

	s := math.Min(p.cfg.VirtualWidth/tw, p.cfg.VirtualHeight/th)
	sprite.SetAnchor(0, 0)
	sprite.ScaleX, sprite.ScaleY = s, s
	sprite.SetPosition((p.cfg.VirtualWidth-tw*s)/2, (p.cfg.VirtualHeight-th*s)/2)
}
