package scene

import (
	"math"

	"chosenoffset.com/adventure/internal/core/geom"
	"chosenoffset.com/adventure/internal/render"
)

// PointerEvent describes a pointer-down travelling up the tree from the hit node.
type PointerEvent struct {
	// Global is the pointer position in screen space.
	Global geom.Point
	// Target is the front-most interactive node under the pointer.
	Target *Node
	// Current is the node whose handler is running.
	Current *Node

	stopped bool
}

// StopPropagation prevents ancestors of Current from receiving the event.
func (e *PointerEvent) StopPropagation() {
	e.stopped = true
}

// Stopped reports whether propagation was stopped.
func (e *PointerEvent) Stopped() bool {
	return e.stopped
}

// LocalTo returns the event position in n's local space.
func (e *PointerEvent) LocalTo(n *Node) geom.Point {
	return n.ToLocal(e.Global)
}

// Scene owns the root of a node tree and the renderer used to draw it.
type Scene struct {
	root     *Node
	renderer render.Renderer
}

// New creates an empty scene.
func New(renderer render.Renderer) *Scene {
	return &Scene{
		root:     NewContainer("stage"),
		renderer: renderer,
	}
}

// Root returns the stage node.
func (s *Scene) Root() *Node {
	return s.root
}

// Update advances all animations by dt seconds.
func (s *Scene) Update(dt float64) {
	s.root.Update(dt)
}

// HitTest returns the front-most visible interactive node under the
// screen-space point, or nil.
func (s *Scene) HitTest(x, y float64) *Node {
	return hitTest(s.root, geom.Pt(x, y))
}

func hitTest(n *Node, p geom.Point) *Node {
	if !n.Visible {
		return nil
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if hit := hitTest(n.children[i], p); hit != nil {
			return hit
		}
	}
	if !n.Interactive {
		return nil
	}
	area := n.Bounds()
	if n.HitArea != nil {
		area = *n.HitArea
	}
	if area.W <= 0 || area.H <= 0 {
		return nil
	}
	if area.Contains(n.ToLocal(p)) {
		return n
	}
	return nil
}

// PointerDown routes a pointer-down at screen position (x, y). The hit node's
// handler runs first, then each interactive ancestor's, until a handler stops
// propagation. It reports whether any node was hit.
func (s *Scene) PointerDown(x, y float64) bool {
	target := s.HitTest(x, y)
	if target == nil {
		return false
	}

	e := &PointerEvent{Global: geom.Pt(x, y), Target: target}
	for n := target; n != nil; n = n.parent {
		if !n.Interactive || n.OnPointerDown == nil {
			continue
		}
		e.Current = n
		n.OnPointerDown(e)
		if e.stopped {
			break
		}
	}
	return true
}

// Draw renders the tree onto dst.
func (s *Scene) Draw(dst render.Image) {
	s.draw(dst, s.root, render.NewGeoM(), 1)
}

func (s *Scene) draw(dst render.Image, n *Node, parent render.GeoM, parentAlpha float64) {
	if !n.Visible {
		return
	}
	alpha := parentAlpha * n.Alpha
	if alpha <= 0 {
		return
	}

	world := n.LocalTransform()
	world.Concat(parent)

	switch n.Kind {
	case KindSprite:
		s.drawSprite(dst, n, world, alpha)
	case KindText:
		s.drawText(dst, n, world)
	case KindRect:
		s.drawRect(dst, n, world)
	}

	for _, c := range n.children {
		s.draw(dst, c, world, alpha)
	}
}

func (s *Scene) drawSprite(dst render.Image, n *Node, world render.GeoM, alpha float64) {
	tex := n.Texture()
	if tex == nil {
		return
	}
	b := n.Bounds()
	m := render.NewGeoM()
	m.Translate(b.X, b.Y)
	m.Concat(world)
	dst.DrawImage(tex, &render.DrawImageOptions{GeoM: m, Alpha: alpha})
}

func (s *Scene) drawText(dst render.Image, n *Node, world render.GeoM) {
	if s.renderer == nil || n.Text == "" {
		return
	}
	scale := n.TextScale * math.Abs(world.A)
	w, h := s.renderer.MeasureText(n.Text, scale)
	x, y := world.Apply(0, 0)
	s.renderer.DrawText(dst, n.Text, x-n.AnchorX*w, y-n.AnchorY*h, n.TextColor, scale)
}

func (s *Scene) drawRect(dst render.Image, n *Node, world render.GeoM) {
	if s.renderer == nil {
		return
	}
	b := n.Bounds()
	x0, y0 := world.Apply(b.X, b.Y)
	x1, y1 := world.Apply(b.X+b.W, b.Y+b.H)
	s.renderer.FillRect(dst, float32(math.Min(x0, x1)), float32(math.Min(y0, y1)),
		float32(math.Abs(x1-x0)), float32(math.Abs(y1-y0)), n.Color)
}
