// Package scene is a small retained node tree on top of the render
// abstraction: containers, sprites, animated sprites, text and filled
// rectangles, with per-node transforms, alpha, visibility and pointer
// hit testing. Game objects own nodes; the tree only draws and routes input.
package scene

import (
	"image/color"
	"math"

	"chosenoffset.com/adventure/internal/core/geom"
	"chosenoffset.com/adventure/internal/render"
)

// ticksPerSecond is the reference rate AnimationSpeed is expressed in.
const ticksPerSecond = 60

// Kind identifies what a node draws.
type Kind int

const (
	KindContainer Kind = iota
	KindSprite
	KindText
	KindRect
)

// Rect is an axis-aligned rectangle in a node's local space.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside r (edges inclusive).
func (r Rect) Contains(p geom.Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// PointerHandler is called when a pointer goes down on a node or one of its descendants.
type PointerHandler func(e *PointerEvent)

// Node is a single element of the scene tree.
type Node struct {
	Name string
	Kind Kind

	// ID tags the node with the identifier of the game object it shows.
	ID string

	X, Y             float64
	ScaleX, ScaleY   float64
	AnchorX, AnchorY float64
	Alpha            float64
	Visible          bool

	// Interactive nodes take part in hit testing.
	Interactive bool
	// HitArea overrides the content bounds for hit testing.
	HitArea       *Rect
	OnPointerDown PointerHandler

	// Sprite content
	texture render.Image

	// Animated sprite content
	frames         []render.Image
	frame          float64
	playing        bool
	AnimationSpeed float64

	// Text content
	Text      string
	TextColor color.Color
	TextScale float64

	// Rect content
	Width, Height float64
	Color         color.Color

	parent   *Node
	children []*Node
}

func newNode(name string, kind Kind) *Node {
	return &Node{
		Name:    name,
		Kind:    kind,
		ScaleX:  1,
		ScaleY:  1,
		Alpha:   1,
		Visible: true,
	}
}

// NewContainer creates a group node with no visual output.
func NewContainer(name string) *Node {
	return newNode(name, KindContainer)
}

// NewSprite creates a node that draws a single texture.
func NewSprite(name string, texture render.Image) *Node {
	n := newNode(name, KindSprite)
	n.texture = texture
	return n
}

// NewAnimatedSprite creates a stopped sprite cycling through frames.
func NewAnimatedSprite(name string, frames []render.Image) *Node {
	n := newNode(name, KindSprite)
	n.frames = frames
	return n
}

// NewText creates a text node.
func NewText(name, text string, clr color.Color, scale float64) *Node {
	n := newNode(name, KindText)
	n.Text = text
	n.TextColor = clr
	n.TextScale = scale
	return n
}

// NewRect creates a filled rectangle node.
func NewRect(name string, width, height float64, clr color.Color) *Node {
	n := newNode(name, KindRect)
	n.Width = width
	n.Height = height
	n.Color = clr
	return n
}

// --- Tree ---

// Parent returns the node's parent, or nil when detached.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's children in draw order.
func (n *Node) Children() []*Node {
	return n.children
}

// AddChild appends child, moving it from its previous parent if needed.
func (n *Node) AddChild(child *Node) {
	child.RemoveFromParent()
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child if it belongs to n.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// RemoveFromParent detaches the node from its parent.
func (n *Node) RemoveFromParent() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// RemoveChildren detaches all children.
func (n *Node) RemoveChildren() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

// HasChild reports whether child is a direct child of n.
func (n *Node) HasChild(child *Node) bool {
	return child != nil && child.parent == n
}

// --- Content ---

// SetPosition sets the local position.
func (n *Node) SetPosition(x, y float64) {
	n.X, n.Y = x, y
}

// Position returns the local position.
func (n *Node) Position() geom.Point {
	return geom.Pt(n.X, n.Y)
}

// SetScale sets a uniform scale, keeping the mirror sign of ScaleX.
func (n *Node) SetScale(s float64) {
	if n.ScaleX < 0 {
		n.ScaleX = -s
	} else {
		n.ScaleX = s
	}
	n.ScaleY = s
}

// SetAnchor sets the anchor as a fraction of the content size.
func (n *Node) SetAnchor(x, y float64) {
	n.AnchorX, n.AnchorY = x, y
}

// SetTexture replaces the sprite texture and drops any animation frames.
func (n *Node) SetTexture(texture render.Image) {
	n.texture = texture
	n.frames = nil
	n.frame = 0
	n.playing = false
}

// Texture returns the texture currently drawn.
func (n *Node) Texture() render.Image {
	if len(n.frames) > 0 {
		return n.frames[int(n.frame)%len(n.frames)]
	}
	return n.texture
}

// SetFrames replaces the animation frames and rewinds to the first one.
func (n *Node) SetFrames(frames []render.Image) {
	n.frames = frames
	n.frame = 0
}

// Play starts the animation.
func (n *Node) Play() {
	n.playing = true
}

// Stop pauses the animation on the current frame.
func (n *Node) Stop() {
	n.playing = false
}

// Playing reports whether the animation is running.
func (n *Node) Playing() bool {
	return n.playing
}

// CurrentFrame returns the index of the animation frame being shown.
func (n *Node) CurrentFrame() int {
	if len(n.frames) == 0 {
		return 0
	}
	return int(n.frame) % len(n.frames)
}

// Update advances animations of n and its subtree by dt seconds.
func (n *Node) Update(dt float64) {
	if n.playing && len(n.frames) > 0 && dt > 0 {
		n.frame = math.Mod(n.frame+n.AnimationSpeed*dt*ticksPerSecond, float64(len(n.frames)))
	}
	for _, c := range n.children {
		c.Update(dt)
	}
}

// contentSize returns the unscaled size of what the node draws.
func (n *Node) contentSize() (float64, float64) {
	switch n.Kind {
	case KindSprite:
		if tex := n.Texture(); tex != nil {
			w, h := tex.Size()
			return float64(w), float64(h)
		}
	case KindRect:
		return n.Width, n.Height
	}
	return 0, 0
}

// Bounds returns the node's content rectangle in local space, anchor applied.
func (n *Node) Bounds() Rect {
	w, h := n.contentSize()
	return Rect{X: -n.AnchorX * w, Y: -n.AnchorY * h, W: w, H: h}
}

// --- Transforms ---

// LocalTransform maps local coordinates into the parent's space.
func (n *Node) LocalTransform() render.GeoM {
	m := render.NewGeoM()
	m.Scale(n.ScaleX, n.ScaleY)
	m.Translate(n.X, n.Y)
	return m
}

// WorldTransform maps local coordinates into screen space.
func (n *Node) WorldTransform() render.GeoM {
	m := n.LocalTransform()
	for p := n.parent; p != nil; p = p.parent {
		m.Concat(p.LocalTransform())
	}
	return m
}

// ToLocal converts a screen-space point into the node's local space.
func (n *Node) ToLocal(global geom.Point) geom.Point {
	inv, ok := n.WorldTransform().Invert()
	if !ok {
		return geom.Point{}
	}
	x, y := inv.Apply(global.X, global.Y)
	return geom.Pt(x, y)
}

// ToGlobal converts a local point into screen space.
func (n *Node) ToGlobal(local geom.Point) geom.Point {
	x, y := n.WorldTransform().Apply(local.X, local.Y)
	return geom.Pt(x, y)
}

// WorldVisible reports whether the node and all its ancestors are visible.
func (n *Node) WorldVisible() bool {
	for p := n; p != nil; p = p.parent {
		if !p.Visible {
			return false
		}
	}
	return true
}
