// Package inventory holds the items the player has picked up. Each item is
// shown as an icon in a fixed screen-space bar; clicking an icon applies the
// currently selected verb to the item.
package inventory

import (
	"fmt"
	"image/color"

	"github.com/zyedidia/generic/mapset"

	"chosenoffset.com/adventure/internal/core/geom"
	"chosenoffset.com/adventure/internal/interaction"
	"chosenoffset.com/adventure/internal/render/scene"
	"chosenoffset.com/adventure/internal/world/item"
)

// Options lays out the inventory bar in screen pixels.
type Options struct {
	// Origin is the top-left of the bar.
	Origin geom.Point
	// SlotX is the x of the first icon, SlotSpacing the distance between icons.
	SlotX       float64
	SlotSpacing float64
	SlotY       float64
	IconScale   float64

	// Optional backing panel. Zero size draws none.
	PanelWidth  float64
	PanelHeight float64
	PanelColor  color.Color
}

// DefaultOptions returns the standard bar layout.
func DefaultOptions() Options {
	return Options{
		Origin:      geom.Pt(40, 0),
		SlotX:       4,
		SlotSpacing: 14,
		SlotY:       2,
		IconScale:   0.5,
	}
}

// Inventory is the set of picked up items, in pickup order.
type Inventory struct {
	// OnChange is called after an item was added
	OnChange func()

	ctx   *interaction.Context
	opts  Options
	panel *scene.Node

	items []*item.Item
	held  mapset.Set[string]
}

// New creates an empty inventory whose icons dispatch through ctx.
func New(ctx *interaction.Context, opts Options) *Inventory {
	panel := scene.NewContainer("inventory")
	panel.SetPosition(opts.Origin.X, opts.Origin.Y)
	if opts.PanelWidth > 0 && opts.PanelHeight > 0 {
		clr := opts.PanelColor
		if clr == nil {
			clr = color.RGBA{A: 0x80}
		}
		panel.AddChild(scene.NewRect("inventory_bg", opts.PanelWidth, opts.PanelHeight, clr))
	}
	if opts.IconScale <= 0 {
		opts.IconScale = 1
	}

	return &Inventory{
		ctx:   ctx,
		opts:  opts,
		panel: panel,
		held:  mapset.New[string](),
	}
}

// Panel returns the container holding the icons.
func (inv *Inventory) Panel() *scene.Node {
	return inv.panel
}

// Attach adds the panel to a screen-space layer.
func (inv *Inventory) Attach(ui *scene.Node) {
	ui.AddChild(inv.panel)
}

// Pick moves an item from the room into the inventory. Its scene sprite is
// hidden and detached, and its icon goes into the next free slot. Picking an
// item that is already held does nothing and returns false.
func (inv *Inventory) Pick(it *item.Item) bool {
	if inv.held.Has(it.ID()) {
		return false
	}
	slot := len(inv.items)

	stage := it.StageView()
	stage.Visible = false
	stage.Interactive = false
	stage.RemoveFromParent()

	icon := it.InventoryView()
	icon.SetPosition(inv.opts.SlotX+float64(slot)*inv.opts.SlotSpacing, inv.opts.SlotY)
	icon.SetScale(inv.opts.IconScale)
	icon.Visible = true
	icon.Interactive = true
	icon.OnPointerDown = func(e *scene.PointerEvent) {
		e.StopPropagation()
		if inv.ctx != nil {
			inv.ctx.Run(it)
		}
	}
	inv.panel.AddChild(icon)

	inv.items = append(inv.items, it)
	inv.held.Put(it.ID())

	if inv.OnChange != nil {
		inv.OnChange()
	}
	return true
}

// HasItem reports whether the item is held.
func (inv *Inventory) HasItem(id string) bool {
	return inv.held.Has(id)
}

// Count returns the number of held items.
func (inv *Inventory) Count() int {
	return len(inv.items)
}

// IsEmpty returns true if nothing has been picked up
func (inv *Inventory) IsEmpty() bool {
	return len(inv.items) == 0
}

// Items returns the held items in slot order.
func (inv *Inventory) Items() []*item.Item {
	return append([]*item.Item(nil), inv.items...)
}

// Debug returns a string representation of the inventory
func (inv *Inventory) Debug() string {
	ids := make([]string, len(inv.items))
	for i, it := range inv.items {
		ids[i] = it.ID()
	}
	return fmt.Sprintf("Inventory{%d items: %v}", len(ids), ids)
}
