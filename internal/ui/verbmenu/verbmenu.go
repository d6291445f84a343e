// Package verbmenu draws the row of verb icons. Clicking an icon selects the
// verb; the selected icon is drawn at full opacity and the others dimmed.
package verbmenu

import (
	"fmt"

	"chosenoffset.com/adventure/internal/core/geom"
	"chosenoffset.com/adventure/internal/interaction"
	"chosenoffset.com/adventure/internal/render"
	"chosenoffset.com/adventure/internal/render/scene"
)

// Options lays out the menu in screen pixels.
type Options struct {
	Icons         map[interaction.Verb]render.Image
	Origin        geom.Point
	Spacing       float64
	IconScale     float64
	SelectedAlpha float64
	DimmedAlpha   float64
}

// Menu is the verb selector.
type Menu struct {
	ctx   *interaction.Context
	opts  Options
	root  *scene.Node
	icons map[interaction.Verb]*scene.Node
}

// New builds the menu. Every verb needs an icon.
func New(ctx *interaction.Context, opts Options) (*Menu, error) {
	if opts.IconScale <= 0 {
		opts.IconScale = 1
	}
	if opts.SelectedAlpha <= 0 {
		opts.SelectedAlpha = 1
	}
	if opts.DimmedAlpha <= 0 {
		opts.DimmedAlpha = 0.25
	}

	m := &Menu{
		ctx:   ctx,
		opts:  opts,
		root:  scene.NewContainer("verbs"),
		icons: make(map[interaction.Verb]*scene.Node, len(interaction.Verbs)),
	}

	for i, verb := range interaction.Verbs {
		tex, ok := opts.Icons[verb]
		if !ok || tex == nil {
			return nil, fmt.Errorf("missing icon for verb %s", verb)
		}
		icon := scene.NewSprite("verb_"+string(verb), tex)
		icon.ID = string(verb)
		icon.SetPosition(opts.Origin.X+float64(i)*opts.Spacing, opts.Origin.Y)
		icon.SetScale(opts.IconScale)
		icon.Interactive = true
		v := verb
		icon.OnPointerDown = func(e *scene.PointerEvent) {
			e.StopPropagation()
			m.Select(v)
		}
		m.root.AddChild(icon)
		m.icons[verb] = icon
	}

	ctx.OnVerbChange(func(interaction.Verb) { m.refresh() })
	m.refresh()
	return m, nil
}

// Root returns the menu container.
func (m *Menu) Root() *scene.Node {
	return m.root
}

// Attach adds the menu to a screen-space layer.
func (m *Menu) Attach(ui *scene.Node) {
	ui.AddChild(m.root)
}

// Icon returns the node for a verb.
func (m *Menu) Icon(v interaction.Verb) *scene.Node {
	return m.icons[v]
}

// Select makes v the current verb.
func (m *Menu) Select(v interaction.Verb) {
	m.ctx.SetVerb(v)
	m.refresh()
}

func (m *Menu) refresh() {
	current := m.ctx.Verb()
	for verb, icon := range m.icons {
		if verb == current {
			icon.Alpha = m.opts.SelectedAlpha
		} else {
			icon.Alpha = m.opts.DimmedAlpha
		}
	}
}
