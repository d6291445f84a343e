package scenedef

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"chosenoffset.com/adventure/internal/entity/actor"
	"chosenoffset.com/adventure/internal/interaction"
	"chosenoffset.com/adventure/internal/inventory"
	"chosenoffset.com/adventure/internal/render"
	"chosenoffset.com/adventure/internal/render/scene"
	"chosenoffset.com/adventure/internal/simulation"
	"chosenoffset.com/adventure/internal/ui/dialog"
	"chosenoffset.com/adventure/internal/ui/verbmenu"
	"chosenoffset.com/adventure/internal/viewport"
	"chosenoffset.com/adventure/internal/world/atlas"
	"chosenoffset.com/adventure/internal/world/item"
	"chosenoffset.com/adventure/internal/world/room"
)

// BuildOptions supplies what Build needs besides the definition.
type BuildOptions struct {
	// BaseDir resolves relative asset paths
	BaseDir  string
	Loader   render.ResourceLoader
	Renderer render.Renderer
	Config   *simulation.Config
}

// World is a fully wired, playable scene.
type World struct {
	Config *simulation.Config
	Scene  *scene.Scene

	// WorldLayer is scaled by the projector; UILayer stays in screen pixels.
	WorldLayer *scene.Node
	UILayer    *scene.Node
	Projector  *viewport.Projector

	Items       *item.Registry
	Room        *room.Room
	Player      *actor.Actor
	Dialog      *dialog.Queue
	Interaction *interaction.Context
	Inventory   *inventory.Inventory
	Verbs       *verbmenu.Menu
	Effects     *interaction.Env

	Intro string
}

type builder struct {
	def    *Definition
	opts   BuildOptions
	cfg    *simulation.Config
	images map[string]render.Image
}

// Build loads every asset the definition names and wires the scene together.
// Any missing asset or inconsistent definition aborts the build.
func Build(def *Definition, opts BuildOptions) (*World, error) {
	if opts.Loader == nil {
		return nil, fmt.Errorf("scene %s: no resource loader", def.Name)
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = simulation.DefaultConfig()
	}
	b := &builder{def: def, opts: opts, cfg: cfg, images: make(map[string]render.Image)}

	w := &World{
		Config:     cfg,
		Scene:      scene.New(opts.Renderer),
		WorldLayer: scene.NewContainer("world"),
		UILayer:    scene.NewContainer("ui"),
		Intro:      def.Player.Intro,
	}
	w.Scene.Root().AddChild(w.WorldLayer)
	w.Scene.Root().AddChild(w.UILayer)

	w.Projector = viewport.New(viewport.Config{
		VirtualWidth:   cfg.Display.VirtualWidth,
		VirtualHeight:  cfg.Display.VirtualHeight,
		IntegerScaling: cfg.Display.IntegerScaling,
	})
	w.Projector.Bind(w.WorldLayer, w.UILayer)

	textColor, err := simulation.ParseHexColor(cfg.Dialog.Color)
	if err != nil {
		return nil, fmt.Errorf("dialog color: %w", err)
	}
	w.Dialog = dialog.NewQueue(dialog.Options{
		Layer:          w.UILayer,
		Projector:      w.Projector,
		Duration:       cfg.LineDurationSeconds(),
		VerticalOffset: cfg.Dialog.VerticalOffset,
		StackOffset:    cfg.Dialog.StackOffset,
		TextScale:      cfg.Dialog.FontScale,
		Color:          textColor,
	})

	initialVerb, err := interaction.ParseVerb(cfg.Verbs.Initial)
	if err != nil {
		return nil, fmt.Errorf("initial verb: %w", err)
	}
	w.Items = item.NewRegistry()
	w.Interaction = interaction.NewContext(w.Items, w.Dialog, initialVerb)

	for _, itemDef := range def.Items {
		it, err := b.buildItem(itemDef)
		if err != nil {
			return nil, err
		}
		w.Items.Add(it.ID(), it)
	}

	if w.Room, err = b.buildRoom(w.Items, w.Projector); err != nil {
		return nil, err
	}
	w.Room.Attach(w.WorldLayer)

	if w.Player, err = b.buildPlayer(); err != nil {
		return nil, err
	}
	w.Player.BindRoom(w.Room)
	w.WorldLayer.AddChild(w.Player.View())

	w.Inventory = inventory.New(w.Interaction, inventory.Options{
		Origin:      cfg.Inventory.Origin,
		SlotX:       cfg.Inventory.SlotX,
		SlotSpacing: cfg.Inventory.SlotSpacing,
		SlotY:       cfg.Inventory.SlotY,
		IconScale:   cfg.Inventory.IconScale,
		PanelWidth:  cfg.Inventory.PanelWidth,
		PanelHeight: cfg.Inventory.PanelHeight,
	})
	w.Inventory.Attach(w.UILayer)

	if w.Verbs, err = b.buildVerbMenu(w.Interaction); err != nil {
		return nil, err
	}
	w.Verbs.Attach(w.UILayer)

	w.Effects = &interaction.Env{
		Context:   w.Interaction,
		Speaker:   w.Player,
		Room:      w.Room,
		Inventory: w.Inventory,
	}
	for _, itemDef := range def.Items {
		it, _ := w.Items.Get(itemDef.ID)
		w.Effects.Bind(it, itemDef.Behaviour)
	}

	w.Interaction.BindObjectClicks(w.Player)
	bindGroundClicks(w.WorldLayer, w.Player, cfg)

	log.Printf("Built scene %s: %d items, room %s in state %s",
		def.Name, w.Items.Len(), w.Room.ID(), w.Room.CurrentStateID())
	return w, nil
}

// bindGroundClicks sends the player to any clicked point of the world frame
// that no item handled first.
func bindGroundClicks(world *scene.Node, player *actor.Actor, cfg *simulation.Config) {
	world.Interactive = true
	world.HitArea = &scene.Rect{W: cfg.Display.VirtualWidth, H: cfg.Display.VirtualHeight}
	world.OnPointerDown = func(e *scene.PointerEvent) {
		player.SetTarget(e.LocalTo(world))
	}
}

func (b *builder) buildItem(d ItemDef) (*item.Item, error) {
	states := make([]item.State, 0, len(d.States))
	for _, s := range d.States {
		stage, err := b.image(s.Image)
		if err != nil {
			return nil, fmt.Errorf("item %s state %s: %w", d.ID, s.ID, err)
		}
		inv := stage
		if s.InventoryImage != "" {
			if inv, err = b.image(s.InventoryImage); err != nil {
				return nil, fmt.Errorf("item %s state %s: %w", d.ID, s.ID, err)
			}
		}
		states = append(states, item.State{ID: s.ID, Stage: stage, Inventory: inv})
	}

	interactionPoint := d.Position
	if d.InteractionPoint != nil {
		interactionPoint = *d.InteractionPoint
	}

	it, err := item.New(item.Options{
		ID:               d.ID,
		Position:         d.Position,
		InteractionPoint: interactionPoint,
		States:           states,
		StartState:       d.startState(),
		StageScale:       d.Scale,
	})
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", d.ID, err)
	}
	return it, nil
}

func (b *builder) buildRoom(items *item.Registry, fitter room.Fitter) (*room.Room, error) {
	d := b.def.Room
	states := make([]*room.State, 0, len(d.States))
	for _, s := range d.States {
		bg, err := b.image(s.Background)
		if err != nil {
			return nil, fmt.Errorf("room %s state %s: %w", d.ID, s.ID, err)
		}
		region, err := b.region(s)
		if err != nil {
			return nil, fmt.Errorf("room %s state %s: %w", d.ID, s.ID, err)
		}
		states = append(states, &room.State{
			ID:         s.ID,
			Background: bg,
			Walkable:   region,
			ItemIDs:    append([]string(nil), s.Items...),
		})
	}

	r, err := room.New(room.Options{
		ID:         d.ID,
		Registry:   items,
		Fitter:     fitter,
		States:     states,
		StartState: d.startState(),
	})
	if err != nil {
		return nil, fmt.Errorf("room %s: %w", d.ID, err)
	}
	return r, nil
}

func (b *builder) region(s RoomStateDef) (room.Region, error) {
	switch {
	case len(s.WalkPolygon) > 0:
		return room.NewPolygonRegion(s.WalkPolygon...), nil

	case s.WalkMask != "":
		img, err := b.opts.Loader.LoadImageData(b.resolve(s.WalkMask))
		if err != nil {
			return nil, fmt.Errorf("failed to load walk mask %s: %w", s.WalkMask, err)
		}
		var marker color.Color = color.White
		if s.MaskColor != "" {
			c, err := simulation.ParseHexColor(s.MaskColor)
			if err != nil {
				return nil, fmt.Errorf("mask color: %w", err)
			}
			marker = c
		}
		return room.NewMaskRegion(img, marker, s.MaskScale), nil
	}

	log.Printf("Warning: room state %s has no walkable area, the player cannot move", s.ID)
	return nil, nil
}

func (b *builder) buildPlayer() (*actor.Actor, error) {
	d := b.def.Player
	sheet, err := atlas.LoadSheet(b.opts.Loader, b.resolve(d.Sheet))
	if err != nil {
		return nil, fmt.Errorf("player %s: %w", d.ID, err)
	}
	walk, err := sheet.Animation(b.cfg.Actor.WalkAnimation)
	if err != nil {
		return nil, fmt.Errorf("player %s: %w", d.ID, err)
	}
	idle, err := sheet.Animation(b.cfg.Actor.IdleAnimation)
	if err != nil {
		return nil, fmt.Errorf("player %s: %w", d.ID, err)
	}

	return actor.New(actor.Options{
		ID:             d.ID,
		WalkFrames:     walk,
		IdleFrames:     idle,
		Start:          d.Start,
		Speed:          b.cfg.Actor.Speed,
		StopEpsilon:    b.cfg.Actor.StopEpsilon,
		AnimationSpeed: b.cfg.Actor.AnimationSpeed,
	})
}

func (b *builder) buildVerbMenu(ctx *interaction.Context) (*verbmenu.Menu, error) {
	icons := make(map[interaction.Verb]render.Image, len(b.def.Verbs))
	for name, path := range b.def.Verbs {
		img, err := b.image(path)
		if err != nil {
			return nil, fmt.Errorf("verb %s: %w", name, err)
		}
		icons[interaction.Verb(name)] = img
	}
	return verbmenu.New(ctx, verbmenu.Options{
		Icons:         icons,
		Origin:        b.cfg.Verbs.Origin,
		Spacing:       b.cfg.Verbs.Spacing,
		IconScale:     b.cfg.Verbs.IconScale,
		SelectedAlpha: b.cfg.Verbs.SelectedAlpha,
		DimmedAlpha:   b.cfg.Verbs.DimmedAlpha,
	})
}

// image loads an image once per path.
func (b *builder) image(path string) (render.Image, error) {
	full := b.resolve(path)
	if img, ok := b.images[full]; ok {
		return img, nil
	}
	img, err := b.opts.Loader.LoadImage(full)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}
	b.images[full] = img
	return img, nil
}

func (b *builder) resolve(path string) string {
	if filepath.IsAbs(path) || b.opts.BaseDir == "" {
		return path
	}
	return filepath.Join(b.opts.BaseDir, path)
}
