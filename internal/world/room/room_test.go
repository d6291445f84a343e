package room

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"chosenoffset.com/adventure/internal/core/geom"
	"chosenoffset.com/adventure/internal/render/rendertest"
	"chosenoffset.com/adventure/internal/render/scene"
	"chosenoffset.com/adventure/internal/world/item"
)

type countingFitter struct {
	calls int
}

func (f *countingFitter) FitContain(sprite *scene.Node) {
	f.calls++
}

func newTestItem(t *testing.T, id string) *item.Item {
	t.Helper()
	it, err := item.New(item.Options{
		ID: id,
		States: []item.State{
			{ID: "default", Stage: rendertest.NewImage(id, 8, 8), Inventory: rendertest.NewImage(id+"_icon", 4, 4)},
		},
		StartState: "default",
	})
	if err != nil {
		t.Fatalf("Failed to create item %s: %v", id, err)
	}
	return it
}

// newSwitchRoom builds a room with a dark "off" state and a lit "on" state
// where the lamp is only present when the light is on.
func newSwitchRoom(t *testing.T) (*Room, *item.Registry, *countingFitter) {
	t.Helper()
	reg := item.NewRegistry()
	for _, id := range []string{"switch", "lamp", "shadow"} {
		reg.Add(id, newTestItem(t, id))
	}

	fitter := &countingFitter{}
	r, err := New(Options{
		ID:       "office",
		Registry: reg,
		Fitter:   fitter,
		States: []*State{
			{
				ID:         "off",
				Background: rendertest.NewImage("office_dark", 240, 135),
				Walkable:   NewPolygonRegion(geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(100, 100), geom.Pt(0, 100)),
				ItemIDs:    []string{"switch", "shadow"},
			},
			{
				ID:         "on",
				Background: rendertest.NewImage("office_lit", 240, 135),
				Walkable:   NewPolygonRegion(geom.Pt(0, 0), geom.Pt(240, 0), geom.Pt(240, 135), geom.Pt(0, 135)),
				ItemIDs:    []string{"switch", "lamp"},
			},
		},
		StartState: "off",
	})
	if err != nil {
		t.Fatalf("Failed to create room: %v", err)
	}
	return r, reg, fitter
}

func TestNewRequiresStates(t *testing.T) {
	_, err := New(Options{ID: "void", StartState: "off"})
	if !errors.Is(err, ErrNoStates) {
		t.Errorf("Expected ErrNoStates, got %v", err)
	}
}

func TestNewRequiresKnownStartState(t *testing.T) {
	_, err := New(Options{
		ID:         "office",
		States:     []*State{{ID: "off"}},
		StartState: "on",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestNewShowsStartState(t *testing.T) {
	r, reg, fitter := newSwitchRoom(t)

	if r.CurrentStateID() != "off" {
		t.Errorf("Expected start state 'off', got '%s'", r.CurrentStateID())
	}
	if fitter.calls != 1 {
		t.Errorf("Expected background fitted once, got %d", fitter.calls)
	}
	if !r.IsVisible("switch") || !r.IsVisible("shadow") || r.IsVisible("lamp") {
		t.Errorf("Unexpected visible set %v", r.VisibleItems())
	}
	shadow, _ := reg.Get("shadow")
	if shadow.StageView().Parent() == nil {
		t.Error("Expected shadow to be attached to the room")
	}
}

func TestSetCurrentStateSwapsEverything(t *testing.T) {
	r, reg, fitter := newSwitchRoom(t)
	probe := geom.Pt(200, 120)

	if r.IsPassable(probe) {
		t.Fatal("Expected probe to be blocked while the light is off")
	}

	if err := r.SetCurrentState("on"); err != nil {
		t.Fatalf("SetCurrentState failed: %v", err)
	}

	if name := r.Background().Texture().(*rendertest.Image).Name; name != "office_lit" {
		t.Errorf("Expected background office_lit, got %s", name)
	}
	if !r.IsPassable(probe) {
		t.Error("Expected probe to be walkable once the light is on")
	}
	if r.IsVisible("shadow") {
		t.Error("Expected shadow to leave the visible set")
	}
	if !r.IsVisible("lamp") || !r.IsVisible("switch") {
		t.Errorf("Expected switch and lamp visible, got %v", r.VisibleItems())
	}
	shadow, _ := reg.Get("shadow")
	if shadow.StageView().Parent() != nil {
		t.Error("Expected shadow to be detached from the scene")
	}
	lamp, _ := reg.Get("lamp")
	if lamp.StageView().Parent() == nil {
		t.Error("Expected lamp to be attached to the scene")
	}
	if fitter.calls != 2 {
		t.Errorf("Expected background refitted on switch, got %d fits", fitter.calls)
	}
}

func TestSetCurrentStateIdempotent(t *testing.T) {
	r, _, fitter := newSwitchRoom(t)
	changes := 0
	r.OnStateChange = func(from, to string) { changes++ }

	for i := 0; i < 2; i++ {
		if err := r.SetCurrentState("on"); err != nil {
			t.Fatalf("SetCurrentState failed: %v", err)
		}
	}
	if changes != 1 {
		t.Errorf("Expected 1 state change, got %d", changes)
	}
	if fitter.calls != 2 {
		t.Errorf("Expected no refit on repeated switch, got %d fits", fitter.calls)
	}
	if got := len(r.VisibleItems()); got != 2 {
		t.Errorf("Expected 2 visible items, got %d", got)
	}
}

func TestSetCurrentStateUnknown(t *testing.T) {
	r, _, _ := newSwitchRoom(t)
	err := r.SetCurrentState("flooded")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if r.CurrentStateID() != "off" || !r.IsVisible("shadow") {
		t.Error("Expected room unchanged after failed switch")
	}
}

func TestUnknownItemIDsAreSkipped(t *testing.T) {
	reg := item.NewRegistry()
	reg.Add("switch", newTestItem(t, "switch"))

	r, err := New(Options{
		ID:         "hall",
		Registry:   reg,
		States:     []*State{{ID: "default", ItemIDs: []string{"ghost", "switch"}}},
		StartState: "default",
	})
	if err != nil {
		t.Fatalf("Failed to create room: %v", err)
	}
	visible := r.VisibleItems()
	if len(visible) != 1 || visible[0] != "switch" {
		t.Errorf("Expected only switch visible, got %v", visible)
	}
}

func TestIsPassableWithoutRegion(t *testing.T) {
	r, err := New(Options{ID: "hall", States: []*State{{ID: "default"}}, StartState: "default"})
	if err != nil {
		t.Fatalf("Failed to create room: %v", err)
	}
	if r.IsPassable(geom.Pt(0, 0)) {
		t.Error("Expected a state without a walk region to block everything")
	}
}

func TestAddStateAndItemID(t *testing.T) {
	r, reg, _ := newSwitchRoom(t)
	reg.Add("rug", newTestItem(t, "rug"))

	broken := &State{ID: "broken", Walkable: NewPolygonRegion()}
	broken.AddItemID("rug")
	r.AddState(broken)

	if err := r.SetCurrentState("broken"); err != nil {
		t.Fatalf("SetCurrentState failed: %v", err)
	}
	if !r.IsVisible("rug") || r.IsVisible("switch") {
		t.Errorf("Unexpected visible set %v", r.VisibleItems())
	}
	if r.IsPassable(geom.Pt(1, 1)) {
		t.Error("Expected degenerate polygon to block everything")
	}
	ids := r.StateIDs()
	if len(ids) != 3 || ids[2] != "broken" {
		t.Errorf("Expected broken appended to state order, got %v", ids)
	}
}

func TestPolygonRegionBoundaryInclusive(t *testing.T) {
	region := NewPolygonRegion(geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(0, 10))

	tests := []struct {
		p    geom.Point
		want bool
	}{
		{geom.Pt(5, 5), true},
		{geom.Pt(0, 5), true},
		{geom.Pt(10, 10), true},
		{geom.Pt(10.01, 5), false},
		{geom.Pt(-1, -1), false},
	}
	for _, tt := range tests {
		if got := region.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, expected %v", tt.p, got, tt.want)
		}
	}
}

func TestMaskRegion(t *testing.T) {
	walk := color.NRGBA{R: 255, G: 0, B: 255, A: 255}
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 2; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, walk)
		}
	}
	img.Set(1, 3, color.Black)

	region := NewMaskRegion(img, walk, 0)

	tests := []struct {
		name string
		p    geom.Point
		want bool
	}{
		{"marker pixel", geom.Pt(0.5, 2.5), true},
		{"other color", geom.Pt(1.2, 3.9), false},
		{"empty pixel", geom.Pt(2, 0), false},
		{"left of image", geom.Pt(-0.5, 3), false},
		{"below image", geom.Pt(2, 4), false},
	}
	for _, tt := range tests {
		if got := region.Contains(tt.p); got != tt.want {
			t.Errorf("%s: Contains(%v) = %v, expected %v", tt.name, tt.p, got, tt.want)
		}
	}
}

func TestMaskRegionScale(t *testing.T) {
	walk := color.White
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	img.Set(6, 6, walk)

	region := NewMaskRegion(img, walk, 2)
	if !region.Contains(geom.Pt(3.2, 3.4)) {
		t.Error("Expected world (3.2, 3.4) to map to the marked pixel (6, 6)")
	}
	if region.Contains(geom.Pt(2.9, 3.4)) {
		t.Error("Expected world (2.9, 3.4) to map to an unmarked pixel")
	}
}
