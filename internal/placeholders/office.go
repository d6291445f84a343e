package placeholders

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"chosenoffset.com/adventure/internal/world/atlas"
)

// HeroSheet describes the generated hero strip: one idle and two walk frames.
func HeroSheet() *atlas.SheetConfig {
	return &atlas.SheetConfig{
		Name:        "hero",
		ImagePath:   "hero.png",
		FrameWidth:  FrameWidth,
		FrameHeight: FrameHeight,
		Frames: []atlas.FrameDefinition{
			{Name: "idle_0", X: 0, Y: 0},
			{Name: "walk_0", X: 1, Y: 0},
			{Name: "walk_1", X: 2, Y: 0},
		},
		Animations: map[string][]string{
			"idle": {"idle_0"},
			"walk": {"walk_0", "walk_1"},
		},
	}
}

// GenerateOfficeBackground draws the office, dark or lit.
func GenerateOfficeBackground(lit bool) *image.RGBA {
	wall, floor := ColorPalette.WallDark, ColorPalette.FloorDark
	if lit {
		wall, floor = ColorPalette.WallLit, ColorPalette.FloorLit
	}
	img := CreateSolid(BackgroundWidth, BackgroundHeight, wall)
	FillRect(img, image.Rect(0, FloorTop, BackgroundWidth, BackgroundHeight), floor)

	// Skirting board
	FillRect(img, image.Rect(0, FloorTop-4, BackgroundWidth, FloorTop), Darken(wall, 0.6))

	window := ColorPalette.Window
	if !lit {
		window = Darken(window, 0.5)
	}
	FillRect(img, image.Rect(160, 30, 280, 110), ColorPalette.Border)
	FillRect(img, image.Rect(164, 34, 276, 106), window)

	desk := ColorPalette.Desk
	if !lit {
		desk = Darken(desk, 0.3)
	}
	FillRect(img, image.Rect(40, 150, 180, 170), desk)
	FillRect(img, image.Rect(48, 170, 58, 210), Darken(desk, 0.8))
	FillRect(img, image.Rect(162, 170, 172, 210), Darken(desk, 0.8))
	return img
}

// GenerateWalkMask marks the floor as walkable. The mask matches the
// background resolution, two pixels per world unit.
func GenerateWalkMask() *image.RGBA {
	img := CreateSolid(BackgroundWidth, BackgroundHeight, color.Black)
	FillRect(img, image.Rect(0, FloorTop, BackgroundWidth, BackgroundHeight), MaskColor)
	return img
}

// GenerateHeroStrip draws the idle and walk frames.
func GenerateHeroStrip() *image.RGBA {
	frames := make([]*image.RGBA, 3)
	for i := range frames {
		f := image.NewRGBA(image.Rect(0, 0, FrameWidth, FrameHeight))
		head := CreateCircle(8, ColorPalette.Skin, Darken(ColorPalette.Skin, 0.7))
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				if _, _, _, a := head.At(x, y).RGBA(); a > 0 {
					f.Set(4+x, y, head.At(x, y))
				}
			}
		}
		FillRect(f, image.Rect(3, 8, 13, 20), ColorPalette.Shirt)

		// Legs apart on the first walk frame
		switch i {
		case 1:
			FillRect(f, image.Rect(3, 20, 7, 32), ColorPalette.Legs)
			FillRect(f, image.Rect(9, 20, 13, 32), ColorPalette.Legs)
		default:
			FillRect(f, image.Rect(5, 20, 11, 32), ColorPalette.Legs)
		}
		frames[i] = f
	}
	return CreateStrip(frames, FrameWidth, FrameHeight)
}

// GenerateSwitch draws a wall switch with its state lamp.
func GenerateSwitch(on bool) *image.RGBA {
	img := CreateBordered(16, 24, ColorPalette.SwitchBody, ColorPalette.Border, 1)
	lamp := ColorPalette.SwitchOff
	if on {
		lamp = ColorPalette.SwitchOn
	}
	FillRect(img, image.Rect(5, 4, 11, 10), lamp)
	if on {
		FillRect(img, image.Rect(6, 12, 10, 16), ColorPalette.Border)
	} else {
		FillRect(img, image.Rect(6, 16, 10, 20), ColorPalette.Border)
	}
	return img
}

// GenerateKey draws a key lying on the floor.
func GenerateKey() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 16, 8))
	ring := CreateCircle(8, color.RGBA{}, ColorPalette.Key)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, ring.At(x, y))
		}
	}
	FillRect(img, image.Rect(7, 3, 16, 5), ColorPalette.Key)
	FillRect(img, image.Rect(12, 5, 14, 7), ColorPalette.Key)
	return img
}

// GenerateKeyIcon draws the inventory icon of the key.
func GenerateKeyIcon() *image.RGBA {
	img := CreateBordered(16, 16, Darken(ColorPalette.Border, 0.5), ColorPalette.Border, 1)
	FillRect(img, image.Rect(3, 6, 7, 10), ColorPalette.Key)
	FillRect(img, image.Rect(7, 7, 13, 9), ColorPalette.Key)
	return img
}

// GeneratePlant draws a potted plant.
func GeneratePlant() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 16, 32))
	leaves := CreateCircle(16, ColorPalette.Plant, Darken(ColorPalette.Plant, 0.6))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, leaves.At(x, y))
		}
	}
	FillRect(img, image.Rect(7, 14, 9, 20), Darken(ColorPalette.Plant, 0.6))
	FillRect(img, image.Rect(3, 20, 13, 32), ColorPalette.Pot)
	return img
}

// GenerateVerbIcon draws the icon of a verb: an eye, a hand or a grabber.
func GenerateVerbIcon(verb string) *image.RGBA {
	img := CreateBordered(IconSize, IconSize, Darken(ColorPalette.Icon, 0.3), ColorPalette.Border, 1)
	switch verb {
	case "look":
		FillRect(img, image.Rect(2, 3, 6, 5), ColorPalette.Icon)
	case "use":
		FillRect(img, image.Rect(3, 2, 5, 6), ColorPalette.Icon)
	case "pickup":
		FillRect(img, image.Rect(2, 2, 6, 4), ColorPalette.Icon)
		FillRect(img, image.Rect(3, 4, 5, 6), ColorPalette.Icon)
	}
	return img
}

// GenerateAndSave writes every asset of the demo scene into dir.
func GenerateAndSave(dir string) error {
	fmt.Println("Generating placeholder art...")

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create assets directory: %w", err)
	}

	images := []struct {
		name string
		img  image.Image
	}{
		{"office_off.png", GenerateOfficeBackground(false)},
		{"office_on.png", GenerateOfficeBackground(true)},
		{"office_mask.png", GenerateWalkMask()},
		{"hero.png", GenerateHeroStrip()},
		{"switch_off.png", GenerateSwitch(false)},
		{"switch_on.png", GenerateSwitch(true)},
		{"key.png", GenerateKey()},
		{"key_icon.png", GenerateKeyIcon()},
		{"plant.png", GeneratePlant()},
		{"look.png", GenerateVerbIcon("look")},
		{"use.png", GenerateVerbIcon("use")},
		{"pickup.png", GenerateVerbIcon("pickup")},
	}
	for _, entry := range images {
		path := filepath.Join(dir, entry.name)
		if err := SavePNG(entry.img, path); err != nil {
			return fmt.Errorf("failed to save %s: %w", entry.name, err)
		}
		b := entry.img.Bounds()
		fmt.Printf("✓ Generated %s (%dx%d pixels)\n", path, b.Dx(), b.Dy())
	}

	data, err := json.MarshalIndent(HeroSheet(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode hero sheet: %w", err)
	}
	sheetPath := filepath.Join(dir, "hero.json")
	if err := os.WriteFile(sheetPath, data, 0644); err != nil {
		return fmt.Errorf("failed to save hero.json: %w", err)
	}
	fmt.Printf("✓ Generated %s\n", sheetPath)

	fmt.Println("Placeholder art generated successfully!")
	return nil
}
