// Package atlas loads sprite sheets: one image cut into equal frames, with
// named frames and named animations described by a JSON file.
package atlas

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"chosenoffset.com/adventure/internal/render"
)

// ErrFrameNotFound is returned for an unknown frame or animation name.
var ErrFrameNotFound = errors.New("frame not found")

// FrameDefinition names a single frame within a sheet
type FrameDefinition struct {
	Name string `json:"name"` // Semantic name (e.g., "walk_0")
	X    int    `json:"x"`    // Column in the sheet (in frames)
	Y    int    `json:"y"`    // Row in the sheet (in frames)
}

// SheetConfig defines the JSON configuration for a sprite sheet
type SheetConfig struct {
	Name        string              `json:"name"`         // Sheet name
	ImagePath   string              `json:"image_path"`   // Path to the image, relative to the config file
	FrameWidth  int                 `json:"frame_width"`  // Width of each frame in pixels
	FrameHeight int                 `json:"frame_height"` // Height of each frame in pixels
	Frames      []FrameDefinition   `json:"frames"`       // Named frames
	Animations  map[string][]string `json:"animations"`   // Animation name -> frame names, in order
}

// Sheet is a loaded sprite sheet
type Sheet struct {
	Config       *SheetConfig
	Image        render.Image
	framesByName map[string]*FrameDefinition
}

// ParseSheetConfig parses and validates a sheet config
func ParseSheetConfig(data []byte) (*SheetConfig, error) {
	var config SheetConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse sheet config: %w", err)
	}

	if config.FrameWidth <= 0 || config.FrameHeight <= 0 {
		return nil, fmt.Errorf("invalid frame dimensions: %dx%d", config.FrameWidth, config.FrameHeight)
	}
	if config.ImagePath == "" {
		return nil, fmt.Errorf("image_path is required in sheet config")
	}

	names := make(map[string]bool, len(config.Frames))
	for _, f := range config.Frames {
		names[f.Name] = true
	}
	for anim, frames := range config.Animations {
		if len(frames) == 0 {
			return nil, fmt.Errorf("animation %s has no frames", anim)
		}
		for _, f := range frames {
			if !names[f] {
				return nil, fmt.Errorf("animation %s: %s: %w", anim, f, ErrFrameNotFound)
			}
		}
	}

	return &config, nil
}

// LoadSheet loads a sprite sheet from a JSON configuration file
func LoadSheet(loader render.ResourceLoader, configPath string) (*Sheet, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet config %s: %w", configPath, err)
	}

	config, err := ParseSheetConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	imagePath := config.ImagePath
	if !filepath.IsAbs(imagePath) {
		imagePath = filepath.Join(filepath.Dir(configPath), imagePath)
	}
	img, err := loader.LoadImage(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load sheet image %s: %w", imagePath, err)
	}

	return NewSheet(config, img), nil
}

// NewSheet wraps an already loaded image
func NewSheet(config *SheetConfig, img render.Image) *Sheet {
	framesByName := make(map[string]*FrameDefinition)
	for i := range config.Frames {
		f := &config.Frames[i]
		if f.Name != "" {
			framesByName[f.Name] = f
		}
	}
	return &Sheet{
		Config:       config,
		Image:        img,
		framesByName: framesByName,
	}
}

// Frame returns the sub-image for a named frame
func (s *Sheet) Frame(name string) (render.Image, error) {
	f, ok := s.framesByName[name]
	if !ok {
		return nil, fmt.Errorf("%s: %s: %w", s.Config.Name, name, ErrFrameNotFound)
	}
	x := f.X * s.Config.FrameWidth
	y := f.Y * s.Config.FrameHeight
	return s.Image.SubImage(image.Rect(x, y, x+s.Config.FrameWidth, y+s.Config.FrameHeight)), nil
}

// Animation returns the frames of a named animation, in order
func (s *Sheet) Animation(name string) ([]render.Image, error) {
	names, ok := s.Config.Animations[name]
	if !ok {
		return nil, fmt.Errorf("%s: animation %s: %w", s.Config.Name, name, ErrFrameNotFound)
	}
	frames := make([]render.Image, 0, len(names))
	for _, n := range names {
		img, err := s.Frame(n)
		if err != nil {
			return nil, err
		}
		frames = append(frames, img)
	}
	return frames, nil
}
