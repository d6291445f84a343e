// Package gamescanner discovers playable scene files in a data directory.
package gamescanner

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"chosenoffset.com/adventure/internal/world/scenedef"
)

// SceneEntry represents a discoverable scene in the data directory
type SceneEntry struct {
	Name  string // Scene name from the file
	Path  string // Path to the scene file
	Items int    // Number of items in the scene
}

// ScanDataDirectory scans dataPath and its immediate subdirectories for
// scene files. Files that fail to parse are skipped with a warning.
func ScanDataDirectory(dataPath string) ([]SceneEntry, error) {
	entries, err := os.ReadDir(dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	var scenes []SceneEntry
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || name == "assets" {
			continue
		}

		path := filepath.Join(dataPath, name)
		if entry.IsDir() {
			nested, err := scanSceneFiles(path)
			if err != nil {
				// Skip directories that can't be read
				continue
			}
			scenes = append(scenes, nested...)
			continue
		}
		if scene, ok := loadEntry(path); ok {
			scenes = append(scenes, scene)
		}
	}

	sort.Slice(scenes, func(i, j int) bool { return scenes[i].Path < scenes[j].Path })
	return scenes, nil
}

// scanSceneFiles finds the scene files directly inside dir
func scanSceneFiles(dir string) ([]SceneEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var scenes []SceneEntry
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if scene, ok := loadEntry(filepath.Join(dir, entry.Name())); ok {
			scenes = append(scenes, scene)
		}
	}
	return scenes, nil
}

func loadEntry(path string) (SceneEntry, bool) {
	if !isSceneFile(path) {
		return SceneEntry{}, false
	}
	def, err := scenedef.Load(path)
	if err != nil {
		log.Printf("Warning: skipping %s: %v", path, err)
		return SceneEntry{}, false
	}
	return SceneEntry{Name: def.Name, Path: path, Items: len(def.Items)}, true
}

func isSceneFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
