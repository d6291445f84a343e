package gamescanner

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

const scene = `
name: %s
player: {id: hero, sheet: hero.json, start: {x: 0, y: 0}}
room:
  id: r
  states: [{id: s, background: bg.png}]
verbs: {look: l.png, use: u.png, pickup: p.png}
`

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestScanDataDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "office.yaml"), fmt.Sprintf(scene, "office"))
	writeFile(t, filepath.Join(dir, "cellar", "cellar.yml"), fmt.Sprintf(scene, "cellar"))
	writeFile(t, filepath.Join(dir, "broken.yaml"), "name: [")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a scene")
	writeFile(t, filepath.Join(dir, "assets", "hidden.yaml"), fmt.Sprintf(scene, "hidden"))

	scenes, err := ScanDataDirectory(dir)
	if err != nil {
		t.Fatalf("ScanDataDirectory failed: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scenes, got %d: %+v", len(scenes), scenes)
	}
	if scenes[0].Name != "cellar" || scenes[1].Name != "office" {
		t.Errorf("Expected cellar then office, got %s then %s", scenes[0].Name, scenes[1].Name)
	}
	if scenes[1].Path != filepath.Join(dir, "office.yaml") {
		t.Errorf("Unexpected path %s", scenes[1].Path)
	}
}

func TestScanMissingDirectory(t *testing.T) {
	if _, err := ScanDataDirectory(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Expected error for a missing directory")
	}
}

func TestShippedDemoScene(t *testing.T) {
	scenes, err := ScanDataDirectory(filepath.Join("..", "..", "data"))
	if err != nil {
		t.Fatalf("ScanDataDirectory failed: %v", err)
	}
	if len(scenes) != 1 || scenes[0].Name != "office" {
		t.Errorf("Expected the office demo scene, got %+v", scenes)
	}
}
