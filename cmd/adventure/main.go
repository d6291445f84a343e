package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/joho/godotenv"

	"chosenoffset.com/adventure/internal/game"
	"chosenoffset.com/adventure/internal/gamescanner"
	ebitenrender "chosenoffset.com/adventure/internal/render/ebiten"
	"chosenoffset.com/adventure/internal/simulation"
	"chosenoffset.com/adventure/internal/world/scenedef"
)

func main() {
	configPath := flag.String("config", "config.json", "settings file, defaults are used when missing")
	list := flag.Bool("list", false, "list the scenes found in the data directory and exit")
	flag.Parse()

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := simulation.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		log.Fatalf("Invalid environment override: %v", err)
	}

	if *list {
		listScenes(filepath.Dir(cfg.Scene))
		return
	}

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	loader := ebitenrender.NewResourceLoader()
	engine := ebitenrender.NewEngine()

	log.Printf("Loading scene %s...", cfg.Scene)
	def, err := scenedef.Load(cfg.Scene)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			listScenes(filepath.Dir(cfg.Scene))
		}
		log.Fatalf("Failed to load scene: %v", err)
	}
	world, err := scenedef.Build(def, scenedef.BuildOptions{
		BaseDir:  filepath.Dir(cfg.Scene),
		Loader:   loader,
		Renderer: renderer,
		Config:   cfg,
	})
	if err != nil {
		log.Fatalf("Failed to build scene (run ./cmd/genplaceholders for the demo assets): %v", err)
	}

	gameManager := game.NewManager(game.New(world, renderer, inputMgr), renderer, inputMgr)

	// Set up the window
	engine.SetWindowSize(cfg.Display.WindowWidth, cfg.Display.WindowHeight)
	engine.SetWindowTitle(cfg.Display.Title)
	engine.SetWindowResizable(true)
	engine.SetTPS(cfg.Display.TPS)

	log.Println("Starting game...")
	if err := engine.RunGame(gameManager); err != nil {
		log.Fatal(err)
	}
}

func listScenes(dataDir string) {
	log.Printf("Scanning %s for scenes...", dataDir)
	scenes, err := gamescanner.ScanDataDirectory(dataDir)
	if err != nil {
		log.Printf("Warning: %v", err)
		return
	}
	for _, s := range scenes {
		log.Printf("  %s (%s, %d items)", s.Name, s.Path, s.Items)
	}
	if len(scenes) == 0 {
		log.Println("  no scenes found")
	}
}
