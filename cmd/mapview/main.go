package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"maptool/internal/common/config"
	"maptool/internal/maptool/generator"
	"maptool/internal/maptool/models"
	"maptool/internal/maptool/storage"
	"maptool/internal/maptool/terminal"
)

// ============================================================
// Terminal Map Viewer
// ============================================================

func main() {
	mapPath := flag.String("map", "", "map.json to show")
	seed := flag.Int64("seed", 0, "generate a map with this seed instead of loading one")
	paramsPath := flag.String("params", "", "YAML file with generation parameters for -seed")
	flag.Parse()

	m, err := loadModel(*mapPath, *seed, *paramsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mapview: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	terminal.NewViewer(screen, m).Run()
}

func loadModel(path string, seed int64, paramsPath string) (*models.Model, error) {
	if path != "" {
		doc, err := storage.ReadMapFile(path)
		if err != nil {
			return nil, err
		}
		return &doc.Model, nil
	}
	if seed == 0 {
		return nil, fmt.Errorf("either -map or -seed is required")
	}

	params, err := config.LoadParams(paramsPath)
	if err != nil {
		return nil, err
	}
	params.Seed = seed
	doc, _, err := generator.GenerateRetry(context.Background(), params, 1, nil)
	if err != nil {
		return nil, err
	}
	return &doc.Model, nil
}
