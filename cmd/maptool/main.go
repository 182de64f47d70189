package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/google/uuid"

	"maptool/internal/common/config"
	"maptool/internal/maptool/generator"
	"maptool/internal/maptool/render"
	"maptool/internal/maptool/storage"
)

// ============================================================
// Map Generator CLI
// ============================================================

func main() {
	paramsPath := flag.String("params", "", "YAML file with generation parameters")
	seed := flag.Int64("seed", 0, "random seed, overrides the parameter file (0 keeps it)")
	out := flag.String("out", "data/maps", "export directory")
	withSVG := flag.Bool("svg", false, "also write map.svg")
	highlight := flag.Bool("entangled", false, "highlight entangled corridors in the svg")
	retries := flag.Int("retries", 5, "generation attempts with consecutive seeds")
	dumpParams := flag.String("write-params", "", "write the effective parameters to this YAML file and exit")
	verbose := flag.Bool("v", false, "log every resolver merge")
	flag.Parse()

	params, err := config.LoadParams(*paramsPath)
	if err != nil {
		log.Fatalf("load params: %v", err)
	}
	if *seed != 0 {
		params.Seed = *seed
	}

	if *dumpParams != "" {
		if err := config.WriteParams(*dumpParams, params); err != nil {
			log.Fatalf("write params: %v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var logf func(string, ...any)
	if *verbose {
		logf = log.Printf
	}
	m, st, err := generator.GenerateRetry(ctx, params, *retries, logf)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}
	m.ID = uuid.NewString()

	files := storage.NewFileStorage(*out)
	path, err := files.WriteMap(m)
	if err != nil {
		log.Fatalf("export: %v", err)
	}
	fmt.Println(path)

	if *withSVG {
		r := render.NewRenderer()
		r.HighlightEntangled = *highlight
		svg, err := r.Render(&m.Model)
		if err != nil {
			log.Fatalf("render: %v", err)
		}
		path, err := files.WriteSVG(m.ID, svg)
		if err != nil {
			log.Fatalf("export svg: %v", err)
		}
		fmt.Println(path)
	}

	log.Printf("[GENERATE] seed=%d rooms=%d corridors=%d intersections=%d merges=%d generations=%d",
		st.Seed, len(m.Rooms), len(m.Corridors), m.Intersections(), st.Resolve.Merges, st.Resolve.Generations)
}
